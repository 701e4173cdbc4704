package adapters

import (
	"github.com/JonMunkholm/tradeimport/internal/core"
)

// pairChecked validates the pair and builds the cluster.
type pairChecked struct {
	in   core.ClusterInput
	opts core.BuildOptions
}

func (d pairChecked) Decode(env core.Env) (*core.Cluster, error) {
	if err := core.ValidatePair(env.Pairs, d.in.Base, d.in.Quote); err != nil {
		return nil, err
	}
	return core.BuildCluster(d.in, d.opts)
}

// signChecked additionally rejects negative quantity, price, fee and rebate.
type signChecked struct {
	in   core.ClusterInput
	opts core.BuildOptions
}

func (d signChecked) Decode(env core.Env) (*core.Cluster, error) {
	if err := core.ValidatePair(env.Pairs, d.in.Base, d.in.Quote); err != nil {
		return nil, err
	}
	if err := core.ValidatePositivity(
		core.Named("quantity", d.in.Quantity),
		core.Named("price", d.in.Price),
		core.Named("fee", d.in.Fee),
		core.Named("rebate", d.in.Rebate),
	); err != nil {
		return nil, err
	}
	return core.BuildCluster(d.in, d.opts)
}

var strict = core.BuildOptions{FeePolicy: core.FeeCurrencyStrict}
