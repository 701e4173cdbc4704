package adapters

import (
	"github.com/JonMunkholm/tradeimport/internal/core"
)

func init() {
	core.Register(everyTradeV3{})
}

var everyTradeV3Columns = []core.Column{
	{Name: "UID", Type: core.ColumnText, Required: true},
	{Name: "DATE", Type: core.ColumnTime, Required: true},
	{Name: "SYMBOL", Type: core.ColumnText, Required: true},
	{Name: "ACTION", Type: core.ColumnAction, Required: true},
	{Name: "QUANTY", Type: core.ColumnDecimal},
	{Name: "PRICE", Type: core.ColumnDecimal},
	{Name: "FEE", Type: core.ColumnDecimal},
	{Name: "FEE_CURRENCY", Type: core.ColumnCurrency},
	{Name: "REBATE", Type: core.ColumnDecimal},
	{Name: "REBATE_CURRENCY", Type: core.ColumnCurrency},
}

var everyTradeV3Actions = core.Vocabulary{
	"BUY":    core.KindBuy,
	"SELL":   core.KindSell,
	"FEE":    core.KindFee,
	"REBATE": core.KindRebate,
}

// everyTradeV3 adds explicit fee and rebate currencies and standalone
// FEE/REBATE rows. Values are taken literally and must not be negative.
type everyTradeV3 struct{}

func (everyTradeV3) Info() core.FormatInfo {
	return core.FormatInfo{Key: "everytrade-v3", Exchange: "EveryTrade", Version: "3", Label: "EveryTrade native v3"}
}

func (everyTradeV3) Schemas() []core.Schema {
	return []core.Schema{{Name: "everytrade-v3", Columns: everyTradeV3Columns}}
}

func (everyTradeV3) Bind(rec core.Record, env core.Env) (core.Decoder, error) {
	in, err := bindEveryTrade(rec, env, everyTradeV3Actions, false)
	if err != nil {
		return nil, err
	}
	return signChecked{in: in, opts: strict}, nil
}

// bindEveryTrade reads the columns common to v3 and v3.1.
func bindEveryTrade(rec core.Record, env core.Env, actions core.Vocabulary, singleSymbol bool) (core.ClusterInput, error) {
	var (
		in  core.ClusterInput
		err error
	)
	in.UID = rec.Text("UID")
	if in.Executed, err = rec.Time("DATE", everyTradeDates); err != nil {
		return in, err
	}
	if in.Base, in.Quote, err = rec.Pair("SYMBOL", "/", singleSymbol, env.Currencies); err != nil {
		return in, err
	}
	if in.Kind, err = actions.Classify(rec.Text("ACTION")); err != nil {
		return in, err
	}
	if in.Quantity, err = rec.Decimal("QUANTY"); err != nil {
		return in, err
	}
	if in.Price, err = rec.Decimal("PRICE"); err != nil {
		return in, err
	}
	if in.Fee, err = rec.Decimal("FEE"); err != nil {
		return in, err
	}
	if in.FeeCurrency, err = rec.OptionalCurrency("FEE_CURRENCY", env.Currencies); err != nil {
		return in, err
	}
	if in.Rebate, err = rec.Decimal("REBATE"); err != nil {
		return in, err
	}
	if in.RebateCurrency, err = rec.OptionalCurrency("REBATE_CURRENCY", env.Currencies); err != nil {
		return in, err
	}
	return in, nil
}
