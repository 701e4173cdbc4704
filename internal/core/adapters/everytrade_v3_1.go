package adapters

import (
	"github.com/JonMunkholm/tradeimport/internal/core"
)

func init() {
	core.Register(everyTradeV31{})
}

var everyTradeV31Actions = core.Vocabulary{
	"BUY":        core.KindBuy,
	"SELL":       core.KindSell,
	"FEE":        core.KindFee,
	"REBATE":     core.KindRebate,
	"DEPOSIT":    core.KindDeposit,
	"WITHDRAWAL": core.KindWithdrawal,
}

// everyTradeV31 extends v3 with deposits and withdrawals. A SYMBOL without a
// slash names a single currency used as both base and quote.
type everyTradeV31 struct{}

func (everyTradeV31) Info() core.FormatInfo {
	return core.FormatInfo{Key: "everytrade-v3.1", Exchange: "EveryTrade", Version: "3.1", Label: "EveryTrade native v3.1"}
}

func (everyTradeV31) Schemas() []core.Schema {
	columns := append([]core.Column{}, everyTradeV3Columns...)
	columns = append(columns,
		core.Column{Name: "ADDRESS_FROM", Type: core.ColumnText},
		core.Column{Name: "ADDRESS_TO", Type: core.ColumnText},
	)
	return []core.Schema{{Name: "everytrade-v3.1", Columns: columns}}
}

func (everyTradeV31) Bind(rec core.Record, env core.Env) (core.Decoder, error) {
	in, err := bindEveryTrade(rec, env, everyTradeV31Actions, true)
	if err != nil {
		return nil, err
	}
	in.AddressFrom = rec.Text("ADDRESS_FROM")
	in.AddressTo = rec.Text("ADDRESS_TO")
	return signChecked{in: in, opts: strict}, nil
}
