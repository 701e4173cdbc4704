package adapters

import (
	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/tradeimport/internal/core"
)

func init() {
	core.Register(everyTradeV1{})
}

// everyTradeDates are the DATE layouts shared by all native versions.
var everyTradeDates = []string{"02.01.06 15:04:05", "2006-01-02 15:04:05"}

var everyTradeV1Schema = core.Schema{
	Name: "everytrade-v1",
	Columns: []core.Column{
		{Name: "UID", Type: core.ColumnText, Required: true},
		{Name: "DATE", Type: core.ColumnTime, Required: true},
		{Name: "SYMBOL", Type: core.ColumnText, Required: true},
		{Name: "ACTION", Type: core.ColumnAction, Required: true},
		{Name: "QUANTY", Type: core.ColumnDecimal},
		{Name: "PRICE", Type: core.ColumnDecimal},
		{Name: "FEE", Type: core.ColumnDecimal},
	},
}

var everyTradeV1Actions = core.Vocabulary{
	"BUY":  core.KindBuy,
	"SELL": core.KindSell,
}

// everyTradeV1 is the first native format. Amounts are read as magnitudes
// and the fee is always charged in the quote currency.
type everyTradeV1 struct{}

func (everyTradeV1) Info() core.FormatInfo {
	return core.FormatInfo{Key: "everytrade-v1", Exchange: "EveryTrade", Version: "1", Label: "EveryTrade native v1"}
}

func (everyTradeV1) Schemas() []core.Schema {
	return []core.Schema{everyTradeV1Schema}
}

func (everyTradeV1) Bind(rec core.Record, env core.Env) (core.Decoder, error) {
	var (
		in  core.ClusterInput
		err error
	)
	in.UID = rec.Text("UID")
	if in.Executed, err = rec.Time("DATE", everyTradeDates); err != nil {
		return nil, err
	}
	if in.Base, in.Quote, err = rec.Pair("SYMBOL", "/", false, env.Currencies); err != nil {
		return nil, err
	}
	if in.Kind, err = everyTradeV1Actions.Classify(rec.Text("ACTION")); err != nil {
		return nil, err
	}

	var qty, price, fee decimal.Decimal
	if qty, err = rec.Decimal("QUANTY"); err != nil {
		return nil, err
	}
	if price, err = rec.Decimal("PRICE"); err != nil {
		return nil, err
	}
	if fee, err = rec.Decimal("FEE"); err != nil {
		return nil, err
	}
	in.Quantity = qty.Abs()
	in.Price = price.Abs()
	in.Fee = fee.Abs()
	in.FeeCurrency = in.Quote

	return pairChecked{in: in, opts: core.BuildOptions{FeePolicy: core.FeeCurrencyLenient}}, nil
}
