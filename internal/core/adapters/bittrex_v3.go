package adapters

import (
	"github.com/JonMunkholm/tradeimport/internal/core"
)

func init() {
	core.Register(bittrexV3{})
}

var bittrexDates = []string{"1/2/2006 3:04:05 PM"}

var bittrexV3Schema = core.Schema{
	Name: "bittrex-v3",
	Columns: []core.Column{
		{Name: "Uuid", Type: core.ColumnText, Required: true},
		{Name: "Exchange", Type: core.ColumnText, Required: true},
		{Name: "TimeStamp", Type: core.ColumnTime, Required: true},
		{Name: "OrderType", Type: core.ColumnAction, Required: true},
		{Name: "Limit", Type: core.ColumnDecimal},
		{Name: "Quantity", Type: core.ColumnDecimal},
		{Name: "QuantityRemaining", Type: core.ColumnDecimal},
		{Name: "Commission", Type: core.ColumnDecimal},
		{Name: "Price", Type: core.ColumnDecimal},
		{Name: "PricePerUnit", Type: core.ColumnDecimal},
		{Name: "IsConditional", Type: core.ColumnText},
		{Name: "Condition", Type: core.ColumnText},
		{Name: "ConditionTarget", Type: core.ColumnDecimal},
		{Name: "ImmediateOrCancel", Type: core.ColumnText},
		{Name: "Closed", Type: core.ColumnTime},
		{Name: "TimeInForceTypeId", Type: core.ColumnText},
		{Name: "TimeInForce", Type: core.ColumnText},
	},
}

// Plain BUY and SELL are not order types of this export.
var bittrexV3Actions = core.Vocabulary{
	"LIMIT_BUY":           core.KindBuy,
	"MARKET_BUY":          core.KindBuy,
	"CEILING_LIMIT_BUY":   core.KindBuy,
	"CEILING_MARKET_BUY":  core.KindBuy,
	"LIMIT_SELL":          core.KindSell,
	"MARKET_SELL":         core.KindSell,
	"CEILING_LIMIT_SELL":  core.KindSell,
	"CEILING_MARKET_SELL": core.KindSell,
}

// bittrexV3 reads the Bittrex order history. Markets are written
// QUOTE-BASE; the commission is paid in the quote currency.
type bittrexV3 struct{}

func (bittrexV3) Info() core.FormatInfo {
	return core.FormatInfo{Key: "bittrex-v3", Exchange: "Bittrex", Version: "3", Label: "Bittrex order history"}
}

func (bittrexV3) Schemas() []core.Schema {
	return []core.Schema{bittrexV3Schema}
}

func (bittrexV3) Bind(rec core.Record, env core.Env) (core.Decoder, error) {
	var (
		in  core.ClusterInput
		err error
	)
	in.UID = rec.Text("Uuid")
	if in.Quote, in.Base, err = rec.Pair("Exchange", "-", false, env.Currencies); err != nil {
		return nil, err
	}
	if in.Executed, err = rec.Time("TimeStamp", bittrexDates); err != nil {
		return nil, err
	}
	if in.Kind, err = bittrexV3Actions.Classify(rec.Text("OrderType")); err != nil {
		return nil, err
	}
	if in.Quantity, err = rec.Decimal("Quantity"); err != nil {
		return nil, err
	}
	if in.Price, err = rec.Decimal("PricePerUnit"); err != nil {
		return nil, err
	}
	if in.Fee, err = rec.Decimal("Commission"); err != nil {
		return nil, err
	}
	in.Fee = core.RoundFee(in.Fee)
	in.FeeCurrency = in.Quote

	return signChecked{in: in, opts: strict}, nil
}
