package adapters

import (
	"github.com/JonMunkholm/tradeimport/internal/core"
	"github.com/JonMunkholm/tradeimport/internal/currency"
)

func init() {
	core.Register(okexV1{})
}

var okexDates = []string{"2006-01-02 15:04:05"}

var okexV1Schema = core.Schema{
	Name: "okex-v1",
	Columns: []core.Column{
		{Name: "Order ID", Type: core.ColumnText},
		{Name: "Trade ID", Type: core.ColumnText, Required: true},
		{Name: "Trade Time", Type: core.ColumnTime, Required: true},
		{Name: "Pairs", Type: core.ColumnText, Required: true},
		{Name: "Amount", Type: core.ColumnDecimal, Required: true},
		{Name: "Price", Type: core.ColumnDecimal},
		{Name: "Total", Type: core.ColumnText},
		{Name: "taker/maker", Type: core.ColumnText},
		{Name: "Fee", Type: core.ColumnText},
		{Name: "unit", Type: core.ColumnCurrency},
	},
}

// okexV1 reads the OKEx trade history. The sign of Amount gives the
// direction. Total and Fee cells carry their currency after the number.
type okexV1 struct{}

func (okexV1) Info() core.FormatInfo {
	return core.FormatInfo{Key: "okex-v1", Exchange: "OKEx", Version: "1", Label: "OKEx trade history"}
}

func (okexV1) Schemas() []core.Schema {
	return []core.Schema{okexV1Schema}
}

func (okexV1) Bind(rec core.Record, env core.Env) (core.Decoder, error) {
	var (
		in  core.ClusterInput
		err error
	)
	in.UID = rec.Text("Trade ID")
	if in.Executed, err = rec.Time("Trade Time", okexDates); err != nil {
		return nil, err
	}
	if in.Base, in.Quote, err = rec.Pair("Pairs", "_", false, env.Currencies); err != nil {
		return nil, err
	}

	amount, err := rec.Decimal("Amount")
	if err != nil {
		return nil, err
	}
	in.Kind = core.KindBuy
	if amount.IsNegative() {
		in.Kind = core.KindSell
	}
	in.Quantity = amount.Abs()

	if in.Price, err = rec.Decimal("Price"); err != nil {
		return nil, err
	}
	in.Price = in.Price.Abs()

	unit, err := rec.Currency("unit", env.Currencies)
	if err != nil {
		return nil, err
	}
	totalCur, err := amountCurrency(rec, "Total", env.Currencies)
	if err != nil {
		return nil, err
	}

	fee, feeUnit, err := core.SplitAmount(rec.Text("Fee"))
	if err != nil {
		return nil, &core.FieldError{Column: "Fee", Value: rec.Text("Fee"), Err: err}
	}
	if feeUnit != "" {
		if in.FeeCurrency, err = env.Currencies.Resolve(feeUnit); err != nil {
			return nil, &core.FieldError{Column: "Fee", Value: rec.Text("Fee"), Err: err}
		}
	}
	in.Fee = fee.Abs()

	return okexDecoder{in: in, unit: unit, total: totalCur}, nil
}

// amountCurrency resolves the unit of a "number UNIT" cell.
func amountCurrency(rec core.Record, column string, res currency.Resolver) (currency.Currency, error) {
	raw := rec.Text(column)
	_, unit, err := core.SplitAmount(raw)
	if err != nil {
		return "", &core.FieldError{Column: column, Value: raw, Err: err}
	}
	c, err := res.Resolve(unit)
	if err != nil {
		return "", &core.FieldError{Column: column, Value: raw, Err: err}
	}
	return c, nil
}

type okexDecoder struct {
	in    core.ClusterInput
	unit  currency.Currency
	total currency.Currency
}

func (d okexDecoder) Decode(env core.Env) (*core.Cluster, error) {
	in := d.in
	if err := core.ValidatePair(env.Pairs, in.Base, in.Quote); err != nil {
		return nil, err
	}
	if in.Base != d.unit {
		return nil, &core.MismatchError{Field: "pairs base", Expected: in.Base, Other: "unit", Actual: d.unit}
	}
	if in.Quote != d.total {
		return nil, &core.MismatchError{Field: "pairs quote", Expected: in.Quote, Other: "total", Actual: d.total}
	}

	// A fee charged in the base currency is valued at the trade price.
	if in.FeeCurrency == in.Base {
		in.Fee = core.RoundFee(in.Fee.Mul(in.Price))
	}
	return core.BuildCluster(in, strict)
}
