package adapters

import (
	"github.com/JonMunkholm/tradeimport/internal/core"
)

func init() {
	core.Register(coinmateV1{})
}

var _ core.RowFilter = coinmateV1{}

var coinmateDates = []string{"2006-01-02 15:04:05", "02.01.2006 15:04"}

var coinmateV1Schema = core.Schema{
	Name: "coinmate-v1",
	Columns: []core.Column{
		{Name: "ID", Type: core.ColumnText, Required: true},
		{Name: "Date", Aliases: []string{"Datum"}, Type: core.ColumnTime, Required: true},
		{Name: "Type", Aliases: []string{"Typ"}, Type: core.ColumnAction, Required: true},
		{Name: "Amount", Aliases: []string{"Částka"}, Type: core.ColumnDecimal},
		{Name: "Amount Currency", Aliases: []string{"Částka měny"}, Type: core.ColumnCurrency},
		{Name: "Price", Aliases: []string{"Cena"}, Type: core.ColumnDecimal},
		{Name: "Price Currency", Aliases: []string{"Cena měny"}, Type: core.ColumnCurrency},
		{Name: "Fee", Aliases: []string{"Poplatek"}, Type: core.ColumnDecimal},
		{Name: "Fee Currency", Aliases: []string{"Poplatek měny"}, Type: core.ColumnCurrency},
		{Name: "Total", Aliases: []string{"Celkem"}, Type: core.ColumnDecimal},
		{Name: "Total Currency", Aliases: []string{"Celkem měny"}, Type: core.ColumnCurrency},
		{Name: "Description", Aliases: []string{"Popisek"}, Type: core.ColumnText},
		{Name: "Status", Type: core.ColumnText},
	},
}

var coinmateV1Actions = core.Vocabulary{
	"BUY":        core.KindBuy,
	"QUICK_BUY":  core.KindBuy,
	"SELL":       core.KindSell,
	"QUICK_SELL": core.KindSell,
}

// coinmateV1 reads the Coinmate transaction history in English or Czech.
// Only rows with status OK are imported. Amount, price and fee are read as
// magnitudes. A fee outside the pair is dropped
// and noted on the cluster.
type coinmateV1 struct{}

func (coinmateV1) Info() core.FormatInfo {
	return core.FormatInfo{Key: "coinmate-v1", Exchange: "Coinmate", Version: "1", Label: "Coinmate transaction history"}
}

func (coinmateV1) Schemas() []core.Schema {
	return []core.Schema{coinmateV1Schema}
}

// Filter ignores rows whose status is not OK.
func (coinmateV1) Filter(rec core.Record) error {
	return core.CheckStatus(rec.Text("Status"), "OK")
}

func (coinmateV1) Bind(rec core.Record, env core.Env) (core.Decoder, error) {
	var (
		in  core.ClusterInput
		err error
	)
	in.UID = rec.Text("ID")
	if in.Executed, err = rec.Time("Date", coinmateDates); err != nil {
		return nil, err
	}
	if in.Kind, err = coinmateV1Actions.Classify(rec.Text("Type")); err != nil {
		return nil, err
	}
	if in.Quantity, err = rec.Decimal("Amount"); err != nil {
		return nil, err
	}
	in.Quantity = in.Quantity.Abs()
	if in.Base, err = rec.Currency("Amount Currency", env.Currencies); err != nil {
		return nil, err
	}
	if in.Price, err = rec.Decimal("Price"); err != nil {
		return nil, err
	}
	in.Price = in.Price.Abs()
	if in.Quote, err = rec.Currency("Price Currency", env.Currencies); err != nil {
		return nil, err
	}
	if in.Fee, err = rec.Decimal("Fee"); err != nil {
		return nil, err
	}
	in.Fee = core.RoundFee(in.Fee.Abs())
	if in.FeeCurrency, err = rec.OptionalCurrency("Fee Currency", env.Currencies); err != nil {
		return nil, err
	}

	return pairChecked{in: in, opts: core.BuildOptions{FeePolicy: core.FeeCurrencyLenient}}, nil
}
