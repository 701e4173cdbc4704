package adapters

import (
	"strings"

	"github.com/google/uuid"

	"github.com/JonMunkholm/tradeimport/internal/core"
)

func init() {
	core.Register(shakePayV1{})
}

var shakePayDates = []string{"2006-01-02T15:04:05-07", "2006-01-02T15:04:05Z07:00"}

var shakePayV1Schema = core.Schema{
	Name: "shakepay-v1",
	Columns: []core.Column{
		{Name: "Transaction Type", Type: core.ColumnAction, Required: true},
		{Name: "Date", Type: core.ColumnTime, Required: true},
		{Name: "Amount Debited", Type: core.ColumnDecimal},
		{Name: "Debit Currency", Type: core.ColumnCurrency},
		{Name: "Amount Credited", Type: core.ColumnDecimal},
		{Name: "Credit Currency", Type: core.ColumnCurrency},
		{Name: "Exchange Rate", Type: core.ColumnDecimal},
		{Name: "Credit/Debit", Type: core.ColumnText},
		{Name: "Spot Rate", Type: core.ColumnDecimal},
	},
}

// shakePayNamespace seeds the row UIDs of ShakePay exports, which carry no
// transaction id of their own.
var shakePayNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://shakepay.com/transactions"))

// shakePayV1 reads the ShakePay transaction export. Only currency exchanges
// are imported: spending fiat is a BUY of the credited currency, anything
// else is a SELL of the debited currency.
type shakePayV1 struct{}

func (shakePayV1) Info() core.FormatInfo {
	return core.FormatInfo{Key: "shakepay-v1", Exchange: "ShakePay", Version: "1", Label: "ShakePay transactions"}
}

func (shakePayV1) Schemas() []core.Schema {
	return []core.Schema{shakePayV1Schema}
}

func (shakePayV1) Bind(rec core.Record, env core.Env) (core.Decoder, error) {
	txType := rec.Text("Transaction Type")
	if txType != "exchange" {
		return nil, &core.UnsupportedError{What: "transaction type", Value: txType}
	}

	executed, err := rec.Time("Date", shakePayDates)
	if err != nil {
		return nil, err
	}
	debited, err := rec.Decimal("Amount Debited")
	if err != nil {
		return nil, err
	}
	debitCur, err := rec.Currency("Debit Currency", env.Currencies)
	if err != nil {
		return nil, err
	}
	credited, err := rec.Decimal("Amount Credited")
	if err != nil {
		return nil, err
	}
	creditCur, err := rec.Currency("Credit Currency", env.Currencies)
	if err != nil {
		return nil, err
	}
	if err := core.ValidateNonZero("amount debited", debited); err != nil {
		return nil, err
	}
	if err := core.ValidateNonZero("amount credited", credited); err != nil {
		return nil, err
	}

	in := core.ClusterInput{
		UID:      shakePayUID(rec),
		Executed: executed,
	}
	if debitCur.IsFiat() {
		in.Kind = core.KindBuy
		in.Base, in.Quote = creditCur, debitCur
		in.Quantity = credited
		in.Price = debited.DivRound(credited, core.DecimalDigits)
	} else {
		in.Kind = core.KindSell
		in.Base, in.Quote = debitCur, creditCur
		in.Quantity = debited
		in.Price = credited.DivRound(debited, core.DecimalDigits)
	}

	return signChecked{in: in, opts: strict}, nil
}

// shakePayUID derives a stable id from the row content so that importing
// the same export twice yields the same UIDs.
func shakePayUID(rec core.Record) string {
	cells := make([]string, len(shakePayV1Schema.Columns))
	for i, col := range shakePayV1Schema.Columns {
		cells[i] = rec.Text(col.Name)
	}
	return uuid.NewSHA1(shakePayNamespace, []byte(strings.Join(cells, "\x1f"))).String()
}
