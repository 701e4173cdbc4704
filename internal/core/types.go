package core

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/tradeimport/internal/currency"
)

// Kind is the canonical transaction kind.
type Kind string

const (
	KindBuy        Kind = "BUY"
	KindSell       Kind = "SELL"
	KindDeposit    Kind = "DEPOSIT"
	KindWithdrawal Kind = "WITHDRAWAL"
	KindFee        Kind = "FEE"
	KindRebate     Kind = "REBATE"
)

// RelatedUIDSuffix is appended to a primary UID to form the UID of a
// synthesized fee or rebate transaction.
const RelatedUIDSuffix = "-fee"

// DecimalDigits is the precision of derived fee and price values.
const DecimalDigits = 10

// TxMeta holds the fields shared by every canonical transaction.
type TxMeta struct {
	UID      string            `json:"uid"`
	Executed time.Time         `json:"executed"`
	Base     currency.Currency `json:"base"`
	Quote    currency.Currency `json:"quote"`
	Kind     Kind              `json:"kind"`
}

// Transaction is one of BuySell, FeeRebate or DepositWithdrawal.
type Transaction interface {
	Meta() TxMeta
}

// BuySell is a trade. Quantity is always a non-negative magnitude; the
// direction lives in Kind.
type BuySell struct {
	TxMeta
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// FeeRebate is a fee paid or a rebate received in Base or Quote.
type FeeRebate struct {
	TxMeta
	Amount         decimal.Decimal   `json:"amount"`
	AmountCurrency currency.Currency `json:"amountCurrency"`
}

// DepositWithdrawal moves Quantity of Base to or from Address. Address is the
// source for deposits and the destination for withdrawals.
type DepositWithdrawal struct {
	TxMeta
	Quantity decimal.Decimal `json:"quantity"`
	Address  string          `json:"address,omitempty"`
}

func (t BuySell) Meta() TxMeta           { return t.TxMeta }
func (t FeeRebate) Meta() TxMeta         { return t.TxMeta }
func (t DepositWithdrawal) Meta() TxMeta { return t.TxMeta }

func (t BuySell) MarshalJSON() ([]byte, error) {
	type plain BuySell
	return json.Marshal(struct {
		Shape string `json:"shape"`
		plain
	}{"buySell", plain(t)})
}

func (t FeeRebate) MarshalJSON() ([]byte, error) {
	type plain FeeRebate
	return json.Marshal(struct {
		Shape string `json:"shape"`
		plain
	}{"feeRebate", plain(t)})
}

func (t DepositWithdrawal) MarshalJSON() ([]byte, error) {
	type plain DepositWithdrawal
	return json.Marshal(struct {
		Shape string `json:"shape"`
		plain
	}{"depositWithdrawal", plain(t)})
}

// IgnoredFee explains why a fee present in the input was left out of a cluster.
type IgnoredFee struct {
	Code   int    `json:"code"`
	Reason string `json:"reason"`
}

// Cluster is a primary transaction plus its related fee/rebate transactions.
type Cluster struct {
	Main       Transaction   `json:"main"`
	Related    []Transaction `json:"related"`
	IgnoredFee *IgnoredFee   `json:"ignoredFee,omitempty"`
}

// FormatInfo describes a supported export format.
type FormatInfo struct {
	Key      string `json:"key"`      // Unique identifier: "coinmate-v1"
	Exchange string `json:"exchange"` // Source: "Coinmate", "EveryTrade"
	Version  string `json:"version"`  // Format version: "1", "3.1"
	Label    string `json:"label"`    // Display name
}

// Env carries the registries an adapter consults. Both are read-only for the
// duration of a parse.
type Env struct {
	Currencies currency.Resolver
	Pairs      currency.PairRegistry
}

// DefaultEnv returns an Env backed by the built-in currency registry.
func DefaultEnv() Env {
	return Env{Currencies: currency.Default, Pairs: currency.Default}
}

// Adapter decodes the rows of one export format.
//
// Bind turns a record into typed fields. It fails with an *UnsupportedError
// for ignored rows and with a *FieldError for cells that cannot be parsed.
// The returned Decoder is fresh per row; no state is carried between rows.
type Adapter interface {
	Info() FormatInfo
	Schemas() []Schema
	Bind(rec Record, env Env) (Decoder, error)
}

// RowFilter is implemented by adapters that skip rows before any field is
// read, for example on a status column. A non-nil error from Filter is
// reported instead of missing required values.
type RowFilter interface {
	Filter(rec Record) error
}

// Decoder holds the typed fields of one bound row.
type Decoder interface {
	Decode(env Env) (*Cluster, error)
}

// ColumnType is the expected data type of a column.
type ColumnType int

const (
	ColumnText ColumnType = iota
	ColumnDecimal
	ColumnTime
	ColumnCurrency
	ColumnAction
)

// Column is one entry of a header layout.
type Column struct {
	Name     string     // Canonical header name
	Aliases  []string   // Accepted alternative names (e.g. localized)
	Type     ColumnType // Expected data type
	Required bool       // Cell must be non-empty
}

// Schema is an ordered header layout accepted by an adapter.
type Schema struct {
	Name    string
	Columns []Column
}

// Header returns the canonical header names in order.
func (s Schema) Header() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}
