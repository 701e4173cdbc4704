package core

// validation.go provides the shared rule set applied before a record becomes
// a transaction.
//
// Validation happens at two levels:
//  1. Header validation: the header must equal one accepted Schema, column
//     by column, allowing declared aliases. A mismatch is fatal for the file.
//  2. Field validation: pure functions over typed fields. Adapters compose
//     them explicitly; none is applied implicitly.

import (
	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/tradeimport/internal/currency"
)

// NamedValue pairs a numeric field with its name for error messages.
type NamedValue struct {
	Name  string
	Value decimal.Decimal
}

// Named is shorthand for NamedValue{name, v}.
func Named(name string, v decimal.Decimal) NamedValue {
	return NamedValue{Name: name, Value: v}
}

// ValidatePair fails unless the pair is in the allowed registry.
func ValidatePair(pairs currency.PairRegistry, base, quote currency.Currency) error {
	if !pairs.IsAllowed(base, quote) {
		return &CurrencyPairError{Base: base, Quote: quote}
	}
	return nil
}

// ValidatePositivity fails on the first strictly negative value.
func ValidatePositivity(values ...NamedValue) error {
	for _, v := range values {
		if v.Value.IsNegative() {
			return &NegativeValueError{Field: v.Name, Value: v.Value}
		}
	}
	return nil
}

// ValidateNonZero fails if v is zero.
func ValidateNonZero(name string, v decimal.Decimal) error {
	if v.IsZero() {
		return &ZeroValueError{Field: name}
	}
	return nil
}

// ValidateFeeRebateCurrency fails unless cur is the base or the quote.
// role is "fee" or "rebate".
func ValidateFeeRebateCurrency(role string, cur, base, quote currency.Currency) error {
	if cur != base && cur != quote {
		return &CurrencyMembershipError{Role: role, Currency: cur, Base: base, Quote: quote}
	}
	return nil
}

// MatchHeader returns the schema the header matches exactly.
//
// Cells are compared after CleanCell; each cell must equal the column name or
// one of its aliases, in order, with no extra or missing columns.
func MatchHeader(format string, header []string, schemas []Schema) (Schema, error) {
	cleaned := make([]string, len(header))
	for i, h := range header {
		cleaned[i] = CleanCell(h)
	}

	for _, s := range schemas {
		if headerMatches(cleaned, s) {
			return s, nil
		}
	}

	expected := make([][]string, len(schemas))
	for i, s := range schemas {
		expected[i] = s.Header()
	}
	return Schema{}, &SchemaError{Format: format, Header: cleaned, Expected: expected}
}

func headerMatches(header []string, s Schema) bool {
	if len(header) != len(s.Columns) {
		return false
	}
	for i, col := range s.Columns {
		if !columnMatches(header[i], col) {
			return false
		}
	}
	return true
}

func columnMatches(cell string, col Column) bool {
	if cell == col.Name {
		return true
	}
	for _, alias := range col.Aliases {
		if cell == alias {
			return true
		}
	}
	return false
}
