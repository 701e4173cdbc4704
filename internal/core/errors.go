package core

// errors.go defines the typed errors produced while importing a file.
//
// They fall into four tiers:
//  1. *SchemaError: the header matches no accepted layout; the file is rejected.
//  2. *UnsupportedError: the row is ignored (unknown action or status).
//  3. Validation errors (*FieldError, *CurrencyPairError, *NegativeValueError,
//     *ZeroValueError, *CurrencyMembershipError, *MismatchError): the row is rejected.
//  4. *InternalError: an engine defect; aborts the import.

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/tradeimport/internal/currency"
)

// ErrUnreachableKind is wrapped by InternalError when the cluster builder sees
// a kind the classifier should have filtered out.
var ErrUnreachableKind = errors.New("unsupported transaction kind reached cluster builder")

// SchemaError reports a header that matches none of a format's layouts.
type SchemaError struct {
	Format   string
	Header   []string
	Expected [][]string
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "header mismatch for %s: got [%s]", e.Format, strings.Join(e.Header, ","))
	for _, exp := range e.Expected {
		fmt.Fprintf(&b, ", expected [%s]", strings.Join(exp, ","))
	}
	return b.String()
}

// UnsupportedError marks a row that is deliberately skipped.
type UnsupportedError struct {
	What  string // "transaction type", "status type"
	Value string // Literal cell text
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported %s %q", e.What, e.Value)
}

// FieldError reports a cell that could not be converted.
type FieldError struct {
	Column string
	Value  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("unable to set value %q for column %q: %v", e.Value, e.Column, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// CurrencyPairError reports a pair missing from the allowed-pair registry.
type CurrencyPairError struct {
	Base  currency.Currency
	Quote currency.Currency
}

func (e *CurrencyPairError) Error() string {
	return "unsupported currency pair " + currency.Pair(e.Base, e.Quote)
}

// NegativeValueError reports a strictly negative numeric field.
type NegativeValueError struct {
	Field string
	Value decimal.Decimal
}

func (e *NegativeValueError) Error() string {
	return fmt.Sprintf("%s can not be negative (%s)", e.Field, e.Value.String())
}

// ZeroValueError reports a zero in a field that must be positive.
type ZeroValueError struct {
	Field string
}

func (e *ZeroValueError) Error() string {
	return e.Field + " can not be zero"
}

// CurrencyMembershipError reports a fee or rebate currency that is neither
// the base nor the quote of the record.
type CurrencyMembershipError struct {
	Role     string // "fee" or "rebate"
	Currency currency.Currency
	Base     currency.Currency
	Quote    currency.Currency
}

func (e *CurrencyMembershipError) Error() string {
	return fmt.Sprintf("%s currency %q differs from base %q and from quote %q",
		e.Role, e.Currency.Code(), e.Base.Code(), e.Quote.Code())
}

// MismatchError reports two columns of one row that disagree about a currency.
type MismatchError struct {
	Field    string
	Expected currency.Currency
	Other    string
	Actual   currency.Currency
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s currency %q differs from %s currency %q",
		e.Field, e.Expected.Code(), e.Other, e.Actual.Code())
}

// InternalError signals a defect in the engine rather than bad input.
type InternalError struct {
	Row int
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal consistency failure at row %d: %v", e.Row, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err aborts the whole import.
func IsFatal(err error) bool {
	var schemaErr *SchemaError
	var internalErr *InternalError
	return errors.As(err, &schemaErr) || errors.As(err, &internalErr)
}
