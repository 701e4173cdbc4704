package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/tradeimport/internal/currency"
)

// Record is one data row keyed by canonical column name.
//
// The helpers wrap conversion failures in *FieldError so that the problem
// message names both the column and the offending cell.
type Record struct {
	cells map[string]string
}

// NewRecord binds a row to a schema. Cells beyond the row length read as "".
func NewRecord(schema Schema, row []string) Record {
	cells := make(map[string]string, len(schema.Columns))
	for i, col := range schema.Columns {
		if i < len(row) {
			cells[col.Name] = CleanCell(row[i])
		}
	}
	return Record{cells: cells}
}

// RecordFromMap builds a record from column/value pairs.
func RecordFromMap(m map[string]string) Record {
	cells := make(map[string]string, len(m))
	for k, v := range m {
		cells[k] = CleanCell(v)
	}
	return Record{cells: cells}
}

// Text returns the cleaned cell, or "" if absent.
func (r Record) Text(column string) string {
	return r.cells[column]
}

// RequiredText returns the cell or a FieldError if it is empty.
func (r Record) RequiredText(column string) (string, error) {
	v := r.cells[column]
	if v == "" {
		return "", &FieldError{Column: column, Value: v, Err: fmt.Errorf("required field is empty")}
	}
	return v, nil
}

// Decimal parses the cell; an empty or absent cell is zero.
func (r Record) Decimal(column string) (decimal.Decimal, error) {
	v := r.cells[column]
	d, err := ParseDecimal(v)
	if err != nil {
		return decimal.Zero, &FieldError{Column: column, Value: v, Err: err}
	}
	return d, nil
}

// Time parses the cell with the given layouts in UTC.
func (r Record) Time(column string, layouts []string) (time.Time, error) {
	v := r.cells[column]
	t, err := ParseTime(v, layouts, time.UTC)
	if err != nil {
		return time.Time{}, &FieldError{Column: column, Value: v, Err: err}
	}
	return t, nil
}

// Currency resolves a mandatory currency cell.
func (r Record) Currency(column string, res currency.Resolver) (currency.Currency, error) {
	v := r.cells[column]
	c, err := res.Resolve(v)
	if err != nil {
		return "", &FieldError{Column: column, Value: v, Err: err}
	}
	return c, nil
}

// OptionalCurrency resolves a currency cell that may be empty.
func (r Record) OptionalCurrency(column string, res currency.Resolver) (currency.Currency, error) {
	if r.cells[column] == "" {
		return "", nil
	}
	return r.Currency(column, res)
}

// Pair splits a symbol cell such as "BTC/CZK" on sep and resolves both sides.
// With allowSingle, a symbol without separator yields base == quote.
func (r Record) Pair(column, sep string, allowSingle bool, res currency.Resolver) (base, quote currency.Currency, err error) {
	v := r.cells[column]
	parts := strings.Split(v, sep)
	switch {
	case len(parts) == 2:
	case len(parts) == 1 && allowSingle:
		parts = append(parts, parts[0])
	default:
		return "", "", &FieldError{Column: column, Value: v, Err: fmt.Errorf("expected BASE%sQUOTE", sep)}
	}

	base, err = res.Resolve(parts[0])
	if err != nil {
		return "", "", &FieldError{Column: column, Value: v, Err: err}
	}
	quote, err = res.Resolve(parts[1])
	if err != nil {
		return "", "", &FieldError{Column: column, Value: v, Err: err}
	}
	return base, quote, nil
}
