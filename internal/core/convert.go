package core

// convert.go provides cell conversion for exchange exports.
//
// These functions handle the messy reality of exported CSV data:
//   - Several date layouts per format, tried in order
//   - Currency glyphs and thousand separators in numbers
//   - Accounting negatives written as "(1.5)"
//   - Excel formula prefixes (="value") and stray BOM runes
//
// Empty numeric cells convert to zero; an absent fee is the same as no fee.

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// numericRegex validates that a string is a plain decimal after cleanup.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// errNoLayout is returned when no date layout matches.
var errNoLayout = errors.New("no matching date format")

// ParseDecimal converts a cell to a decimal.
// Handles currency glyphs, thousands separators and accounting format.
// An empty cell is zero.
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	raw := s

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "\u20ac", "") // Euro
	s = strings.ReplaceAll(s, "\u00a3", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimSpace(s)

	if !numericRegex.MatchString(s) {
		return decimal.Zero, fmt.Errorf("invalid number %q", raw)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q: %w", raw, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// ParseTime parses s with the first matching layout. Layouts without a zone
// are interpreted in loc; the result is always in UTC.
func ParseTime(s string, layouts []string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w (tried %s)", errNoLayout, strings.Join(layouts, "; "))
}

// CleanCell removes common CSV artifacts from a cell value:
// - Trims whitespace
// - Removes byte order marks anywhere in the cell
// - Removes Excel formula prefix (="...")
func CleanCell(s string) string {
	s = strings.ReplaceAll(s, "\uFEFF", "")
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	}

	return s
}

// SplitAmount splits a cell such as "-104.97 USDT" into its number and unit.
func SplitAmount(s string) (decimal.Decimal, string, error) {
	fields := strings.Fields(CleanCell(s))
	switch len(fields) {
	case 0:
		return decimal.Zero, "", nil
	case 1:
		d, err := ParseDecimal(fields[0])
		return d, "", err
	case 2:
		d, err := ParseDecimal(fields[0])
		return d, fields[1], err
	default:
		return decimal.Zero, "", fmt.Errorf("invalid amount %q", s)
	}
}
