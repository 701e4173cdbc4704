// Package currency provides the ticker registry and the allowed-pair registry
// consulted by the import engine.
//
// The engine only depends on the Resolver and PairRegistry interfaces. Static
// is the built-in implementation used by the server and by tests; callers with
// their own reference data can supply any other implementation.
package currency

import (
	"fmt"
	"strings"
)

// Currency is a canonical, upper-cased ticker symbol.
type Currency string

// Code returns the ticker as a string.
func (c Currency) Code() string {
	return string(c)
}

// IsZero reports whether the currency is unset.
func (c Currency) IsZero() bool {
	return c == ""
}

// IsFiat reports whether the ticker is a government currency.
func (c Currency) IsFiat() bool {
	return fiat[c]
}

// Pair formats base and quote as BASE/QUOTE.
func Pair(base, quote Currency) string {
	return base.Code() + "/" + quote.Code()
}

// Resolver maps a raw ticker string to a canonical currency.
type Resolver interface {
	Resolve(code string) (Currency, error)
}

// PairRegistry reports whether a base/quote pair may be imported.
type PairRegistry interface {
	IsAllowed(base, quote Currency) bool
}

// UnknownCurrencyError is returned when a ticker is not in the registry.
type UnknownCurrencyError struct {
	Code string
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("unknown currency %q", e.Code)
}

// prefixGlyphs are stripped (at most one) from the front of a ticker before lookup.
var prefixGlyphs = []string{"$", "€", "£"}

// Normalize trims the ticker, strips one leading currency glyph and upper-cases it.
func Normalize(code string) string {
	code = strings.TrimSpace(code)
	for _, g := range prefixGlyphs {
		if strings.HasPrefix(code, g) {
			code = strings.TrimPrefix(code, g)
			break
		}
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// Known tickers.
const (
	BTC  Currency = "BTC"
	ETH  Currency = "ETH"
	LTC  Currency = "LTC"
	BCH  Currency = "BCH"
	XRP  Currency = "XRP"
	XMR  Currency = "XMR"
	DASH Currency = "DASH"
	ZEC  Currency = "ZEC"
	ETC  Currency = "ETC"
	ADA  Currency = "ADA"
	DOT  Currency = "DOT"
	DOGE Currency = "DOGE"
	XLM  Currency = "XLM"
	EOS  Currency = "EOS"
	TRX  Currency = "TRX"
	LINK Currency = "LINK"
	UNI  Currency = "UNI"
	SOL  Currency = "SOL"
	BNB  Currency = "BNB"
	USDT Currency = "USDT"
	USDC Currency = "USDC"
	DAI  Currency = "DAI"

	USD Currency = "USD"
	EUR Currency = "EUR"
	CZK Currency = "CZK"
	CAD Currency = "CAD"
	GBP Currency = "GBP"
	CHF Currency = "CHF"
	JPY Currency = "JPY"
	AUD Currency = "AUD"
	PLN Currency = "PLN"
)

var fiat = map[Currency]bool{
	USD: true, EUR: true, CZK: true, CAD: true, GBP: true,
	CHF: true, JPY: true, AUD: true, PLN: true,
}

var crypto = []Currency{
	BTC, ETH, LTC, BCH, XRP, XMR, DASH, ZEC, ETC, ADA, DOT,
	DOGE, XLM, EOS, TRX, LINK, UNI, SOL, BNB, USDT, USDC, DAI,
}

// cryptoQuotes are the non-fiat currencies trades may be quoted in.
var cryptoQuotes = []Currency{BTC, ETH, USDT, USDC, DAI}
