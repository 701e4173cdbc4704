package currency

import "sync"

// Static is an in-memory Resolver and PairRegistry.
//
// It is safe for concurrent reads. Add and AllowPair are meant for setup
// before the registry is shared; the import engine never mutates it.
type Static struct {
	mu     sync.RWMutex
	known  map[Currency]bool
	quotes map[Currency]bool
	extra  map[string]bool
}

// NewStatic returns a registry with the default tickers and quote currencies.
//
// A pair is allowed when the base is a known non-fiat currency and the quote
// is a fiat currency or one of BTC, ETH, USDT, USDC, DAI. A pair whose base
// equals its quote is also allowed; single-symbol rows such as deposits
// produce one.
func NewStatic() *Static {
	s := &Static{
		known:  make(map[Currency]bool),
		quotes: make(map[Currency]bool),
		extra:  make(map[string]bool),
	}
	for _, c := range crypto {
		s.known[c] = true
	}
	for c := range fiat {
		s.known[c] = true
		s.quotes[c] = true
	}
	for _, c := range cryptoQuotes {
		s.quotes[c] = true
	}
	return s
}

// Default is the registry used when no other is configured.
var Default = NewStatic()

// Add registers additional tickers.
func (s *Static) Add(codes ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, code := range codes {
		if n := Normalize(code); n != "" {
			s.known[Currency(n)] = true
		}
	}
}

// AllowPair explicitly allows a pair outside the default rules.
func (s *Static) AllowPair(base, quote Currency) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extra[Pair(base, quote)] = true
}

// Resolve implements Resolver.
func (s *Static) Resolve(code string) (Currency, error) {
	n := Normalize(code)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n == "" || !s.known[Currency(n)] {
		return "", &UnknownCurrencyError{Code: code}
	}
	return Currency(n), nil
}

// IsAllowed implements PairRegistry.
func (s *Static) IsAllowed(base, quote Currency) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.known[base] || !s.known[quote] {
		return false
	}
	if s.extra[Pair(base, quote)] {
		return true
	}
	if base == quote {
		return true
	}
	return !base.IsFiat() && s.quotes[quote]
}
