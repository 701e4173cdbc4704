package core

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownFormat is returned when no registered adapter has the requested
// key or matches a header.
var ErrUnknownFormat = errors.New("unknown format")

var (
	registry   = make(map[string]Adapter)
	order      []string
	registryMu sync.RWMutex
)

// Register adds an adapter to the registry.
// Panics if an adapter with the same key is already registered.
func Register(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()

	key := a.Info().Key
	if _, exists := registry[key]; exists {
		panic(fmt.Sprintf("format already registered: %s", key))
	}
	if len(a.Schemas()) == 0 {
		panic(fmt.Sprintf("format has no schema: %s", key))
	}

	registry[key] = a
	order = append(order, key)
}

// Get returns an adapter by key.
// Returns false if not found.
func Get(key string) (Adapter, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	a, ok := registry[key]
	return a, ok
}

// Lookup is Get with an error wrapping ErrUnknownFormat.
func Lookup(key string) (Adapter, error) {
	a, ok := Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, key)
	}
	return a, nil
}

// All returns all registered adapters.
// Sorted by exchange then by key for consistent ordering.
func All() []Adapter {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]Adapter, 0, len(registry))
	for _, a := range registry {
		result = append(result, a)
	}

	sort.Slice(result, func(i, j int) bool {
		ii, ij := result[i].Info(), result[j].Info()
		if ii.Exchange != ij.Exchange {
			return ii.Exchange < ij.Exchange
		}
		return ii.Key < ij.Key
	})

	return result
}

// Detect returns the first adapter, in registration order, whose schemas
// accept header.
func Detect(header []string) (Adapter, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, key := range order {
		a := registry[key]
		if _, err := MatchHeader(key, header, a.Schemas()); err == nil {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: no format accepts the header", ErrUnknownFormat)
}

// FormatCount returns the number of registered formats.
func FormatCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered adapters.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]Adapter)
	order = nil
}
