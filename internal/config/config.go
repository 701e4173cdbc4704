// Package config loads the import service settings from environment
// variables. Defaults are applied for unset values and the result is
// validated on startup so a misconfigured process fails before serving.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Import   ImportConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Currency CurrencyConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port also reads PORT, as set by most container platforms.
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"2m"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout bounds graceful shutdown, including draining imports.
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for non-import requests.
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"15s"`
}

// ImportConfig holds CSV import settings.
type ImportConfig struct {
	// MaxFileSize is the request body limit in bytes (default: 50MB)
	MaxFileSize int64 `env:"IMPORT_MAX_FILE_SIZE" default:"52428800"`

	// MaxConcurrent is the number of imports parsed at once (default: 5)
	MaxConcurrent int `env:"IMPORT_MAX_CONCURRENT" default:"5"`

	// MaxWaitTime is how long a request waits for an import slot.
	MaxWaitTime time.Duration `env:"IMPORT_MAX_WAIT_TIME" default:"30s"`

	// Timeout bounds a single file import.
	Timeout time.Duration `env:"IMPORT_TIMEOUT" default:"2m"`

	// ResultTTL is how long a result can be fetched again by its import ID.
	ResultTTL time.Duration `env:"IMPORT_RESULT_TTL" default:"15m"`
}

// RateLimitConfig holds per-client rate limits.
type RateLimitConfig struct {
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute applies to every API route (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// ImportLimit applies to the import routes on top of the general limit.
	ImportLimit int `env:"RATE_LIMIT_IMPORT" default:"20"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of proxy CIDRs whose
	// forwarding headers are believed.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	RequireAPIKey bool     `env:"REQUIRE_API_KEY" default:"false"`
	APIKeys       []string `env:"API_KEYS"`
}

// CurrencyConfig extends the built-in currency registry.
type CurrencyConfig struct {
	// Extra lists tickers accepted in addition to the defaults.
	Extra []string `env:"CURRENCY_EXTRA"`

	// ExtraPairs lists BASE/QUOTE pairs allowed outside the default rules.
	ExtraPairs []string `env:"CURRENCY_EXTRA_PAIRS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Pairs splits ExtraPairs into base and quote codes.
func (c *CurrencyConfig) Pairs() ([][2]string, error) {
	out := make([][2]string, 0, len(c.ExtraPairs))
	for _, p := range c.ExtraPairs {
		base, quote, ok := strings.Cut(p, "/")
		base, quote = strings.TrimSpace(base), strings.TrimSpace(quote)
		if !ok || base == "" || quote == "" {
			return nil, fmt.Errorf("pair %q is not in BASE/QUOTE form", p)
		}
		out = append(out, [2]string{base, quote})
	}
	return out, nil
}
