package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/tradeimport/internal/config"
	"github.com/JonMunkholm/tradeimport/internal/core"
	_ "github.com/JonMunkholm/tradeimport/internal/core/adapters" // Register all formats
	"github.com/JonMunkholm/tradeimport/internal/currency"
	"github.com/JonMunkholm/tradeimport/internal/logging"
	"github.com/JonMunkholm/tradeimport/internal/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("configuration loaded", "config", cfg.String())

	if err := extendCurrencies(currency.Default, cfg.Currency); err != nil {
		logger.Error("invalid currency configuration", "error", err)
		os.Exit(1)
	}

	service := core.NewService(core.DefaultEnv(), core.ServiceConfig{
		MaxConcurrent: cfg.Import.MaxConcurrent,
		MaxWait:       cfg.Import.MaxWaitTime,
		Timeout:       cfg.Import.Timeout,
		ResultTTL:     cfg.Import.ResultTTL,
	}, logger)

	logger.Info("formats registered", "count", core.FormatCount())
	for _, a := range core.All() {
		info := a.Info()
		logger.Debug("format", "key", info.Key, "exchange", info.Exchange, "layouts", len(a.Schemas()))
	}

	server := web.NewServer(service, cfg)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info("shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if st := service.Status(); st.Active > 0 {
			logger.Info("waiting for imports to complete", "active", st.Active)
		}
		if err := service.Shutdown(ctx); err != nil {
			logger.Warn("imports did not complete in time", "error", err)
		}
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// extendCurrencies adds the configured tickers and pairs to reg.
func extendCurrencies(reg *currency.Static, cfg config.CurrencyConfig) error {
	reg.Add(cfg.Extra...)

	pairs, err := cfg.Pairs()
	if err != nil {
		return err
	}
	for _, p := range pairs {
		base, err := reg.Resolve(p[0])
		if err != nil {
			return err
		}
		quote, err := reg.Resolve(p[1])
		if err != nil {
			return err
		}
		reg.AllowPair(base, quote)
	}
	return nil
}
