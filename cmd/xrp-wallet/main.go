// XRP wallet server: encrypted local key custody behind a JSON API.
// Usage: go run ./cmd/xrp-wallet
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexZinkM/xrp-wallet/internal/api"
	"github.com/AlexZinkM/xrp-wallet/internal/client"
	"github.com/AlexZinkM/xrp-wallet/internal/config"
	"github.com/AlexZinkM/xrp-wallet/internal/contacts"
	"github.com/AlexZinkM/xrp-wallet/internal/crypto"
	"github.com/AlexZinkM/xrp-wallet/internal/handler"
	"github.com/AlexZinkM/xrp-wallet/internal/logger"
	"github.com/AlexZinkM/xrp-wallet/internal/storage"
	"github.com/AlexZinkM/xrp-wallet/internal/vault"
	"github.com/AlexZinkM/xrp-wallet/xrp"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// @title			XRP Wallet API
// @version		1.0
// @description	Local XRP Ledger wallet: encrypted key custody, balances, history and payments.
// @BasePath		/
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Init(); err != nil {
		return err
	}
	cfg := config.Get()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	store, err := storage.Open(cfg.WalletDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	v := vault.New(store, crypto.Params{N: cfg.ScryptN, R: 8, P: 1}, log)
	book := contacts.New(store, log)

	ledger := client.NewLedger(cfg.ActiveNetwork(), client.Options{
		MaxFeeDrops: cfg.MaxFeeDrops,
		Logger:      log,
	})
	defer ledger.Disconnect()

	prices := client.NewCoinGeckoClient(cfg.PriceAPIURL, log)

	svc := xrp.New(v, book, ledger, prices, store, xrp.Options{
		Networks:     cfg.Networks(),
		PayCooldown:  cfg.PayCooldownDuration(),
		SettleDelay:  cfg.SettleDelayDuration(),
		HistoryLimit: cfg.HistoryLimit,
	}, log)
	if err := svc.RestoreNetwork(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.SetupRouter(handler.NewXRPHandler(svc, log)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server started",
			zap.String("addr", srv.Addr),
			zap.String("network", svc.Network().Key),
			zap.String("db", cfg.WalletDBPath),
		)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
