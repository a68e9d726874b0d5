// Re-encrypt one stored wallet under a new password. Salt and nonce are regenerated;
// the catalog record is left untouched.
// Usage: go run ./cmd/rekey -id <wallet id>
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/AlexZinkM/xrp-wallet/internal/config"
	"github.com/AlexZinkM/xrp-wallet/internal/crypto"
	"github.com/AlexZinkM/xrp-wallet/internal/logger"
	"github.com/AlexZinkM/xrp-wallet/internal/storage"
	"github.com/AlexZinkM/xrp-wallet/internal/vault"
	"github.com/AlexZinkM/xrp-wallet/xrp"

	"go.uber.org/zap"
)

func main() {
	id := flag.String("id", "", "wallet id (see GET /xrp/wallets)")
	flag.Parse()

	if err := run(*id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(id string) error {
	if id == "" {
		return fmt.Errorf("-id is required")
	}
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
	rec, err := v.Record(id)
	if err != nil {
		return err
	}

	oldPassword, err := config.ReadPassword(fmt.Sprintf("Current password for %q: ", rec.Name))
	if err != nil {
		return err
	}
	defer clear(oldPassword)

	newPassword, err := config.ReadPassword("New password: ")
	if err != nil {
		return err
	}
	defer clear(newPassword)

	confirm, err := config.ReadPassword("Repeat new password: ")
	if err != nil {
		return err
	}
	defer clear(confirm)

	if !bytes.Equal(newPassword, confirm) {
		return fmt.Errorf("passwords do not match")
	}
	if len(newPassword) < xrp.MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", xrp.MinPasswordLength)
	}

	if err := v.ChangePassword(id, oldPassword, newPassword); err != nil {
		return err
	}
	log.Info("wallet re-encrypted", zap.String("id", id), zap.String("address", rec.Address))
	return nil
}
