// Package vault keeps many password-encrypted wallets behind a cleartext catalog.
package vault

import (
	"fmt"
	"strings"
	"time"

	"github.com/AlexZinkM/xrp-wallet/internal/crypto"
	"github.com/AlexZinkM/xrp-wallet/internal/errs"
	"github.com/AlexZinkM/xrp-wallet/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the persistence the vault needs; *storage.Store implements it.
type Store interface {
	AddWallet(rec *model.WalletRecord, blob *model.EncryptedBlob) error
	Wallets() ([]model.WalletRecord, error)
	Wallet(id string) (*model.WalletRecord, *model.EncryptedBlob, error)
	ReplaceBlob(id string, blob *model.EncryptedBlob) error
	DeleteWallet(id string) (bool, error)
	ClearWallets() error
}

// Vault encrypts wallets on the way in and decrypts them on unlock.
// It holds no decrypted state; every call works from the store.
type Vault struct {
	store  Store
	params crypto.Params
	log    *zap.Logger
	now    func() time.Time
}

// New creates a vault sealing new wallets with params.
func New(store Store, params crypto.Params, log *zap.Logger) *Vault {
	if log == nil {
		log = zap.NewNop()
	}
	return &Vault{
		store:  store,
		params: params,
		log:    log.Named("vault"),
		now:    time.Now,
	}
}

// EncryptAndStore seals wallet under password and appends it to the catalog as name.
func (v *Vault) EncryptAndStore(wallet *model.Wallet, password []byte, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errs.ErrInvalidName
	}

	id := uuid.NewString()
	blob, err := crypto.EncryptWallet(wallet, password, []byte(id), v.params)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt wallet: %w", err)
	}

	rec := &model.WalletRecord{
		ID:        id,
		Name:      name,
		Address:   wallet.Address,
		CreatedAt: v.now().UTC(),
	}
	if err := v.store.AddWallet(rec, blob); err != nil {
		return "", err
	}

	v.log.Info("wallet stored", zap.String("id", id), zap.String("address", wallet.Address))
	return id, nil
}

// Decrypt opens wallet id with password.
func (v *Vault) Decrypt(id string, password []byte) (*model.Wallet, error) {
	rec, blob, err := v.store.Wallet(id)
	if err != nil {
		return nil, err
	}

	wallet, err := crypto.DecryptWallet(blob, password, []byte(id))
	if err != nil {
		v.log.Debug("wallet unlock failed", zap.String("id", id), zap.String("code", string(errs.CodeOf(err))))
		return nil, err
	}
	if wallet.Address != rec.Address {
		// the blob authenticated but belongs to another catalog entry
		return nil, errs.ErrWrongPassword
	}
	return wallet, nil
}

// Record returns the catalog entry of id.
func (v *Vault) Record(id string) (*model.WalletRecord, error) {
	rec, _, err := v.store.Wallet(id)
	return rec, err
}

// ListRecords returns catalog metadata in insertion order.
func (v *Vault) ListRecords() ([]model.WalletRecord, error) {
	return v.store.Wallets()
}

// Remove deletes wallet id. Removing an absent id is not an error.
func (v *Vault) Remove(id string) (bool, error) {
	removed, err := v.store.DeleteWallet(id)
	if err != nil {
		return false, fmt.Errorf("failed to remove wallet: %w", err)
	}
	if removed {
		v.log.Info("wallet removed", zap.String("id", id))
	}
	return removed, nil
}

// ClearAll deletes every wallet. The caller is responsible for confirming with the user.
func (v *Vault) ClearAll() error {
	if err := v.store.ClearWallets(); err != nil {
		return fmt.Errorf("failed to clear wallets: %w", err)
	}
	v.log.Warn("all wallets removed")
	return nil
}

// ChangePassword re-seals wallet id under newPassword with a fresh salt and nonce.
// The catalog record is left untouched.
func (v *Vault) ChangePassword(id string, oldPassword, newPassword []byte) error {
	wallet, err := v.Decrypt(id, oldPassword)
	if err != nil {
		return err
	}
	defer wipe(wallet)

	blob, err := crypto.EncryptWallet(wallet, newPassword, []byte(id), v.params)
	if err != nil {
		return fmt.Errorf("failed to encrypt wallet: %w", err)
	}
	if err := v.store.ReplaceBlob(id, blob); err != nil {
		return err
	}
	v.log.Info("wallet password changed", zap.String("id", id))
	return nil
}

// wipe drops references to secret strings; Go strings cannot be zeroed in place.
func wipe(w *model.Wallet) {
	w.Secret = ""
	w.PrivateKey = ""
}
