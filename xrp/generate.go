package xrp

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/AlexZinkM/xrp-wallet/internal/common"
	"github.com/AlexZinkM/xrp-wallet/internal/errs"
	"github.com/AlexZinkM/xrp-wallet/internal/keys"
	"github.com/AlexZinkM/xrp-wallet/internal/model"

	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	qrSize = 256

	// balanceFanOut bounds concurrent balance requests for the wallet list.
	balanceFanOut = 4
)

// GenerateWallet creates a new wallet and stores it encrypted under password.
func (s *Service) GenerateWallet(name string, password []byte) (*model.GenerateResponse, error) {
	if err := checkNewWallet(name, password); err != nil {
		return nil, err
	}

	wallet := keys.Generate()
	defer wipe(wallet)

	id, err := s.vault.EncryptAndStore(wallet, password, name)
	if err != nil {
		return nil, err
	}

	return &model.GenerateResponse{
		Success: true,
		Message: "Wallet generated successfully",
		ID:      id,
		Address: wallet.Address,
	}, nil
}

// ImportWallet restores the wallet behind secret and stores it encrypted under password.
func (s *Service) ImportWallet(name, secret string, password []byte) (*model.GenerateResponse, error) {
	if err := checkNewWallet(name, password); err != nil {
		return nil, err
	}

	wallet, err := keys.ImportFromSecret(secret)
	if err != nil {
		return nil, err
	}
	defer wipe(wallet)

	id, err := s.vault.EncryptAndStore(wallet, password, name)
	if err != nil {
		return nil, err
	}

	return &model.GenerateResponse{
		Success: true,
		Message: "Wallet imported successfully",
		ID:      id,
		Address: wallet.Address,
	}, nil
}

func checkNewWallet(name string, password []byte) error {
	if strings.TrimSpace(name) == "" {
		return errs.ErrInvalidName
	}
	if len(password) < MinPasswordLength {
		return errs.ErrWeakPassword
	}
	return nil
}

// Unlock checks password against wallet id and returns its public data.
func (s *Service) Unlock(id string, password []byte) (*model.UnlockResponse, error) {
	wallet, err := s.vault.Decrypt(id, password)
	if err != nil {
		return nil, err
	}
	defer wipe(wallet)

	rec, err := s.vault.Record(id)
	if err != nil {
		return nil, err
	}

	return &model.UnlockResponse{
		ID:        id,
		Name:      rec.Name,
		Address:   wallet.Address,
		PublicKey: wallet.PublicKey,
	}, nil
}

// Wallets lists the catalog with balances. Balances are fetched concurrently; a wallet
// whose balance cannot be read shows 0 without affecting the others.
func (s *Service) Wallets(ctx context.Context) ([]model.WalletSummary, error) {
	records, err := s.vault.ListRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}

	out := make([]model.WalletSummary, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(balanceFanOut)

	for i, rec := range records {
		i, rec := i, rec
		out[i] = model.WalletSummary{WalletRecord: rec, BalanceXRP: common.DropsToXRP(0)}
		g.Go(func() error {
			drops, err := s.ledger.GetBalance(gctx, rec.Address)
			if err != nil {
				s.log.Warn("balance unavailable", zap.String("id", rec.ID), zap.Error(err))
				return nil
			}
			out[i].BalanceXRP = common.DropsToXRP(drops)
			return nil
		})
	}

	_ = g.Wait() // per-item failures are absorbed above
	return out, nil
}

// RemoveWallet deletes wallet id and reports whether it existed.
func (s *Service) RemoveWallet(id string) (bool, error) {
	return s.vault.Remove(id)
}

// ClearWallets deletes every wallet. The boundary layer must have confirmed it.
func (s *Service) ClearWallets() error {
	return s.vault.ClearAll()
}

// Receive returns the address of wallet id with a QR code encoding it.
func (s *Service) Receive(id string) (*model.ReceiveResponse, error) {
	rec, err := s.vault.Record(id)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(rec.Address, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}

	return &model.ReceiveResponse{
		Address: rec.Address,
		QR:      base64.StdEncoding.EncodeToString(png),
	}, nil
}
