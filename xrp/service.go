// Package xrp implements the wallet use cases on top of the vault, the ledger client and
// the payment pipeline.
package xrp

import (
	"context"
	"sync"
	"time"

	"github.com/AlexZinkM/xrp-wallet/internal/contacts"
	"github.com/AlexZinkM/xrp-wallet/internal/model"
	"github.com/AlexZinkM/xrp-wallet/internal/pipeline"
	"github.com/AlexZinkM/xrp-wallet/internal/vault"

	"go.uber.org/zap"
)

const (
	defaultHistoryLimit = 20
	defaultSettleDelay  = 3 * time.Second

	// MinPasswordLength is the shortest password accepted for a new wallet.
	MinPasswordLength = 6
)

// Ledger is everything the service needs from the network; *client.Ledger implements it.
type Ledger interface {
	pipeline.Ledger
	GetBalance(ctx context.Context, address string) (uint64, error)
	GetHistory(ctx context.Context, address string, limit int) ([]model.RawTxRecord, error)
	SwitchNetwork(cfg model.NetworkConfig)
	FundTestnet(ctx context.Context, address string) (*model.FundResponse, error)
}

// PriceOracle reports the XRP price in USD, 0 when unknown.
type PriceOracle interface {
	FetchPrice(ctx context.Context) float64
}

// SettingsStore persists user settings; *storage.Store implements it.
type SettingsStore interface {
	Settings() (model.Settings, error)
	SaveSettings(settings model.Settings) error
}

// Options tune the service. Zero values select the defaults.
type Options struct {
	// Networks are the selectable networks by key.
	Networks map[string]model.NetworkConfig

	// PayCooldown is the minimum time between two payments; 0 disables it.
	PayCooldown time.Duration

	// SettleDelay is the refresh hint returned after a successful payment.
	SettleDelay time.Duration

	// HistoryLimit is the number of transactions fetched when a request sets none.
	HistoryLimit int
}

// Service holds the wallet's long lived dependencies.
type Service struct {
	vault    *vault.Vault
	contacts *contacts.Book
	ledger   Ledger
	prices   PriceOracle
	settings SettingsStore
	opts     Options
	log      *zap.Logger
	now      func() time.Time

	payMu       sync.Mutex
	lastPayTime time.Time
}

// New creates a Service.
func New(v *vault.Vault, book *contacts.Book, ledger Ledger, prices PriceOracle, settings SettingsStore, opts Options, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Networks == nil {
		opts.Networks = map[string]model.NetworkConfig{
			model.NetworkTestnet: model.Testnet,
			model.NetworkMainnet: model.Mainnet,
		}
	}
	if opts.SettleDelay == 0 {
		opts.SettleDelay = defaultSettleDelay
	}
	if opts.HistoryLimit == 0 {
		opts.HistoryLimit = defaultHistoryLimit
	}
	return &Service{
		vault:    v,
		contacts: book,
		ledger:   ledger,
		prices:   prices,
		settings: settings,
		opts:     opts,
		log:      log.Named("xrp"),
		now:      time.Now,
	}
}

// wipe drops references to the secret fields of w.
func wipe(w *model.Wallet) {
	if w == nil {
		return
	}
	w.Secret = ""
	w.PrivateKey = ""
}
