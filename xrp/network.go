package xrp

import (
	"context"
	"fmt"
	"sort"

	"github.com/AlexZinkM/xrp-wallet/internal/errs"
	"github.com/AlexZinkM/xrp-wallet/internal/model"

	"go.uber.org/zap"
)

// Network returns the active network.
func (s *Service) Network() model.NetworkConfig {
	return s.ledger.Network()
}

// Networks returns the selectable networks ordered by key.
func (s *Service) Networks() []model.NetworkConfig {
	out := make([]model.NetworkConfig, 0, len(s.opts.Networks))
	for _, cfg := range s.opts.Networks {
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// SwitchNetwork activates network key and persists the choice. A live network must be
// acknowledged as moving real funds.
func (s *Service) SwitchNetwork(key string, acknowledge bool) (*model.NetworkConfig, error) {
	cfg, ok := s.opts.Networks[key]
	if !ok {
		return nil, errs.New(errs.NotFound, "unknown network %q", key)
	}
	if cfg.IsLive && !acknowledge {
		return nil, errs.New(errs.ConfirmationRequired, "%s moves real funds and must be acknowledged", cfg.DisplayName)
	}

	if err := s.settings.SaveSettings(model.Settings{Network: key}); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	s.ledger.SwitchNetwork(cfg)
	return &cfg, nil
}

// RestoreNetwork activates the persisted network choice. An unknown or missing choice
// leaves the active network unchanged.
func (s *Service) RestoreNetwork() error {
	settings, err := s.settings.Settings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if settings.Network == "" || settings.Network == s.ledger.Network().Key {
		return nil
	}
	cfg, ok := s.opts.Networks[settings.Network]
	if !ok {
		s.log.Warn("ignoring unknown saved network", zap.String("network", settings.Network))
		return nil
	}
	s.ledger.SwitchNetwork(cfg)
	return nil
}

// FundTestnet asks the faucet of the active network to fund wallet id.
func (s *Service) FundTestnet(ctx context.Context, id string) (*model.FundResponse, error) {
	rec, err := s.vault.Record(id)
	if err != nil {
		return nil, err
	}
	return s.ledger.FundTestnet(ctx, rec.Address)
}
