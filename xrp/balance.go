package xrp

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/AlexZinkM/xrp-wallet/internal/common"
	"github.com/AlexZinkM/xrp-wallet/internal/errs"
	"github.com/AlexZinkM/xrp-wallet/internal/model"

	"go.uber.org/zap"
)

// GetBalance gets wallet balance. A network fault degrades to 0 with Available unset.
func (s *Service) GetBalance(ctx context.Context, id string) (*model.BalanceResponse, error) {
	rec, err := s.vault.Record(id)
	if err != nil {
		return nil, err
	}

	available := true
	drops, err := s.ledger.GetBalance(ctx, rec.Address)
	if err != nil {
		if !errors.Is(err, errs.ErrNetwork) {
			return nil, err
		}
		s.log.Warn("balance unavailable", zap.String("address", rec.Address), zap.Error(err))
		available, drops = false, 0
	}

	// Convert to display string (no float precision loss)
	xrp := common.DropsToXRP(drops)

	// Calculate USD (use float only for display, not for critical operations)
	price := s.prices.FetchPrice(ctx)
	xrpFloat, _ := strconv.ParseFloat(xrp, 64)

	return &model.BalanceResponse{
		Address:  rec.Address,
		Drops:    drops,
		XRP:      xrp,
		PriceUSD: price,
		USD:      fmt.Sprintf("%.2f", xrpFloat*price),
		Network:  s.ledger.Network().Key,

		Available: available,
	}, nil
}

// Price returns the advisory XRP price in USD.
func (s *Service) Price(ctx context.Context) *model.PriceResponse {
	return &model.PriceResponse{USD: s.prices.FetchPrice(ctx)}
}
