package xrp

import (
	"context"
	"strings"
	"time"

	"github.com/AlexZinkM/xrp-wallet/internal/errs"
	"github.com/AlexZinkM/xrp-wallet/internal/model"
	"github.com/AlexZinkM/xrp-wallet/internal/pipeline"

	"go.uber.org/zap"
)

// Pay sends XRP from wallet req.WalletID. Payments are serialized; with a cooldown
// configured a payment is refused until the cooldown since the last submitted one ends.
// password must be []byte for security (caller should zero it after use)
func (s *Service) Pay(ctx context.Context, req *model.PayRequest, password []byte) (*model.PayResponse, error) {
	// Check cooldown
	s.payMu.Lock()
	defer s.payMu.Unlock()

	if s.opts.PayCooldown > 0 && !s.lastPayTime.IsZero() {
		if elapsed := s.now().Sub(s.lastPayTime); elapsed < s.opts.PayCooldown {
			remaining := s.opts.PayCooldown - elapsed
			return nil, errs.New(errs.CooldownActive, "cooldown active, please wait %v", remaining.Round(time.Second))
		}
	}

	// Check recipient and amount before touching the vault or the network
	if _, err := pipeline.CheckOrder(req.ToAddress, req.Amount); err != nil {
		return nil, err
	}

	// Decrypt secret
	wallet, err := s.vault.Decrypt(req.WalletID, password)
	if err != nil {
		return nil, err
	}
	defer wipe(wallet)

	// Check balance; an unreadable balance counts as empty
	balance, err := s.ledger.GetBalance(ctx, wallet.Address)
	if err != nil {
		s.log.Warn("balance unavailable before payment", zap.String("address", wallet.Address), zap.Error(err))
		balance = 0
	}

	p := pipeline.New(s.ledger, s.log)
	result, err := p.Submit(ctx, pipeline.Request{
		Secret:                  wallet.Secret,
		Destination:             strings.TrimSpace(req.ToAddress),
		Amount:                  req.Amount,
		DestinationTag:          req.DestinationTag,
		Balance:                 balance,
		AcknowledgeIrreversible: req.AcknowledgeIrreversible,
	})
	// Anything past validation may reach the ledger and arms the cooldown
	if p.State() != pipeline.Idle {
		s.lastPayTime = s.now()
	}
	if err != nil {
		return nil, err
	}

	return &model.PayResponse{
		TxID:                result.Hash,
		Validated:           result.Validated,
		Result:              result.OutcomeCode,
		RefreshAfterSeconds: int(s.opts.SettleDelay / time.Second),
	}, nil
}
