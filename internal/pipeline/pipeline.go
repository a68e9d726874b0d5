// Package pipeline drives one payment from validation through signing to a definitive
// ledger outcome.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/AlexZinkM/xrp-wallet/internal/codec"
	"github.com/AlexZinkM/xrp-wallet/internal/common"
	"github.com/AlexZinkM/xrp-wallet/internal/errs"
	"github.com/AlexZinkM/xrp-wallet/internal/keys"
	"github.com/AlexZinkM/xrp-wallet/internal/model"
	"github.com/AlexZinkM/xrp-wallet/internal/txn"

	"go.uber.org/zap"
)

// State is the position of a pipeline in its lifecycle.
type State int

const (
	Idle State = iota
	Validating
	AwaitingConfirmation
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Validating:
		return "Validating"
	case AwaitingConfirmation:
		return "AwaitingConfirmation"
	case Succeeded:
		return "Succeeded"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Terminal reports whether s is Succeeded or Failed.
func (s State) Terminal() bool {
	return s == Succeeded || s == Failed
}

const resultSuccess = "tesSUCCESS"

var (
	// ErrBusy is returned when Submit is called on a pipeline that is not Idle.
	ErrBusy = errors.New("pipeline is not idle")
)

// Ledger is the network side of a payment; *client.Ledger implements it.
type Ledger interface {
	Network() model.NetworkConfig
	Autofill(ctx context.Context, p *txn.Payment) error
	SubmitAndWait(ctx context.Context, signed *txn.Signed) (*model.TransactionResult, error)
}

// Request is one payment order. Secret is used for signing only and is never retained.
type Request struct {
	Secret         string
	Destination    string
	Amount         string // XRP, up to 6 decimals
	DestinationTag *uint32

	// Balance is the sender's last known balance in drops.
	Balance uint64

	// AcknowledgeIrreversible must be set to send on a live network.
	AcknowledgeIrreversible bool
}

// Pipeline is a single-use payment state machine. Reset makes a finished pipeline reusable.
type Pipeline struct {
	ledger Ledger
	log    *zap.Logger

	mu     sync.Mutex
	state  State
	result *model.TransactionResult
	err    error
}

// New creates an Idle pipeline.
func New(ledger Ledger, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{ledger: ledger, log: log.Named("pipeline")}
}

// State returns the current state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Outcome returns the result or error of a finished pipeline.
func (p *Pipeline) Outcome() (*model.TransactionResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result, p.err
}

// Reset returns a finished pipeline to Idle. It is a no-op on an Idle pipeline and fails
// with ErrBusy while a payment is in progress.
func (p *Pipeline) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case p.state == Idle:
		return nil
	case !p.state.Terminal():
		return ErrBusy
	}
	p.state, p.result, p.err = Idle, nil, nil
	return nil
}

func (p *Pipeline) set(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

func (p *Pipeline) finish(result *model.TransactionResult, err error) (*model.TransactionResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.state, p.result, p.err = Failed, nil, err
		return nil, err
	}
	p.state, p.result, p.err = Succeeded, result, nil
	return result, nil
}

// Submit validates req, then signs and submits the payment and blocks until the ledger
// reports a definitive outcome. Validation errors leave the pipeline Idle and happen before
// any network call.
func (p *Pipeline) Submit(ctx context.Context, req Request) (*model.TransactionResult, error) {
	p.mu.Lock()
	if p.state != Idle {
		p.mu.Unlock()
		return nil, ErrBusy
	}
	p.state = Validating
	p.mu.Unlock()

	payment, kp, err := p.validate(req)
	if err != nil {
		p.set(Idle)
		return nil, err
	}
	defer kp.Wipe()

	p.set(AwaitingConfirmation)
	// past this point the payment runs to a ledger outcome even if the caller goes away
	ctx = context.WithoutCancel(ctx)
	log := p.log.With(
		zap.String("from", payment.Account),
		zap.String("to", payment.Destination),
		zap.Uint64("drops", payment.Amount),
	)

	if err := p.ledger.Autofill(ctx, payment); err != nil {
		log.Warn("autofill failed", zap.Error(err))
		return p.finish(nil, err)
	}

	signed, err := txn.Sign(payment, kp)
	if err != nil {
		return p.finish(nil, err)
	}

	result, err := p.ledger.SubmitAndWait(ctx, signed)
	if err != nil {
		log.Warn("payment failed", zap.String("hash", signed.Hash), zap.Error(err))
		return p.finish(nil, err)
	}
	if !result.Validated || result.OutcomeCode != resultSuccess {
		return p.finish(nil, errs.Failed(result.OutcomeCode))
	}

	log.Info("payment validated", zap.String("hash", result.Hash))
	return p.finish(result, nil)
}

// CheckOrder runs the checks that need neither the wallet nor the network: the recipient
// address, then the amount. It returns the amount in drops.
func CheckOrder(destination, amount string) (uint64, error) {
	if !codec.IsValidAddress(strings.TrimSpace(destination)) {
		return 0, errs.New(errs.InvalidAddress, "invalid XRP address")
	}

	drops, err := common.XRPToDrops(amount)
	if err != nil {
		return 0, errs.Wrap(errs.InvalidAmount, err, "invalid amount")
	}
	if drops == 0 {
		return 0, errs.New(errs.InvalidAmount, "amount must be positive")
	}
	return drops, nil
}

// validate runs the ordered checks and decodes the secret.
func (p *Pipeline) validate(req Request) (*txn.Payment, *keys.KeyPair, error) {
	secret := strings.TrimSpace(req.Secret)
	if secret == "" {
		return nil, nil, errs.ErrWalletUninitialized
	}

	destination := strings.TrimSpace(req.Destination)
	drops, err := CheckOrder(destination, req.Amount)
	if err != nil {
		return nil, nil, err
	}

	if drops > req.Balance {
		return nil, nil, errs.New(errs.InsufficientBalance, "insufficient balance: have %s XRP, need %s XRP",
			common.DropsToXRP(req.Balance), common.DropsToXRP(drops))
	}

	if network := p.ledger.Network(); network.IsLive && !req.AcknowledgeIrreversible {
		return nil, nil, errs.New(errs.ConfirmationRequired,
			"payments on %s are irreversible and must be acknowledged", network.DisplayName)
	}

	kp, err := keys.FromSecret(secret)
	if err != nil {
		return nil, nil, err
	}

	payment, err := txn.NewPayment(kp.Address, destination, drops, req.DestinationTag)
	if err != nil {
		kp.Wipe()
		return nil, nil, err
	}
	return payment, kp, nil
}
