package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/AlexZinkM/xrp-wallet/internal/errs"
	"github.com/AlexZinkM/xrp-wallet/internal/model"
	"github.com/AlexZinkM/xrp-wallet/internal/txn"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	genesisSecret = "snoPBrXtMeMyMHUVTgbuqAfg1SUTb"
	genesis       = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"
	destination   = "rrrrrrrrrrrrrrrrrrrrrhoLvTp"
)

type fakeLedger struct {
	network model.NetworkConfig

	mu        sync.Mutex
	autofills int
	submits   int
	signed    *txn.Signed
	payment   *txn.Payment

	autofillErr error
	result      *model.TransactionResult
	submitErr   error
	onSubmit    func(ctx context.Context)
}

func (f *fakeLedger) Network() model.NetworkConfig { return f.network }

func (f *fakeLedger) Autofill(ctx context.Context, p *txn.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.autofills++
	if f.autofillErr != nil {
		return f.autofillErr
	}
	p.Sequence, p.Fee, p.LastLedgerSequence = 5, 12, 120
	f.payment = p
	return nil
}

func (f *fakeLedger) SubmitAndWait(ctx context.Context, s *txn.Signed) (*model.TransactionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submits++
	f.signed = s
	if f.onSubmit != nil {
		f.onSubmit(ctx)
	}
	return f.result, f.submitErr
}

func (f *fakeLedger) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.autofills + f.submits
}

func validRequest() Request {
	return Request{
		Secret:      genesisSecret,
		Destination: destination,
		Amount:      "1.5",
		Balance:     100_000_000,
	}
}

func TestValidationFailuresStayIdle(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
		want   error
	}{
		{"missing secret", func(r *Request) { r.Secret = "" }, errs.ErrWalletUninitialized},
		{"bad address", func(r *Request) { r.Destination = "xabc" }, errs.ErrInvalidAddress},
		{"empty address", func(r *Request) { r.Destination = "" }, errs.ErrInvalidAddress},
		{"zero amount", func(r *Request) { r.Amount = "0" }, errs.ErrInvalidAmount},
		{"negative amount", func(r *Request) { r.Amount = "-1" }, errs.ErrInvalidAmount},
		{"not a number", func(r *Request) { r.Amount = "NaN" }, errs.ErrInvalidAmount},
		{"too precise", func(r *Request) { r.Amount = "0.0000001" }, errs.ErrInvalidAmount},
		{"over balance", func(r *Request) { r.Amount = "500"; r.Balance = 100_000_000 }, errs.ErrInsufficientBalance},
		{"bad secret", func(r *Request) { r.Secret = "snoPBrXtMeMyMHUVTgbuqAfg1SUTc" }, errs.ErrInvalidSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := &fakeLedger{network: model.Testnet}
			p := New(ledger, nil)

			req := validRequest()
			tt.mutate(&req)
			_, err := p.Submit(context.Background(), req)

			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, Idle, p.State())
			assert.Zero(t, ledger.calls())
		})
	}
}

func TestValidationOrder(t *testing.T) {
	p := New(&fakeLedger{network: model.Testnet}, nil)

	// every check would fail; the first one wins
	_, err := p.Submit(context.Background(), Request{Destination: "xabc", Amount: "-1"})
	assert.ErrorIs(t, err, errs.ErrWalletUninitialized)

	_, err = p.Submit(context.Background(), Request{Secret: genesisSecret, Destination: "xabc", Amount: "-1"})
	assert.ErrorIs(t, err, errs.ErrInvalidAddress)

	_, err = p.Submit(context.Background(), Request{Secret: genesisSecret, Destination: destination, Amount: "-1"})
	assert.ErrorIs(t, err, errs.ErrInvalidAmount)
}

func TestCheckOrder(t *testing.T) {
	drops, err := CheckOrder(" "+destination+" ", "1.5")
	require.NoError(t, err)
	assert.Equal(t, uint64(1_500_000), drops)

	_, err = CheckOrder("xabc", "-1")
	assert.ErrorIs(t, err, errs.ErrInvalidAddress)

	_, err = CheckOrder(destination, "0")
	assert.ErrorIs(t, err, errs.ErrInvalidAmount)

	_, err = CheckOrder(destination, "1.0000001")
	assert.ErrorIs(t, err, errs.ErrInvalidAmount)
}

func TestSubmitIgnoresCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var submitCtxErr error
	ledger := &fakeLedger{
		network: model.Testnet,
		result:  &model.TransactionResult{Hash: "ABC123", Validated: true, OutcomeCode: "tesSUCCESS"},
		onSubmit: func(submitCtx context.Context) {
			cancel()
			submitCtxErr = submitCtx.Err()
		},
	}
	p := New(ledger, nil)

	result, err := p.Submit(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "ABC123", result.Hash)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.NoError(t, submitCtxErr)
	assert.Equal(t, Succeeded, p.State())
}

func TestLiveNetworkRequiresAcknowledgement(t *testing.T) {
	ledger := &fakeLedger{
		network: model.Mainnet,
		result:  &model.TransactionResult{Hash: "ABC123", Validated: true, OutcomeCode: "tesSUCCESS"},
	}
	p := New(ledger, nil)

	_, err := p.Submit(context.Background(), validRequest())
	assert.ErrorIs(t, err, errs.ErrConfirmationRequired)
	assert.Equal(t, Idle, p.State())
	assert.Zero(t, ledger.calls())

	req := validRequest()
	req.AcknowledgeIrreversible = true
	_, err = p.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, Succeeded, p.State())
}

func TestSubmitSuccess(t *testing.T) {
	want := &model.TransactionResult{Hash: "ABC123", Validated: true, OutcomeCode: "tesSUCCESS"}
	ledger := &fakeLedger{network: model.Testnet, result: want}
	p := New(ledger, nil)

	tag := uint32(99)
	req := validRequest()
	req.DestinationTag = &tag

	got, err := p.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, Succeeded, p.State())

	require.NotNil(t, ledger.payment)
	assert.Equal(t, genesis, ledger.payment.Account)
	assert.Equal(t, destination, ledger.payment.Destination)
	assert.Equal(t, uint64(1_500_000), ledger.payment.Amount)
	assert.Equal(t, &tag, ledger.payment.DestinationTag)

	// only the signed blob leaves the pipeline
	require.NotNil(t, ledger.signed)
	assert.NotEmpty(t, ledger.signed.Blob)
	assert.NotContains(t, ledger.signed.Blob, genesisSecret)
	assert.Equal(t, uint32(120), ledger.signed.LastLedgerSequence)

	res, outErr := p.Outcome()
	assert.NoError(t, outErr)
	assert.Equal(t, want, res)
}

func TestSubmitFailurePreservesOutcome(t *testing.T) {
	ledger := &fakeLedger{network: model.Testnet, submitErr: errs.Failed("tecUNFUNDED_PAYMENT")}
	p := New(ledger, nil)

	_, err := p.Submit(context.Background(), validRequest())
	assert.ErrorIs(t, err, errs.ErrTransactionFailed)
	assert.Equal(t, "tecUNFUNDED_PAYMENT", errs.OutcomeOf(err))
	assert.Equal(t, Failed, p.State())
}

func TestNonSuccessResultFails(t *testing.T) {
	ledger := &fakeLedger{
		network: model.Testnet,
		result:  &model.TransactionResult{Hash: "ABC123", Validated: true, OutcomeCode: "tecNO_DST_INSUF_XRP"},
	}
	p := New(ledger, nil)

	_, err := p.Submit(context.Background(), validRequest())
	assert.ErrorIs(t, err, errs.ErrTransactionFailed)
	assert.Equal(t, "tecNO_DST_INSUF_XRP", errs.OutcomeOf(err))
	assert.Equal(t, Failed, p.State())
}

func TestNetworkFaultFails(t *testing.T) {
	ledger := &fakeLedger{network: model.Testnet, autofillErr: errs.Network(errors.New("connection reset"), "fee failed")}
	p := New(ledger, nil)

	_, err := p.Submit(context.Background(), validRequest())
	assert.ErrorIs(t, err, errs.ErrNetwork)
	assert.Equal(t, Failed, p.State())
	assert.Zero(t, ledger.submits)
}

func TestResetAndBusy(t *testing.T) {
	ledger := &fakeLedger{network: model.Testnet, submitErr: errs.Failed("tecPATH_DRY")}
	p := New(ledger, nil)
	require.NoError(t, p.Reset())

	_, err := p.Submit(context.Background(), validRequest())
	require.Error(t, err)
	require.Equal(t, Failed, p.State())

	// a finished pipeline does not start another payment until reset
	_, err = p.Submit(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, 1, ledger.submits)

	require.NoError(t, p.Reset())
	assert.Equal(t, Idle, p.State())
	res, err := p.Outcome()
	assert.Nil(t, res)
	assert.NoError(t, err)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "AwaitingConfirmation", AwaitingConfirmation.String())
	assert.True(t, Succeeded.Terminal())
	assert.False(t, Validating.Terminal())
}
