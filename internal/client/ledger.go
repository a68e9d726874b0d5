package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/AlexZinkM/xrp-wallet/internal/common"
	"github.com/AlexZinkM/xrp-wallet/internal/errs"
	"github.com/AlexZinkM/xrp-wallet/internal/model"
	"github.com/AlexZinkM/xrp-wallet/internal/txn"

	"go.uber.org/zap"
)

const (
	// DefaultMaxFeeDrops caps the autofilled fee at 2 XRP.
	DefaultMaxFeeDrops = 2_000_000

	// ledgerOffset is how many ledgers a signed transaction stays valid for.
	ledgerOffset = 20

	defaultPollInterval = time.Second

	codeAccountNotFound = "actNotFound"
	codeTxnNotFound     = "txnNotFound"

	resultSuccess = "tesSUCCESS"

	// outcomeExpired is reported when the transaction can no longer be included.
	outcomeExpired = "tefMAX_LEDGER"
)

// ErrStale is returned when the network was switched while a request was in flight.
var ErrStale = errors.New("network changed during request")

// Options tune a Ledger. Zero values select the defaults.
type Options struct {
	Dialer       Dialer
	HTTPClient   *http.Client
	MaxFeeDrops  uint64
	PollInterval time.Duration
	Logger       *zap.Logger
}

// Ledger is the single shared connection to the selected ledger network.
// It dials lazily, keeps at most one live connection and discards results that arrive
// after a network switch.
type Ledger struct {
	dialer       Dialer
	httpClient   *http.Client
	maxFee       uint64
	pollInterval time.Duration
	log          *zap.Logger

	// dialMu serializes dials; it is never held together with mu.
	dialMu sync.Mutex

	mu   sync.Mutex
	cfg  model.NetworkConfig
	conn Conn
	gen  uint64
}

// NewLedger creates a disconnected client for cfg.
func NewLedger(cfg model.NetworkConfig, opts Options) *Ledger {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	l := &Ledger{
		dialer:       opts.Dialer,
		httpClient:   opts.HTTPClient,
		maxFee:       opts.MaxFeeDrops,
		pollInterval: opts.PollInterval,
		log:          log.Named("ledger"),
		cfg:          cfg,
	}
	if l.dialer == nil {
		l.dialer = &WSDialer{Logger: l.log}
	}
	if l.httpClient == nil {
		l.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if l.maxFee == 0 {
		l.maxFee = DefaultMaxFeeDrops
	}
	if l.pollInterval == 0 {
		l.pollInterval = defaultPollInterval
	}
	return l
}

// Network returns the selected network.
func (l *Ledger) Network() model.NetworkConfig {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg
}

// SwitchNetwork selects cfg. The live connection, if any, is closed; the next operation
// dials the new endpoint. In-flight operations finish with ErrStale.
func (l *Ledger) SwitchNetwork(cfg model.NetworkConfig) {
	l.mu.Lock()
	old := l.conn
	l.conn = nil
	l.cfg = cfg
	l.gen++
	l.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	l.log.Info("network switched", zap.String("network", cfg.Key))
}

// Disconnect closes the live connection. It is a no-op when disconnected.
func (l *Ledger) Disconnect() {
	l.mu.Lock()
	old := l.conn
	l.conn = nil
	l.gen++
	l.mu.Unlock()

	if old != nil {
		_ = old.Close()
		l.log.Info("disconnected")
	}
}

// EnsureConnected dials the selected network unless a live connection exists.
func (l *Ledger) EnsureConnected(ctx context.Context) error {
	_, _, err := l.session(ctx)
	return err
}

// session returns the live connection and its generation, dialing when needed.
func (l *Ledger) session(ctx context.Context) (Conn, uint64, error) {
	if conn, gen, ok := l.live(); ok {
		return conn, gen, nil
	}

	l.dialMu.Lock()
	defer l.dialMu.Unlock()

	// another caller may have dialed while we waited
	if conn, gen, ok := l.live(); ok {
		return conn, gen, nil
	}

	l.mu.Lock()
	cfg, gen := l.cfg, l.gen
	l.mu.Unlock()

	conn, err := l.dialer.Dial(ctx, cfg.EndpointURL)
	if err != nil {
		return nil, 0, errs.Network(err, "failed to connect to %s", cfg.DisplayName)
	}

	l.mu.Lock()
	if l.gen != gen {
		l.mu.Unlock()
		_ = conn.Close()
		return nil, 0, errs.Network(ErrStale, "connection discarded")
	}
	l.conn = conn
	l.mu.Unlock()

	l.log.Info("connected", zap.String("network", cfg.Key), zap.String("url", cfg.EndpointURL))
	return conn, gen, nil
}

func (l *Ledger) live() (Conn, uint64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.conn == nil {
		return nil, 0, false
	}
	select {
	case <-l.conn.Done():
		l.conn = nil
		return nil, 0, false
	default:
		return l.conn, l.gen, true
	}
}

func (l *Ledger) current(gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen == gen
}

// call runs one request. Server errors come back as *RPCError; every other fault is a
// NetworkError.
func (l *Ledger) call(ctx context.Context, command string, params map[string]any, out any) error {
	conn, gen, err := l.session(ctx)
	if err != nil {
		return err
	}

	err = conn.Call(ctx, command, params, out)
	if !l.current(gen) {
		return errs.Network(ErrStale, "%s result discarded", command)
	}

	var rpcErr *RPCError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &rpcErr):
		return rpcErr
	default:
		return errs.Network(err, "%s failed", command)
	}
}

type accountInfoResult struct {
	AccountData struct {
		Balance  string `json:"Balance"`
		Sequence uint32 `json:"Sequence"`
	} `json:"account_data"`
}

func (l *Ledger) accountInfo(ctx context.Context, address string) (*accountInfoResult, error) {
	var res accountInfoResult
	err := l.call(ctx, "account_info", map[string]any{
		"account":      address,
		"ledger_index": "validated",
	}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetBalance returns the validated balance of address in drops. An account that does not
// exist on the ledger has a balance of 0.
func (l *Ledger) GetBalance(ctx context.Context, address string) (uint64, error) {
	info, err := l.accountInfo(ctx, address)
	if IsRPCError(err, codeAccountNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, asNetwork(err, "failed to get balance")
	}

	drops, err := strconv.ParseUint(info.AccountData.Balance, 10, 64)
	if err != nil {
		return 0, errs.Network(err, "unexpected balance %q", info.AccountData.Balance)
	}
	return drops, nil
}

// GetHistory returns up to limit of the most recent transactions touching address.
func (l *Ledger) GetHistory(ctx context.Context, address string, limit int) ([]model.RawTxRecord, error) {
	var res struct {
		Transactions []model.RawTxRecord `json:"transactions"`
	}
	err := l.call(ctx, "account_tx", map[string]any{
		"account":          address,
		"ledger_index_min": -1,
		"ledger_index_max": -1,
		"limit":            limit,
	}, &res)
	if IsRPCError(err, codeAccountNotFound) {
		return []model.RawTxRecord{}, nil
	}
	if err != nil {
		return nil, asNetwork(err, "failed to get history")
	}
	if res.Transactions == nil {
		res.Transactions = []model.RawTxRecord{}
	}
	return res.Transactions, nil
}

// Autofill sets Sequence, Fee and LastLedgerSequence of p from the current ledger state.
func (l *Ledger) Autofill(ctx context.Context, p *txn.Payment) error {
	info, err := l.accountInfo(ctx, p.Account)
	if IsRPCError(err, codeAccountNotFound) {
		return errs.New(errs.InsufficientBalance, "account %s is not funded", p.Account)
	}
	if err != nil {
		return asNetwork(err, "failed to get account sequence")
	}

	fee, err := l.fee(ctx)
	if err != nil {
		return err
	}

	validated, err := l.validatedIndex(ctx)
	if err != nil {
		return err
	}

	p.Sequence = info.AccountData.Sequence
	p.Fee = fee
	p.LastLedgerSequence = validated + ledgerOffset
	return nil
}

func (l *Ledger) fee(ctx context.Context) (uint64, error) {
	var res struct {
		Drops struct {
			BaseFee       string `json:"base_fee"`
			OpenLedgerFee string `json:"open_ledger_fee"`
		} `json:"drops"`
	}
	if err := l.call(ctx, "fee", nil, &res); err != nil {
		return 0, asNetwork(err, "failed to get fee")
	}

	fee, err := strconv.ParseUint(res.Drops.OpenLedgerFee, 10, 64)
	if err != nil {
		return 0, errs.Network(err, "unexpected fee %q", res.Drops.OpenLedgerFee)
	}
	if base, err := strconv.ParseUint(res.Drops.BaseFee, 10, 64); err == nil && base > fee {
		fee = base
	}
	if fee > l.maxFee {
		l.log.Warn("fee capped", zap.Uint64("fee", fee), zap.Uint64("max", l.maxFee))
		fee = l.maxFee
	}
	return fee, nil
}

func (l *Ledger) validatedIndex(ctx context.Context) (uint32, error) {
	var res struct {
		LedgerIndex uint32 `json:"ledger_index"`
	}
	err := l.call(ctx, "ledger", map[string]any{"ledger_index": "validated"}, &res)
	if err != nil {
		return 0, asNetwork(err, "failed to get validated ledger")
	}
	return res.LedgerIndex, nil
}

// SubmitAndWait submits signed once and waits until it is validated or its last ledger
// sequence has passed. tesSUCCESS yields a result; any other final outcome yields a
// TransactionFailed error carrying the outcome code.
func (l *Ledger) SubmitAndWait(ctx context.Context, signed *txn.Signed) (*model.TransactionResult, error) {
	var sub struct {
		EngineResult        string `json:"engine_result"`
		EngineResultMessage string `json:"engine_result_message"`
	}
	if err := l.call(ctx, "submit", map[string]any{"tx_blob": signed.Blob}, &sub); err != nil {
		return nil, asNetwork(err, "failed to submit transaction")
	}

	l.log.Info("transaction submitted",
		zap.String("hash", signed.Hash),
		zap.String("preliminary", sub.EngineResult))

	// malformed or already-impossible transactions are never applied
	if strings.HasPrefix(sub.EngineResult, "tem") || strings.HasPrefix(sub.EngineResult, "tef") {
		return nil, errs.Failed(sub.EngineResult)
	}

	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		res, done, err := l.checkOutcome(ctx, signed)
		if err != nil || done {
			return res, err
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, errs.Network(ctx.Err(), "gave up waiting for %s", signed.Hash)
		}
	}
}

// checkOutcome looks the transaction up once. done is false while the outcome is unknown.
func (l *Ledger) checkOutcome(ctx context.Context, signed *txn.Signed) (*model.TransactionResult, bool, error) {
	var res struct {
		Validated bool `json:"validated"`
		Meta      struct {
			TransactionResult string `json:"TransactionResult"`
		} `json:"meta"`
	}
	err := l.call(ctx, "tx", map[string]any{"transaction": signed.Hash}, &res)
	switch {
	case IsRPCError(err, codeTxnNotFound):
	case err != nil:
		return nil, true, asNetwork(err, "failed to look up transaction")
	case res.Validated:
		outcome := res.Meta.TransactionResult
		l.log.Info("transaction validated", zap.String("hash", signed.Hash), zap.String("result", outcome))
		if outcome != resultSuccess {
			return nil, true, errs.Failed(outcome)
		}
		return &model.TransactionResult{Hash: signed.Hash, Validated: true, OutcomeCode: outcome}, true, nil
	}

	validated, err := l.validatedIndex(ctx)
	if err != nil {
		return nil, true, err
	}
	if validated > signed.LastLedgerSequence {
		return nil, true, errs.Failed(outcomeExpired)
	}
	return nil, false, nil
}

// FundTestnet asks the network's faucet to fund address. Live networks have no faucet.
func (l *Ledger) FundTestnet(ctx context.Context, address string) (*model.FundResponse, error) {
	cfg := l.Network()
	if cfg.IsLive || cfg.FaucetURL == "" {
		return nil, errs.New(errs.Unsupported, "%s has no faucet", cfg.DisplayName)
	}

	body, err := json.Marshal(map[string]string{"destination": address})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal faucet request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.FaucetURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build faucet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, errs.Network(err, "faucet request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errs.Network(fmt.Errorf("status %d", resp.StatusCode), "faucet request failed")
	}

	var faucetResp struct {
		Amount json.Number `json:"amount"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&faucetResp); err != nil {
		return nil, errs.Network(err, "failed to decode faucet response")
	}

	amount := faucetResp.Amount.String()
	if drops, err := common.XRPToDrops(amount); err == nil {
		amount = common.DropsToXRP(drops)
	}
	l.log.Info("testnet faucet funded", zap.String("address", address), zap.String("amount", amount))
	return &model.FundResponse{Address: address, Amount: amount}, nil
}

// asNetwork classifies err as a NetworkError unless it already carries a class.
func asNetwork(err error, msg string) error {
	if errs.CodeOf(err) != "" {
		return err
	}
	return errs.Network(err, "%s", msg)
}
