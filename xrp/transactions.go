package xrp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/AlexZinkM/xrp-wallet/internal/common"
	"github.com/AlexZinkM/xrp-wallet/internal/model"

	"go.uber.org/zap"
)

const currencyXRP = "XRP"

// rippleEpoch is 2000-01-01T00:00:00Z, the zero of ledger close times.
var rippleEpoch = time.Unix(946684800, 0).UTC()

// ledgerTx is the subset of a ledger transaction the history view shows.
type ledgerTx struct {
	Hash            string          `json:"hash"`
	TransactionType string          `json:"TransactionType"`
	Account         string          `json:"Account"`
	Destination     string          `json:"Destination"`
	Amount          json.RawMessage `json:"Amount"`
	Fee             string          `json:"Fee"`
	DestinationTag  *uint32         `json:"DestinationTag"`
	Date            int64           `json:"date"`
	LedgerIndex     int64           `json:"ledger_index"`
}

type ledgerMeta struct {
	TransactionResult string          `json:"TransactionResult"`
	DeliveredAmount   json.RawMessage `json:"delivered_amount"`
}

type issuedAmount struct {
	Currency string `json:"currency"`
	Issuer   string `json:"issuer"`
	Value    string `json:"value"`
}

// GetTransactions gets wallet transactions with filtering
func (s *Service) GetTransactions(ctx context.Context, id string, req *model.LogRequest) (*model.LogResponse, error) {
	rec, err := s.vault.Record(id)
	if err != nil {
		return nil, err
	}
	address := rec.Address

	limit := req.Limit
	if limit == 0 {
		limit = s.opts.HistoryLimit
	}

	raw, err := s.ledger.GetHistory(ctx, address, limit)
	if err != nil {
		// history is informational; show an empty list rather than fail the view
		s.log.Warn("history unavailable", zap.String("address", address), zap.Error(err))
		raw = nil
	}

	resultTransactions := make([]model.Transaction, 0, len(raw))
	for _, r := range raw {
		tx, err := parseTransaction(r, address)
		if err != nil {
			s.log.Debug("skipping unparsable transaction", zap.Error(err))
			continue
		}
		if !matches(tx, req) {
			continue
		}
		resultTransactions = append(resultTransactions, *tx)
	}

	// Sort by time DESC (newest first)
	sort.SliceStable(resultTransactions, func(i, j int) bool {
		return resultTransactions[i].Timestamp.After(resultTransactions[j].Timestamp)
	})

	// Calculate totals in drops (XRP transactions only)
	var incomeDrops, spentDrops uint64
	for _, tx := range resultTransactions {
		if tx.Currency != currencyXRP || tx.Status != "tesSUCCESS" {
			continue
		}
		drops, err := common.XRPToDrops(tx.Amount)
		if err != nil {
			continue
		}
		switch tx.Type {
		case model.TransactionTypeDebit:
			incomeDrops += drops
		case model.TransactionTypeCredit:
			spentDrops += drops
		}
	}

	return &model.LogResponse{
		Address:        address,
		TotalIncomeXRP: common.DropsToXRP(incomeDrops),
		TotalSpentXRP:  common.DropsToXRP(spentDrops),
		Transactions:   resultTransactions,
	}, nil
}

func matches(tx *model.Transaction, req *model.LogRequest) bool {
	// Filter by type
	if req.Type != nil && *req.Type != tx.Type {
		return false
	}

	// Filter by txId
	if req.TxID != nil && *req.TxID != tx.TxID {
		return false
	}

	// Filter by dates
	if req.From != nil && tx.Timestamp.Before(*req.From) {
		return false
	}
	if req.To != nil && tx.Timestamp.After(*req.To) {
		return false
	}

	// Filter by amount (using integer comparison to avoid float precision issues).
	// Amounts that cannot be compared are excluded by an amount filter.
	if req.MinAmount != nil {
		cmp, err := common.CompareXRPAmounts(tx.Amount, *req.MinAmount)
		if err != nil || cmp < 0 {
			return false
		}
	}
	if req.MaxAmount != nil {
		cmp, err := common.CompareXRPAmounts(tx.Amount, *req.MaxAmount)
		if err != nil || cmp > 0 {
			return false
		}
	}
	return true
}

// parseTransaction converts one account_tx entry into the display form, seen from address.
func parseTransaction(r model.RawTxRecord, address string) (*model.Transaction, error) {
	var tx ledgerTx
	if err := json.Unmarshal(r.Tx, &tx); err != nil {
		return nil, fmt.Errorf("failed to decode tx: %w", err)
	}
	var meta ledgerMeta
	if len(r.Meta) > 0 && r.Meta[0] == '{' {
		if err := json.Unmarshal(r.Meta, &meta); err != nil {
			return nil, fmt.Errorf("failed to decode meta: %w", err)
		}
	}

	out := &model.Transaction{
		Type:           model.TransactionTypeDebit,
		TxID:           tx.Hash,
		Kind:           tx.TransactionType,
		From:           tx.Account,
		To:             tx.Destination,
		Amount:         "0",
		Currency:       currencyXRP,
		DestinationTag: tx.DestinationTag,
		OurFeeXRP:      common.DropsToXRP(0),
		LedgerIndex:    tx.LedgerIndex,
		Status:         meta.TransactionResult,
	}
	if tx.Date > 0 {
		out.Timestamp = rippleEpoch.Add(time.Duration(tx.Date) * time.Second)
	}
	if !r.Validated {
		out.Status = "pending"
	}

	if tx.Account == address {
		out.Type = model.TransactionTypeCredit
		out.OurFeeXRP = feeToXRP(tx.Fee)
	}

	// delivered_amount is authoritative for partial payments
	amount := tx.Amount
	if len(meta.DeliveredAmount) > 0 && string(meta.DeliveredAmount) != `"unavailable"` {
		amount = meta.DeliveredAmount
	}
	if len(amount) > 0 {
		value, currency, err := parseAmount(amount)
		if err != nil {
			return nil, err
		}
		out.Amount, out.Currency = value, currency
	}
	return out, nil
}

// parseAmount reads a ledger amount: a drops string for XRP or an object for issued
// currencies.
func parseAmount(raw json.RawMessage) (value, currency string, err error) {
	var drops string
	if err := json.Unmarshal(raw, &drops); err == nil {
		n, err := parseDrops(drops)
		if err != nil {
			return "", "", err
		}
		return common.DropsToXRP(n), currencyXRP, nil
	}

	var issued issuedAmount
	if err := json.Unmarshal(raw, &issued); err != nil {
		return "", "", fmt.Errorf("failed to decode amount: %w", err)
	}
	return issued.Value, issued.Currency, nil
}

func feeToXRP(fee string) string {
	n, err := parseDrops(fee)
	if err != nil {
		return common.DropsToXRP(0)
	}
	return common.DropsToXRP(n)
}

func parseDrops(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid drops %q: %w", s, err)
	}
	return n, nil
}
