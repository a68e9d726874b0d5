package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/AlexZinkM/xrp-wallet/internal/common"
)

// TransactionType transaction type
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "DEBIT"  // received by the wallet
	TransactionTypeCredit TransactionType = "CREDIT" // sent by the wallet
)

// RawTxRecord is one entry of an account_tx response, kept as the ledger sent it
type RawTxRecord struct {
	Tx        json.RawMessage `json:"tx"`
	Meta      json.RawMessage `json:"meta"`
	Validated bool            `json:"validated"`
}

// Transaction represents a transaction
type Transaction struct {
	Type           TransactionType `json:"type"`
	TxID           string          `json:"txId"`
	Kind           string          `json:"kind"` // ledger TransactionType, e.g. "Payment"
	From           string          `json:"from"`
	To             string          `json:"to"`
	Amount         string          `json:"amount"`
	Currency       string          `json:"currency"`
	DestinationTag *uint32         `json:"destinationTag,omitempty"`
	OurFeeXRP      string          `json:"ourFeeXRP"` // XRP we paid as fee
	Timestamp      time.Time       `json:"timestamp"`
	LedgerIndex    int64           `json:"ledgerIndex"`
	Status         string          `json:"status"`
}

// LogResponse represents response for GET /xrp/transactions
type LogResponse struct {
	Address        string        `json:"address"`
	TotalIncomeXRP string        `json:"total_income_XRP"`
	TotalSpentXRP  string        `json:"total_spent_XRP"`
	Transactions   []Transaction `json:"transactions"`
}

// LogRequest represents request parameters for GET /xrp/transactions
type LogRequest struct {
	Type      *TransactionType `form:"type"`
	TxID      *string          `form:"txId"`
	From      *time.Time       `form:"from"`
	To        *time.Time       `form:"to"`
	MinAmount *string          `form:"minAmount"`
	MaxAmount *string          `form:"maxAmount"`
	Limit     int              `form:"limit"`
}

// Validate validates LogRequest filter parameters.
func (r *LogRequest) Validate() error {
	if r.Type != nil && *r.Type != TransactionTypeDebit && *r.Type != TransactionTypeCredit {
		return fmt.Errorf("type must be DEBIT or CREDIT")
	}
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return fmt.Errorf("to date must be after or equal to from date")
	}
	if r.Limit < 0 || r.Limit > 400 {
		return fmt.Errorf("limit must be between 1 and 400")
	}
	if r.MinAmount != nil && r.MaxAmount != nil {
		cmp, err := common.CompareXRPAmounts(*r.MinAmount, *r.MaxAmount)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		if cmp == 1 {
			return fmt.Errorf("minAmount must be less than or equal to maxAmount")
		}
	}
	return nil
}
