package model

// PayRequest represents request for POST /xrp/pay
type PayRequest struct {
	WalletID                string  `json:"walletId"`
	Password                string  `json:"password"`
	ToAddress               string  `json:"toAddress"`
	Amount                  string  `json:"amount"`
	DestinationTag          *uint32 `json:"destinationTag,omitempty"`
	AcknowledgeIrreversible bool    `json:"acknowledgeIrreversible"`
}

// PayResponse represents response for POST /xrp/pay
type PayResponse struct {
	TxID                string `json:"txId"`
	Validated           bool   `json:"validated"`
	Result              string `json:"result"`
	RefreshAfterSeconds int    `json:"refreshAfterSeconds"`
}

// TransactionResult is the definitive ledger answer for a submitted transaction
type TransactionResult struct {
	Hash        string `json:"hash"`
	Validated   bool   `json:"validated"`
	OutcomeCode string `json:"outcomeCode"`
}

// FundResponse represents response for POST /xrp/wallets/fund
type FundResponse struct {
	Address string `json:"address"`
	Amount  string `json:"amount,omitempty"`
}
