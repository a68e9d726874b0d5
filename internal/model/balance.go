package model

// BalanceResponse represents response for GET /xrp/balance
type BalanceResponse struct {
	Address  string  `json:"address"`
	Drops    uint64  `json:"drops"`
	XRP      string  `json:"xrp"`
	PriceUSD float64 `json:"priceUsd"`
	USD      string  `json:"xrp_amount_in_usd"`
	Network  string  `json:"network"`

	// Available is false when the ledger could not be reached and Drops is a placeholder 0.
	Available bool `json:"available"`
}

// PriceResponse represents response for GET /xrp/price
type PriceResponse struct {
	USD float64 `json:"usd"`
}
