package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	coingeckoAPI = "https://api.coingecko.com/api/v3"
)

// CoinGeckoClient client for CoinGecko API
type CoinGeckoClient struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

// NewCoinGeckoClient creates a new CoinGecko client. An empty baseURL selects the public API.
func NewCoinGeckoClient(baseURL string, log *zap.Logger) *CoinGeckoClient {
	if baseURL == "" {
		baseURL = coingeckoAPI
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CoinGeckoClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: log.Named("price"),
	}
}

// PriceResponse response from CoinGecko API
type PriceResponse struct {
	Ripple struct {
		USD float64 `json:"usd"`
	} `json:"ripple"`
}

// FetchPrice returns the XRP price in USD. Any failure is logged and reported as 0, so
// callers can always render a balance.
func (c *CoinGeckoClient) FetchPrice(ctx context.Context) float64 {
	price, err := c.getXRPtoUSDrate(ctx)
	if err != nil {
		c.log.Warn("price unavailable", zap.Error(err))
		return 0
	}
	return price
}

func (c *CoinGeckoClient) getXRPtoUSDrate(ctx context.Context) (float64, error) {
	url := fmt.Sprintf("%s/simple/price?ids=ripple&vs_currencies=usd", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to get rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("failed to get rate: status %d", resp.StatusCode)
	}

	var priceResp PriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&priceResp); err != nil {
		return 0, fmt.Errorf("failed to decode rate: %w", err)
	}
	if priceResp.Ripple.USD < 0 {
		return 0, fmt.Errorf("negative rate %v", priceResp.Ripple.USD)
	}
	return priceResp.Ripple.USD, nil
}
