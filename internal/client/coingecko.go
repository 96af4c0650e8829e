package client

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// CoinGeckoClient client for CoinGecko API
type CoinGeckoClient struct {
	client *resty.Client
}

// NewCoinGeckoClient creates a new CoinGecko client
func NewCoinGeckoClient(baseURL string) *CoinGeckoClient {
	return &CoinGeckoClient{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(15 * time.Second).
			SetHeader("Accept", "application/json"),
	}
}

// PriceResponse response from CoinGecko API
type PriceResponse struct {
	Ethereum struct {
		USD float64 `json:"usd"`
	} `json:"ethereum"`
}

// GetETHtoUSDrate gets ETH to USD exchange rate
func (c *CoinGeckoClient) GetETHtoUSDrate(ctx context.Context) (string, error) {
	var priceResp PriceResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ids":           "ethereum",
			"vs_currencies": "usd",
		}).
		SetResult(&priceResp).
		Get("/simple/price")
	if err != nil {
		return "", fmt.Errorf("failed to get rate: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("failed to get rate: status %d", resp.StatusCode())
	}
	if priceResp.Ethereum.USD <= 0 {
		return "", fmt.Errorf("failed to get rate: empty price")
	}

	return strconv.FormatFloat(priceResp.Ethereum.USD, 'f', 2, 64), nil
}
