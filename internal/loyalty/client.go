// Package loyalty integrates with the loyalty program service.
package loyalty

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/atlas-retail/atlas-retail/internal/platform/httpx"
)

// Wallet is a customer's loyalty balance.
type Wallet struct {
	CustomerID int64     `json:"customerId"`
	Points     int64     `json:"points"`
	Tier       string    `json:"tier"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Client calls the loyalty service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *Client) Wallet(ctx context.Context, customerID int64) (Wallet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/wallets/%d", c.baseURL, customerID), nil)
	if err != nil {
		return Wallet{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Wallet{}, fmt.Errorf("loyalty request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return Wallet{}, fmt.Errorf("%w: wallet for customer %d", httpx.ErrNotFound, customerID)
	default:
		return Wallet{}, fmt.Errorf("loyalty returned status %d", resp.StatusCode)
	}

	var wallet Wallet
	if err := json.NewDecoder(resp.Body).Decode(&wallet); err != nil {
		return Wallet{}, fmt.Errorf("decode loyalty response: %w", err)
	}
	return wallet, nil
}
