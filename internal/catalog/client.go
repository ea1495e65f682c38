// Package catalog integrates with the product catalog service.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/atlas-retail/atlas-retail/internal/platform/httpx"
)

// Product is the subset of the catalog payload the back office needs.
type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	SKU   string  `json:"sku"`
	Price float64 `json:"price"`
}

// Client calls the catalog service over HTTP. Concurrent lookups for
// the same product are collapsed into one upstream request.
type Client struct {
	baseURL string
	http    *http.Client
	group   singleflight.Group
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Product fetches one product by id. A 404 from the catalog maps to
// httpx.ErrNotFound so callers can branch on it.
func (c *Client) Product(ctx context.Context, productID int64) (Product, error) {
	key := fmt.Sprintf("product:%d", productID)
	resultChan := c.group.DoChan(key, func() (interface{}, error) {
		return c.fetch(ctx, productID)
	})
	select {
	case <-ctx.Done():
		return Product{}, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return Product{}, res.Err
		}
		return res.Val.(Product), nil
	}
}

// ProductName satisfies the procurement catalog port.
func (c *Client) ProductName(ctx context.Context, productID int64) (string, error) {
	product, err := c.Product(ctx, productID)
	if err != nil {
		return "", err
	}
	return product.Name, nil
}

func (c *Client) fetch(ctx context.Context, productID int64) (Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/products/%d", c.baseURL, productID), nil)
	if err != nil {
		return Product{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Product{}, fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return Product{}, fmt.Errorf("%w: product %d", httpx.ErrNotFound, productID)
	default:
		return Product{}, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var product Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return Product{}, fmt.Errorf("decode catalog response: %w", err)
	}
	return product, nil
}
