package loyalty

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheVersionKey = "loyalty:version"

// Cache wraps redis based caching of loyalty wallets with versioning
// controls. A nil cache degrades to pass-through loads.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Version returns the current cache version, initialising when missing.
func (c *Cache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if err == redis.Nil {
		if err := c.client.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

func (c *Cache) walletKey(ctx context.Context, customerID int64) (string, error) {
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("loyalty:wallet:%d:%d", customerID, ver), nil
}

// FetchWallet loads a cached wallet or populates it using the loader.
func (c *Cache) FetchWallet(ctx context.Context, customerID int64, loader func(context.Context) (Wallet, error)) (Wallet, error) {
	if loader == nil {
		return Wallet{}, errors.New("cache: loader required")
	}
	if c == nil || c.client == nil {
		return loader(ctx)
	}
	key, err := c.walletKey(ctx, customerID)
	if err != nil {
		return Wallet{}, err
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var wallet Wallet
		if err := json.Unmarshal(payload, &wallet); err == nil {
			return wallet, nil
		}
	} else if err != redis.Nil {
		return Wallet{}, err
	}
	wallet, err := loader(ctx)
	if err != nil {
		return Wallet{}, err
	}
	raw, err := json.Marshal(wallet)
	if err != nil {
		return Wallet{}, err
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return Wallet{}, err
	}
	return wallet, nil
}

// Invalidate drops every cached wallet by incrementing the version.
func (c *Cache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, cacheVersionKey).Err()
}
