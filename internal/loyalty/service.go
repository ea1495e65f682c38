package loyalty

import "context"

// WalletSource fetches wallets from the loyalty program.
type WalletSource interface {
	Wallet(ctx context.Context, customerID int64) (Wallet, error)
}

// Service serves wallet lookups through the read-through cache.
type Service struct {
	source WalletSource
	cache  *Cache
}

func NewService(source WalletSource, cache *Cache) *Service {
	return &Service{source: source, cache: cache}
}

func (s *Service) Wallet(ctx context.Context, customerID int64) (Wallet, error) {
	return s.cache.FetchWallet(ctx, customerID, func(ctx context.Context) (Wallet, error) {
		return s.source.Wallet(ctx, customerID)
	})
}

// Invalidate drops all cached wallets.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Invalidate(ctx)
}
