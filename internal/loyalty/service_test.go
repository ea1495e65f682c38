package loyalty

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	wallet Wallet
	err    error
	calls  int
}

func (m *mockSource) Wallet(context.Context, int64) (Wallet, error) {
	m.calls++
	return m.wallet, m.err
}

func newTestService(t *testing.T, source WalletSource) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(source, NewCache(client, time.Minute))
}

func TestWalletCaches(t *testing.T) {
	source := &mockSource{wallet: Wallet{CustomerID: 5, Points: 1200, Tier: "gold"}}
	svc := newTestService(t, source)

	first, err := svc.Wallet(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, int64(1200), first.Points)

	second, err := svc.Wallet(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, source.calls)
}

func TestInvalidateForcesReload(t *testing.T) {
	source := &mockSource{wallet: Wallet{CustomerID: 5, Points: 100}}
	svc := newTestService(t, source)

	_, err := svc.Wallet(context.Background(), 5)
	require.NoError(t, err)

	source.wallet.Points = 250
	require.NoError(t, svc.Invalidate(context.Background()))

	reloaded, err := svc.Wallet(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, int64(250), reloaded.Points)
	require.Equal(t, 2, source.calls)
}

func TestNilCachePassesThrough(t *testing.T) {
	source := &mockSource{wallet: Wallet{CustomerID: 9, Points: 10}}
	svc := NewService(source, nil)

	wallet, err := svc.Wallet(context.Background(), 9)
	require.NoError(t, err)
	require.Equal(t, int64(10), wallet.Points)
}
