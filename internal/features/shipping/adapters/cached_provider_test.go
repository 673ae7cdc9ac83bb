package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"arobisca-checkout/internal/core/cache"
	"arobisca-checkout/internal/features/shipping/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingProvider counts upstream calls for cache hit/miss assertions.
type countingProvider struct {
	methods     []domain.Method
	returnError error
	calls       int
}

// List implements FeeProvider.
func (p *countingProvider) List(ctx context.Context) ([]domain.Method, error) {
	p.calls++
	if p.returnError != nil {
		return nil, p.returnError
	}
	return p.methods, nil
}

func newTestCache(t *testing.T) (cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	adapter, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })
	return adapter, mr
}

// TestCachedProvider_MissThenHit verifies the fee table is fetched once and then served from cache.
func TestCachedProvider_MissThenHit(t *testing.T) {
	c, _ := newTestCache(t)
	upstream := &countingProvider{methods: []domain.Method{
		{ID: "sm-1", Destination: "Nairobi CBD", Amount: 200, CODAvailable: true},
	}}

	provider := NewCachedProvider(upstream, c, 5*time.Minute)
	ctx := context.Background()

	first, err := provider.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, upstream.calls)

	second, err := provider.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, upstream.calls)
}

// TestCachedProvider_TTLExpiry verifies the table is refetched after the TTL.
func TestCachedProvider_TTLExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	upstream := &countingProvider{methods: []domain.Method{{ID: "sm-1"}}}

	provider := NewCachedProvider(upstream, c, 1*time.Second)
	ctx := context.Background()

	_, err := provider.List(ctx)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, err = provider.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.calls)
}

// TestCachedProvider_UpstreamError verifies a miss plus upstream failure surfaces the error.
func TestCachedProvider_UpstreamError(t *testing.T) {
	c, _ := newTestCache(t)
	upstream := &countingProvider{returnError: errors.New("store down")}

	provider := NewCachedProvider(upstream, c, time.Minute)

	methods, err := provider.List(context.Background())
	assert.Nil(t, methods)
	require.Error(t, err)
}

// TestCachedProvider_Invalidate verifies invalidation forces a refetch.
func TestCachedProvider_Invalidate(t *testing.T) {
	c, _ := newTestCache(t)
	upstream := &countingProvider{methods: []domain.Method{{ID: "sm-1"}}}

	provider := NewCachedProvider(upstream, c, time.Minute)
	ctx := context.Background()

	_, err := provider.List(ctx)
	require.NoError(t, err)

	require.NoError(t, provider.Invalidate(ctx))

	_, err = provider.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.calls)
}
