package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"arobisca-checkout/internal/core/cache"
	"arobisca-checkout/internal/core/logger"
	"arobisca-checkout/internal/features/shipping/domain"
	"arobisca-checkout/internal/features/shipping/ports"

	"go.uber.org/zap"
)

const shippingCacheKey = "shipping_fees"

// CachedProvider wraps a FeeProvider with a read-through cache so the
// shipping fee table is not refetched from the store on every checkout.
type CachedProvider struct {
	// next is the underlying provider queried on cache misses.
	next ports.FeeProvider
	// cache is the cache backend.
	cache cache.Cache
	// ttl is how long the fee table stays cached.
	ttl time.Duration
}

// NewCachedProvider creates a new CachedProvider.
func NewCachedProvider(next ports.FeeProvider, c cache.Cache, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		next:  next,
		cache: c,
		ttl:   ttl,
	}
}

// List returns the cached fee table, refetching from the store on a miss.
// Cache failures degrade to direct fetches.
func (p *CachedProvider) List(ctx context.Context) ([]domain.Method, error) {
	data, err := p.cache.Get(ctx, shippingCacheKey)
	if err == nil {
		var methods []domain.Method
		if err := json.Unmarshal(data, &methods); err == nil {
			return methods, nil
		}
		logger.Get().Warn("Discarding corrupt shipping fee cache entry", zap.Error(err))
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Get().Warn("Shipping fee cache read failed", zap.Error(err))
	}

	methods, err := p.next.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(methods); err == nil {
		if err := p.cache.Set(ctx, shippingCacheKey, data, p.ttl); err != nil {
			logger.Get().Warn("Failed to cache shipping fees", zap.Error(err))
		}
	} else {
		logger.Get().Warn("Failed to marshal shipping fees for cache", zap.Error(err))
	}

	return methods, nil
}

// Invalidate drops the cached fee table.
func (p *CachedProvider) Invalidate(ctx context.Context) error {
	if err := p.cache.Delete(ctx, shippingCacheKey); err != nil {
		return fmt.Errorf("failed to invalidate shipping fee cache: %w", err)
	}
	return nil
}
