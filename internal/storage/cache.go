package storage

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/farmstead/internal/domain"
	"github.com/osse101/farmstead/internal/logger"
)

// CachedStore is a write-through cache in front of a slower Store.
// Cached snapshots are cloned on the way in and out so callers never share
// slices with the cache.
type CachedStore struct {
	next  Store
	cache *expirable.LRU[string, *domain.Snapshot]
}

// NewCachedStore wraps next with an LRU of size entries that expire after ttl
func NewCachedStore(next Store, size int, ttl time.Duration) *CachedStore {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedStore{
		next:  next,
		cache: expirable.NewLRU[string, *domain.Snapshot](size, nil, ttl),
	}
}

// Save writes through to the backing store and caches on success
func (c *CachedStore) Save(ctx context.Context, slot string, s *domain.Snapshot) error {
	if err := c.next.Save(ctx, slot, s); err != nil {
		c.cache.Remove(slot)
		return err
	}
	c.cache.Add(slot, s.Clone())
	return nil
}

// Load serves from the cache, falling back to the backing store
func (c *CachedStore) Load(ctx context.Context, slot string) (*domain.Snapshot, error) {
	if s, ok := c.cache.Get(slot); ok {
		logger.FromContext(ctx).Debug(LogMsgCacheHit, "slot", slot)
		return s.Clone(), nil
	}
	s, err := c.next.Load(ctx, slot)
	if err != nil {
		return nil, err
	}
	c.cache.Add(slot, s.Clone())
	return s, nil
}

// List delegates to the backing store when it can enumerate slots
func (c *CachedStore) List(ctx context.Context) ([]domain.SaveRecord, error) {
	if l, ok := c.next.(Lister); ok {
		return l.List(ctx)
	}
	return nil, nil
}

// Len reports how many slots are cached
func (c *CachedStore) Len() int {
	return c.cache.Len()
}
