package iocache

import (
	"context"
	"time"

	"github.com/huangsam/athome/internal/contract"
	"github.com/huangsam/athome/schema"
	"github.com/maypok86/otter/v2"
)

// CachedProfileStore wraps a ProfileStore with an in-memory read-through cache.
// Cached values are cloned on the way in and out so callers never share slices.
type CachedProfileStore struct {
	contract.ProfileStore
	cache *otter.Cache[string, schema.ClientProfile]
}

var _ contract.ProfileStore = &CachedProfileStore{} // Compile-time check

// NewCachedProfileStore caches up to size profiles for ttl each.
func NewCachedProfileStore(store contract.ProfileStore, size int, ttl time.Duration) *CachedProfileStore {
	return &CachedProfileStore{
		ProfileStore: store,
		cache: otter.Must(&otter.Options[string, schema.ClientProfile]{
			MaximumSize:      size,
			ExpiryCalculator: otter.ExpiryWriting[string, schema.ClientProfile](ttl),
		}),
	}
}

// Get serves from the cache when possible and fills it on a miss.
func (c *CachedProfileStore) Get(ctx context.Context, clientID string) (schema.ClientProfile, error) {
	if cp, ok := c.cache.GetIfPresent(clientID); ok {
		contract.LogDebug("profile cache hit", "client", clientID)
		return cp.Clone(), nil
	}
	cp, err := c.ProfileStore.Get(ctx, clientID)
	if err != nil {
		return cp, err
	}
	c.cache.Set(clientID, cp.Clone())
	return cp, nil
}

// Put writes through and drops the cached entry.
func (c *CachedProfileStore) Put(ctx context.Context, cp schema.ClientProfile) error {
	c.cache.Invalidate(cp.ClientID)
	return c.ProfileStore.Put(ctx, cp)
}

// Delete removes the client from the store and the cache.
func (c *CachedProfileStore) Delete(ctx context.Context, clientID string) error {
	c.cache.Invalidate(clientID)
	return c.ProfileStore.Delete(ctx, clientID)
}

// GetStatus adds cache occupancy to the underlying status.
func (c *CachedProfileStore) GetStatus() (schema.StoreStatus, error) {
	status, err := c.ProfileStore.GetStatus()
	status.CacheEnabled = true
	status.CacheEntries = c.cache.EstimatedSize()
	return status, err
}

// Close empties the cache and closes the underlying store.
func (c *CachedProfileStore) Close() error {
	c.cache.InvalidateAll()
	return c.ProfileStore.Close()
}
