package reconcile

import (
	"context"
	"sync"
	"time"

	"merch-manager/core/catalog"

	"golang.org/x/sync/singleflight"
)

// CatalogLoader loads the full catalog from its source of truth.
type CatalogLoader func(ctx context.Context) ([]catalog.Entry, error)

// Snapshot is a cached copy of the catalog.
type Snapshot struct {
	// Entries is the catalog as loaded.
	Entries []catalog.Entry

	// Built is the timestamp when this snapshot was loaded.
	Built time.Time

	// TTL is the time-to-live for this snapshot.
	TTL time.Duration
}

// IsExpired returns true if this snapshot has expired based on its TTL.
func (s *Snapshot) IsExpired() bool {
	if s.TTL == 0 {
		return true // No caching
	}
	return time.Since(s.Built) > s.TTL
}

// CatalogCache keeps a TTL-bound catalog snapshot so that repeated needs
// computations do not reload products on every request.
type CatalogCache struct {
	mu       sync.RWMutex
	snapshot *Snapshot
	ttl      time.Duration
	load     CatalogLoader
	sf       singleflight.Group
	// gen changes on every Invalidate; a load only stores its result if
	// gen is unchanged since it started.
	gen uint64
}

// NewCatalogCache creates a cache around loader. A zero ttl disables caching.
func NewCatalogCache(ttl time.Duration, loader CatalogLoader) *CatalogCache {
	return &CatalogCache{ttl: ttl, load: loader}
}

// Get returns a fresh snapshot, loading one if missing or expired.
// Concurrent misses share a single load.
func (c *CatalogCache) Get(ctx context.Context) ([]catalog.Entry, error) {
	// Fast path: check if snapshot exists and is fresh
	c.mu.RLock()
	snap := c.snapshot
	c.mu.RUnlock()

	if snap != nil && !snap.IsExpired() {
		return snap.Entries, nil
	}

	// Slow path: load using singleflight to prevent stampedes
	result, err, _ := c.sf.Do("catalog", func() (interface{}, error) {
		c.mu.RLock()
		snap := c.snapshot
		gen := c.gen
		c.mu.RUnlock()

		if snap != nil && !snap.IsExpired() {
			return snap, nil
		}

		entries, err := c.load(ctx)
		if err != nil {
			return nil, err
		}

		fresh := &Snapshot{Entries: entries, Built: time.Now(), TTL: c.ttl}
		c.mu.Lock()
		if c.gen == gen {
			c.snapshot = fresh
		}
		c.mu.Unlock()

		return fresh, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Snapshot).Entries, nil
}

// Invalidate drops the snapshot; the next Get reloads. A load already in
// flight still answers its own callers but its result is not cached.
func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.gen++
	c.mu.Unlock()
	c.sf.Forget("catalog")
}

// Compute loads the catalog through the cache and computes the needs report.
func (c *CatalogCache) Compute(ctx context.Context, orders []catalog.Order) (*Needs, error) {
	entries, err := c.Get(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeInventoryNeeds(orders, entries), nil
}
