package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/cquiroz/lucuma-itc/internal/itctypes"
)

// Cache combines a Store with version-gated bulk invalidation: whenever
// the upstream data-version string changes, every previously cached
// entry is discarded in one step rather than tracked individually —
// there is no notion of partial invalidation.
type Cache struct {
	store Store

	mu             sync.Mutex
	lastSeenVer    string
	verInitialized bool
}

func New(store Store) *Cache {
	return &Cache{store: store}
}

// ObserveDataVersion compares ver against the last version seen and, if
// it differs, flushes the backing Store before recording the new
// version. Callers invoke this once per request cycle with the data
// version the request is served under. The last seen version is kept in
// memory only, so the first call after a restart records ver without
// flushing.
func (c *Cache) ObserveDataVersion(ctx context.Context, ver string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.verInitialized && c.lastSeenVer == ver {
		return nil
	}
	if c.verInitialized {
		if err := c.store.FlushAll(ctx); err != nil {
			return itctypes.NewCacheBackendError(fmt.Sprintf("flush on version change: %v", err))
		}
	}
	c.lastSeenVer = ver
	c.verInitialized = true
	return nil
}

// GetGraphResult looks up a previously cached GraphResult for key.
func (c *Cache) GetGraphResult(ctx context.Context, key []byte) (*itctypes.GraphResult, bool, error) {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return nil, false, itctypes.NewCacheBackendError(err.Error())
	}
	if !ok {
		return nil, false, nil
	}
	r, err := DecodeGraphResult(raw)
	if err != nil {
		return nil, false, itctypes.NewDecodeError(err.Error())
	}
	return r, true, nil
}

// PutGraphResult stores r under key.
func (c *Cache) PutGraphResult(ctx context.Context, key []byte, r *itctypes.GraphResult) error {
	if err := c.store.Set(ctx, key, EncodeGraphResult(r)); err != nil {
		return itctypes.NewCacheBackendError(err.Error())
	}
	return nil
}

// GetExposurePlan looks up a previously cached ExposurePlan for key.
func (c *Cache) GetExposurePlan(ctx context.Context, key []byte) (*itctypes.ExposurePlan, bool, error) {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return nil, false, itctypes.NewCacheBackendError(err.Error())
	}
	if !ok {
		return nil, false, nil
	}
	p, err := DecodeExposurePlan(raw)
	if err != nil {
		return nil, false, itctypes.NewDecodeError(err.Error())
	}
	return p, true, nil
}

// PutExposurePlan stores p under key.
func (c *Cache) PutExposurePlan(ctx context.Context, key []byte, p *itctypes.ExposurePlan) error {
	if err := c.store.Set(ctx, key, EncodeExposurePlan(p)); err != nil {
		return itctypes.NewCacheBackendError(err.Error())
	}
	return nil
}

// GetOrComputeGraph returns the cached GraphResult for key, computing and
// storing it via compute on a miss. A cache-backend error on read is
// treated as a miss (compute runs) rather than surfaced, since the cache
// is opportunistic; a cache-backend error on write after a successful
// compute is likewise swallowed — the computed result is still returned.
func (c *Cache) GetOrComputeGraph(ctx context.Context, key []byte, compute func(context.Context) (*itctypes.GraphResult, error)) (*itctypes.GraphResult, error) {
	if r, ok, err := c.GetGraphResult(ctx, key); err == nil && ok {
		return r, nil
	}
	r, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	_ = c.PutGraphResult(ctx, key, r)
	return r, nil
}

// GetOrComputeExposurePlan is GetOrComputeGraph's counterpart for C5's
// exposure-time results.
func (c *Cache) GetOrComputeExposurePlan(ctx context.Context, key []byte, compute func(context.Context) (*itctypes.ExposurePlan, error)) (*itctypes.ExposurePlan, error) {
	if p, ok, err := c.GetExposurePlan(ctx, key); err == nil && ok {
		return p, nil
	}
	p, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	_ = c.PutExposurePlan(ctx, key, p)
	return p, nil
}
