package grid

import (
	"sync"
	"time"
)

// cacheKey identifies one cached Sample. Time is quantized to the second:
// propagation sub-steps within the same wall-clock second reuse a cached
// sample rather than re-querying the host GridEngine.
type cacheKey struct {
	x, y float64
	tSec int64
}

// CachingSampler wraps an Engine with a read-locked, in-memory sample
// cache, enabled when the CACHE_GRID_POINTS flag is set. Grounded on
// internal/lidar/l3grid.BackgroundGrid's sync.RWMutex-guarded cell table:
// lookups take the read lock and only escalate to a write lock on a miss.
type CachingSampler struct {
	mu       sync.RWMutex
	inner    Engine
	cells    map[cacheKey]Sample
	attrs    *Attributes
	attrOnce sync.Once
	attrErr  error
}

// NewCachingSampler returns a CachingSampler decorating inner. Registered
// the way internal/config/tuning.go's defaults builder is: a plain
// constructor, no global registry, one instance per scenario.
func NewCachingSampler(inner Engine) *CachingSampler {
	return &CachingSampler{inner: inner, cells: make(map[cacheKey]Sample)}
}

// Sample returns the cached sample for (x, y, t) if present, otherwise
// queries inner and caches the result.
func (c *CachingSampler) Sample(x, y float64, t time.Time) (Sample, error) {
	key := cacheKey{x: x, y: y, tSec: t.Unix()}

	c.mu.RLock()
	if s, ok := c.cells[key]; ok {
		c.mu.RUnlock()
		return s, nil
	}
	c.mu.RUnlock()

	s, err := c.inner.Sample(x, y, t)
	if err != nil {
		return Sample{}, err
	}

	c.mu.Lock()
	c.cells[key] = s
	c.mu.Unlock()
	return s, nil
}

// Attributes returns the wrapped Engine's attributes, queried once and
// memoized for the lifetime of the CachingSampler.
func (c *CachingSampler) Attributes() (Attributes, error) {
	c.attrOnce.Do(func() {
		a, err := c.inner.Attributes()
		c.attrs = &a
		c.attrErr = err
	})
	if c.attrErr != nil {
		return Attributes{}, c.attrErr
	}
	return *c.attrs, nil
}

// Len reports how many samples are currently cached, for diagnostics and
// tests.
func (c *CachingSampler) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cells)
}

// Clear empties the cache, e.g. between scenario resets.
func (c *CachingSampler) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cells = make(map[cacheKey]Sample)
}
