package server

import (
	"sync"
	"time"

	"github.com/mj1618/uimap/internal/model"
	"github.com/mj1618/uimap/internal/platform"
)

// cacheKey identifies a unique tree read scope.
type cacheKey struct {
	Handle uintptr
	Depth  int
}

// cacheEntry holds a cached control tree with its timestamp.
type cacheEntry struct {
	root      model.Control
	timestamp time.Time
}

// TreeCache provides a TTL-based cache for control trees.
type TreeCache struct {
	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewTreeCache creates a new cache. A ttl of 0 disables caching.
func NewTreeCache(ttl time.Duration) *TreeCache {
	return &TreeCache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// ReadControls returns the cached tree if within TTL, otherwise reads fresh.
// The caller must hold the provider mutex.
func (c *TreeCache) ReadControls(reader platform.Reader, opts platform.ReadOptions) (model.Control, error) {
	if c.ttl == 0 {
		return reader.ReadControls(opts)
	}

	key := cacheKey{Handle: opts.Window.Handle, Depth: opts.Depth}

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && c.now().Sub(entry.timestamp) < c.ttl {
		root := entry.root
		c.mu.Unlock()
		return root, nil
	}
	c.mu.Unlock()

	root, err := reader.ReadControls(opts)
	if err != nil {
		return model.Control{}, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{root: root, timestamp: c.now()}
	c.mu.Unlock()

	return root, nil
}

// InvalidateWindow removes all cache entries for the given window.
func (c *TreeCache) InvalidateWindow(handle uintptr) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.Handle == handle {
			delete(c.entries, k)
		}
	}
}
