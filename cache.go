package codemap

import (
	"sync"

	"github.com/tsawler/codemap/core"
	"github.com/tsawler/codemap/font"
)

// Cache memoizes decoding contexts per font object. Documents reuse the
// same font across many pages; building the context once per font object
// avoids re-parsing its CMap program on every page.
//
// The zero value is not usable; create caches with NewCache. A Cache is
// safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[core.IndirectRef]*cacheEntry
}

// cacheEntry holds one font's context. The once gate guarantees a single
// build per key even when callers race; latecomers block until the first
// build finishes.
type cacheEntry struct {
	once  sync.Once
	ctx   *font.DecodingContext
	warns []Warning
}

// NewCache creates an empty context cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[core.IndirectRef]*cacheEntry)}
}

// BuildCharMap returns the cached context for the font object, building and
// caching it on first use. Concurrent callers for the same key share one
// build; the warnings of a cache hit are the ones recorded when the context
// was first built.
func (c *Cache) BuildCharMap(key core.IndirectRef, fontDict core.Dict, opts ...Option) (*font.DecodingContext, []Warning) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &cacheEntry{}
		c.entries[key] = e
	}
	c.mu.Unlock()

	// CMap parsing can be slow, so the build itself runs outside the map
	// lock. The per-entry once keeps it to a single build per key.
	e.once.Do(func() {
		e.ctx, e.warns = BuildCharMap(fontDict, opts...)
	})
	return e.ctx, e.warns
}

// Invalidate drops the cached context for one font object.
func (c *Cache) Invalidate(key core.IndirectRef) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Reset drops every cached context.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.entries = make(map[core.IndirectRef]*cacheEntry)
	c.mu.Unlock()
}

// Len reports the number of cached contexts.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
