package catalog

import (
	"slices"
	"sync"
)

// Cache holds the latest successful snapshot of each collection. Entries live
// for the life of the process and are only replaced or cleared by fetches.
type Cache struct {
	mu    sync.RWMutex
	items map[Kind][]Movie
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{items: make(map[Kind][]Movie)}
}

// Put replaces the snapshot for kind.
func (c *Cache) Put(kind Kind, movies []Movie) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[kind] = slices.Clone(movies)
}

// Clear drops the snapshot for kind.
func (c *Cache) Clear(kind Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, kind)
}

// Snapshot returns a copy of the snapshot for kind, or nil.
func (c *Cache) Snapshot(kind Kind) []Movie {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items[kind])
}

// All returns every cached movie, collections concatenated in AllKinds order.
// Duplicates across collections are kept.
func (c *Cache) All() []Movie {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []Movie
	for _, k := range AllKinds {
		out = append(out, c.items[k]...)
	}
	return out
}

// Len returns the number of cached movies across all collections.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, movies := range c.items {
		n += len(movies)
	}
	return n
}
