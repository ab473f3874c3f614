// Package cache provides a small generic LRU cache with a soft limit.
//
//	c := cache.New[string, []int](64)
//	v := c.GetOrCreate("key", func() []int { return compute() })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache

import (
	"sort"
	"sync"
)

// Cache is a thread-safe LRU cache with a soft limit. When an insert pushes
// it over the limit, the least recently used quarter is evicted.
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*entry[V]
	softLimit int
	tick      uint64

	hits, misses uint64
}

type entry[V any] struct {
	value V
	atime uint64
}

// New creates a cache with the given soft limit. Zero means unlimited.
func New[K comparable, V any](softLimit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:   make(map[K]*entry[V]),
		softLimit: softLimit,
	}
}

// Get returns the cached value for key.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.tick++
	e.atime = c.tick
	return e.value, true
}

// GetOrCreate returns the cached value for key, calling create under the
// lock on a miss.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	if e, ok := c.entries[key]; ok {
		c.hits++
		e.atime = c.tick
		return e.value
	}
	c.misses++
	v := create()
	c.entries[key] = &entry[V]{value: v, atime: c.tick}
	c.evict()
	return v
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear removes all entries and resets the counters.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]*entry[V])
	c.tick, c.hits, c.misses = 0, 0, 0
}

// Stats returns hit and miss counts.
func (c *Cache[K, V]) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// evict trims the cache to three quarters of the soft limit.
// Caller must hold c.mu.
func (c *Cache[K, V]) evict() {
	if c.softLimit <= 0 || len(c.entries) <= c.softLimit {
		return
	}
	target := max(c.softLimit*3/4, 1)

	type aged struct {
		key   K
		atime uint64
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{k, e.atime})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].atime < all[j].atime })
	for _, a := range all[:len(all)-target] {
		delete(c.entries, a.key)
	}
}
