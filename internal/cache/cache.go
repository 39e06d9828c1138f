package cache

import (
	"math"
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
)

// Cache is a thread-safe LRU cache. When an insertion pushes it over its
// limit, the least recently used entry is evicted.
type Cache[K comparable, V any] struct {
	mu     sync.Mutex
	lru    *simplelru.LRU
	limit  int
	hits   uint64
	misses uint64
}

// New creates a cache holding at most limit entries. A limit of 0 means
// unlimited.
func New[K comparable, V any](limit int) *Cache[K, V] {
	limit = max(limit, 0)
	size := limit
	if size == 0 {
		size = math.MaxInt
	}
	lru, err := simplelru.NewLRU(size, nil)
	if err != nil {
		// NewLRU only fails for non-positive sizes.
		panic(err)
	}
	return &Cache[K, V]{lru: lru, limit: limit}
}

// Get returns the value for key and marks it as recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getLocked(key)
}

func (c *Cache[K, V]) getLocked(key K) (V, bool) {
	v, ok := c.lru.Get(key)
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	return v.(V), true
}

// Set stores value under key.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, value)
}

// GetOrCreate returns the cached value or stores the result of create.
// create runs under the cache lock, so it is called at most once per key.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.getLocked(key); ok {
		return v
	}
	v := create()
	c.lru.Add(key, v)
	return v
}

// Delete removes key and reports whether it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Remove(key)
}

// Clear removes all entries and resets the statistics.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
	c.hits, c.misses = 0, 0
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats returns a snapshot of the cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Len: c.lru.Len(), Capacity: c.limit, Hits: c.hits, Misses: c.misses}
}

// Stats contains cache statistics.
type Stats struct {
	Len      int
	Capacity int
	Hits     uint64
	Misses   uint64
}

// HitRate returns the share of lookups that hit, or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
