package cache

import (
	"sync"
	"time"
)

// State describes the freshness of a cached entry.
type State int

const (
	// StateFresh means the entry's age is below the cache TTL.
	StateFresh State = iota
	// StateStale means the entry has outlived the TTL and should be
	// refetched from the authoritative store.
	StateStale
)

type ttlEntry[V any] struct {
	value    V
	storedAt time.Time
}

// TTLCache is a thread-safe cache whose entries expire after a fixed TTL.
// Expired entries are reported as Stale rather than silently dropped, so
// callers can fall back to a stale value when the backing store is down.
type TTLCache[K comparable, V any] struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[K]ttlEntry[V]
}

// NewTTLCache creates a cache with the given TTL.
// The TTL must be positive, otherwise it panics.
func NewTTLCache[K comparable, V any](ttl time.Duration) *TTLCache[K, V] {
	if ttl <= 0 {
		panic("TTL cache duration must be positive")
	}
	return &TTLCache[K, V]{
		ttl:   ttl,
		items: make(map[K]ttlEntry[V]),
	}
}

// Get returns the cached value and its freshness state.
// The third return is false when the key has never been set or was
// invalidated; in that case the state is meaningless.
func (c *TTLCache[K, V]) Get(key K) (V, State, bool) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		var zero V
		return zero, StateStale, false
	}
	if time.Since(entry.storedAt) >= c.ttl {
		return entry.value, StateStale, true
	}
	return entry.value, StateFresh, true
}

// Set stores a value and resets its age. Overwriting an existing entry makes
// it Fresh again.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = ttlEntry[V]{value: value, storedAt: time.Now()}
}

// Invalidate removes a single entry.
// Returns true if the entry existed, regardless of its freshness.
func (c *TTLCache[K, V]) Invalidate(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.items[key]
	delete(c.items, key)
	return ok
}

// Clear removes all entries.
func (c *TTLCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]ttlEntry[V])
}

// Len returns the number of entries, fresh and stale alike.
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
