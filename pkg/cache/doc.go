// Package cache provides a generic, thread-safe TTL cache for short-lived
// read caching in front of slower stores.
//
// Unlike an LRU cache, entries are never evicted on capacity; they age out.
// Each entry moves through an explicit state progression: it is Fresh until
// its age exceeds the configured TTL, after which it is Stale. Stale entries
// remain readable: callers decide whether a stale value is acceptable or
// whether it must be refetched from the authoritative store.
//
// # Usage
//
//	c := cache.NewTTLCache[string, *Flag](30 * time.Second)
//	c.Set("checkout", flag)
//
//	if v, state, ok := c.Get("checkout"); ok && state == cache.StateFresh {
//		return v
//	}
//	// fetch from the backing store, then c.Set(...) to refresh
//
// All operations are safe for concurrent use. Concurrent refreshes of the
// same key resolve last-writer-wins, which is acceptable when entries for a
// given key are semantically idempotent between invalidations.
package cache
