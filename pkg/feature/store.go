package feature

import "context"

// Store is the persistence tier consumed by the Service. Implementations
// must return ErrFlagNotFound from Get when the flag is absent everywhere,
// and must not surface shared-store outages as errors; degradation is the
// store's responsibility, not the caller's.
type Store interface {
	// Get returns the flag or ErrFlagNotFound.
	Get(ctx context.Context, key string) (*Flag, error)

	// Put writes the flag to every reachable tier.
	Put(ctx context.Context, flag *Flag) error

	// Delete removes the flag from every reachable tier. Deleting a missing
	// flag is not an error.
	Delete(ctx context.Context, key string) error

	// All returns every stored flag, ordered by key.
	All(ctx context.Context) ([]*Flag, error)

	// ClearCache drops any read caching so the next read hits the backing
	// store. Primarily for test isolation.
	ClearCache()
}

// KVClient is the shared key-value store surface the tiered store consumes.
// It mirrors the subset of Redis commands the engine needs; any networked KV
// store can be adapted to it.
type KVClient interface {
	// Get returns the value and whether the key exists. A false second
	// return with a nil error is a clean miss.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores the value without expiry.
	Set(ctx context.Context, key, value string) error

	// Del removes the given keys.
	Del(ctx context.Context, keys ...string) error

	// Keys returns all keys matching a glob pattern.
	Keys(ctx context.Context, pattern string) ([]string, error)

	// MGet returns the values for the given keys, with empty strings for
	// missing keys, in the same order.
	MGet(ctx context.Context, keys ...string) ([]string, error)

	// IsConnected reports whether the store is currently reachable.
	IsConnected(ctx context.Context) bool
}
