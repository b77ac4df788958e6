package feature

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/dmitrymomot/flagkit/pkg/cache"
)

const (
	// DefaultKeyPrefix namespaces flag records in the shared store.
	DefaultKeyPrefix = "feature:flag:"
	// DefaultCacheTTL bounds how stale a locally cached flag may be served.
	DefaultCacheTTL = 30 * time.Second
)

// TieredStore layers a short-TTL read cache and a process-local fallback
// registry around a shared key-value store.
//
// Reads go cache, then shared store, then fallback registry. Writes and
// deletes always hit the cache and the registry, which are in-process and
// cannot fail, while the shared-store write is best-effort: failures are
// logged at warn level and swallowed. A write that only reached the local
// tiers is indistinguishable to the caller from a replicated one; other
// instances will not see it until the shared store recovers and the flag is
// written again.
type TieredStore struct {
	kv       KVClient
	fallback *MemoryStore
	cache    *cache.TTLCache[string, *Flag]
	prefix   string
	ttl      time.Duration
	log      *slog.Logger
}

var _ Store = (*TieredStore)(nil)

// TieredStoreOption configures a TieredStore.
type TieredStoreOption func(*TieredStore)

// WithKeyPrefix overrides the shared-store key prefix.
func WithKeyPrefix(prefix string) TieredStoreOption {
	return func(ts *TieredStore) {
		if prefix != "" {
			ts.prefix = prefix
		}
	}
}

// WithCacheTTL overrides the read-cache TTL.
func WithCacheTTL(ttl time.Duration) TieredStoreOption {
	return func(ts *TieredStore) {
		if ttl > 0 {
			ts.ttl = ttl
		}
	}
}

// WithStoreLogger sets the logger for degradation warnings.
func WithStoreLogger(log *slog.Logger) TieredStoreOption {
	return func(ts *TieredStore) {
		if log != nil {
			ts.log = log
		}
	}
}

// NewTieredStore creates a tiered store over the given shared-store client.
func NewTieredStore(kv KVClient, opts ...TieredStoreOption) *TieredStore {
	ts := &TieredStore{
		kv:       kv,
		fallback: NewMemoryStore(),
		prefix:   DefaultKeyPrefix,
		ttl:      DefaultCacheTTL,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(ts)
	}
	ts.cache = cache.NewTTLCache[string, *Flag](ts.ttl)
	return ts
}

// Get returns the flag from the first tier that has it: a fresh cache entry,
// the shared store (repopulating the cache), or the fallback registry. Stale
// cache entries are treated as misses so out-of-band shared-store mutations
// become visible once the TTL elapses.
func (ts *TieredStore) Get(ctx context.Context, key string) (*Flag, error) {
	if flag, state, ok := ts.cache.Get(key); ok && state == cache.StateFresh {
		return flag.Clone(), nil
	}

	raw, found, err := ts.kv.Get(ctx, ts.prefix+key)
	switch {
	case err != nil:
		ts.log.WarnContext(ctx, "shared store read failed, using fallback registry",
			slog.String("flag", key), slog.Any("error", err))
	case found:
		flag := new(Flag)
		if derr := json.Unmarshal([]byte(raw), flag); derr != nil {
			// Corrupt records are a miss, not a failure.
			ts.log.WarnContext(ctx, "discarding corrupt flag record",
				slog.String("flag", key), slog.Any("error", derr))
			break
		}
		ts.cache.Set(key, flag)
		return flag.Clone(), nil
	}

	return ts.fallback.Get(ctx, key)
}

// Put writes to the cache and fallback registry synchronously, then
// best-effort to the shared store. It never fails.
func (ts *TieredStore) Put(ctx context.Context, flag *Flag) error {
	c := flag.Clone()
	ts.cache.Set(c.Key, c)
	_ = ts.fallback.Put(ctx, c)

	raw, err := json.Marshal(c)
	if err != nil {
		ts.log.WarnContext(ctx, "failed to serialize flag, kept locally only",
			slog.String("flag", c.Key), slog.Any("error", err))
		return nil
	}
	if err := ts.kv.Set(ctx, ts.prefix+c.Key, string(raw)); err != nil {
		ts.log.WarnContext(ctx, "shared store write failed, flag kept locally",
			slog.String("flag", c.Key), slog.Any("error", err))
	}
	return nil
}

// Delete removes the flag from all three tiers. A failed shared-store delete
// is logged and swallowed; the record resurfaces from the shared store once
// it recovers, which callers must tolerate.
func (ts *TieredStore) Delete(ctx context.Context, key string) error {
	ts.cache.Invalidate(key)
	_ = ts.fallback.Delete(ctx, key)

	if err := ts.kv.Del(ctx, ts.prefix+key); err != nil {
		ts.log.WarnContext(ctx, "shared store delete failed, removed locally",
			slog.String("flag", key), slog.Any("error", err))
	}
	return nil
}

// All enumerates every flag in the shared store, falling back to the local
// registry when the store is unreachable. Corrupt records are skipped. Bulk
// reads do not repopulate the per-key cache.
func (ts *TieredStore) All(ctx context.Context) ([]*Flag, error) {
	keys, err := ts.kv.Keys(ctx, ts.prefix+"*")
	if err != nil {
		ts.log.WarnContext(ctx, "shared store scan failed, listing fallback registry",
			slog.Any("error", err))
		return ts.fallback.All(ctx)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	vals, err := ts.kv.MGet(ctx, keys...)
	if err != nil {
		ts.log.WarnContext(ctx, "shared store bulk read failed, listing fallback registry",
			slog.Any("error", err))
		return ts.fallback.All(ctx)
	}

	flags := make([]*Flag, 0, len(vals))
	for i, raw := range vals {
		if raw == "" {
			continue
		}
		flag := new(Flag)
		if derr := json.Unmarshal([]byte(raw), flag); derr != nil {
			ts.log.WarnContext(ctx, "skipping corrupt flag record",
				slog.String("key", keys[i]), slog.Any("error", derr))
			continue
		}
		flags = append(flags, flag)
	}
	sortFlags(flags)
	return flags, nil
}

// ClearCache drops the read cache; the fallback registry is untouched.
func (ts *TieredStore) ClearCache() {
	ts.cache.Clear()
}

// Healthy reports whether the shared store is currently reachable.
func (ts *TieredStore) Healthy(ctx context.Context) bool {
	return ts.kv.IsConnected(ctx)
}
