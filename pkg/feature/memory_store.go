package feature

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// MemoryStore is a mutex-guarded in-memory Store. It serves two roles: the
// process-local fallback registry inside TieredStore, and a standalone store
// for tests and single-process applications.
type MemoryStore struct {
	mu    sync.RWMutex
	flags map[string]*Flag
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{flags: make(map[string]*Flag)}
}

// Get returns a copy of the stored flag or ErrFlagNotFound.
func (m *MemoryStore) Get(ctx context.Context, key string) (*Flag, error) {
	m.mu.RLock()
	flag, ok := m.flags[key]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrFlagNotFound
	}
	return flag.Clone(), nil
}

// Put stores a copy of the flag, overwriting any previous version.
func (m *MemoryStore) Put(ctx context.Context, flag *Flag) error {
	c := flag.Clone()
	m.mu.Lock()
	m.flags[c.Key] = c
	m.mu.Unlock()
	return nil
}

// Delete removes the flag. Deleting a missing flag is a no-op.
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.flags, key)
	m.mu.Unlock()
	return nil
}

// All returns copies of every stored flag, ordered by key.
func (m *MemoryStore) All(ctx context.Context) ([]*Flag, error) {
	m.mu.RLock()
	flags := make([]*Flag, 0, len(m.flags))
	for _, flag := range m.flags {
		flags = append(flags, flag.Clone())
	}
	m.mu.RUnlock()

	sortFlags(flags)
	return flags, nil
}

// ClearCache is a no-op; the memory store has no separate read cache.
func (m *MemoryStore) ClearCache() {}

func sortFlags(flags []*Flag) {
	slices.SortFunc(flags, func(a, b *Flag) int {
		return strings.Compare(a.Key, b.Key)
	})
}
