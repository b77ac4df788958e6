package feature

import "time"

// Config collects the engine's environment-driven settings. Fields are
// populated via github.com/caarlos0/env tags, typically through config.Load.
type Config struct {
	// DefaultEnvironment is used when an evaluation context has no
	// environment of its own.
	DefaultEnvironment string `env:"APP_ENV" envDefault:"development"`
	// CacheTTL is the tiered store's read-cache TTL.
	CacheTTL time.Duration `env:"FEATURE_CACHE_TTL" envDefault:"30s"`
	// KeyPrefix namespaces flag records in the shared store.
	KeyPrefix string `env:"FEATURE_KEY_PREFIX" envDefault:"feature:flag:"`
}

// NewFromConfig wires a Service over a TieredStore using the given
// shared-store client and configuration. Extra options override the
// config-derived ones.
func NewFromConfig(kv KVClient, cfg Config, opts ...Option) *Service {
	store := NewTieredStore(kv,
		WithKeyPrefix(cfg.KeyPrefix),
		WithCacheTTL(cfg.CacheTTL),
	)
	all := append([]Option{WithDefaultEnvironment(cfg.DefaultEnvironment)}, opts...)
	return New(store, all...)
}
