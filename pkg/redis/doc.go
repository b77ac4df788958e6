// Package redis provides connection helpers for the shared flag store.
//
// It wraps the go-redis client with a retrying Connect, an env-driven Config,
// and a health-check closure suitable for liveness probes.
//
// # Usage
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		// the store never became reachable; the feature service can still
//		// run on its fallback registry, so this may be non-fatal
//	}
//	defer client.Close()
package redis
