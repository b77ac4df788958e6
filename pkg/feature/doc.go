// Package feature implements a feature-flag evaluation and rollout engine
// with deterministic bucketing, ordered targeting rules, weighted variant
// assignment, and a two-tier persistence model that tolerates a shared-store
// outage.
//
// # Evaluation
//
// Evaluate never returns an error; failures are encoded in the result's
// Reason. The decision order is fixed: flag lookup, the global kill switch
// (Enabled), the environment allow-list, targeting rules in list order, and
// finally the flag's rollout strategy (boolean, percentage, user ids,
// cohorts, or schedule). The first decisive step wins.
//
// Percentage rollouts and variant assignment are sticky: membership is
// derived from a deterministic hash of the subject id (user id, falling back
// to session id, falling back to "anonymous") so the same subject keeps its
// decision across processes and restarts. See the bucket package.
//
// # Persistence
//
// The Service reads and writes flags through the Store interface. TieredStore
// is the production implementation: a short-TTL read cache in front of a
// shared key-value store (Redis), backed by an in-process fallback registry
// holding the last locally written state. Shared-store failures degrade
// transparently: reads fall back to the registry, writes are kept locally
// and the store write is logged and dropped. Callers cannot distinguish a
// fully replicated write from a local-only one.
//
// # Usage
//
//	client, err := redis.Connect(ctx, redisCfg)
//	if err != nil {
//		// non-fatal: the engine still serves from its fallback registry
//	}
//
//	store := feature.NewTieredStore(feature.NewRedisKV(client))
//	svc := feature.New(store, feature.WithDefaultEnvironment("production"))
//
//	res := svc.Evaluate(ctx, "new-ui", feature.EvaluationContext{UserID: "user-42"})
//	if res.Enabled {
//		// serve the variant in res.Variant / res.Payload
//	}
package feature
