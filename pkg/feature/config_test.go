package feature_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flagkit/pkg/config"
	"github.com/dmitrymomot/flagkit/pkg/feature"
)

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("FEATURE_CACHE_TTL", "5s")
	t.Setenv("FEATURE_KEY_PREFIX", "flags:v2:")

	var cfg feature.Config
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "production", cfg.DefaultEnvironment)
	assert.Equal(t, 5*time.Second, cfg.CacheTTL)
	assert.Equal(t, "flags:v2:", cfg.KeyPrefix)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	kv := newFakeKV()
	svc := feature.NewFromConfig(kv, feature.Config{
		DefaultEnvironment: "production",
		CacheTTL:           time.Second,
		KeyPrefix:          "flags:v2:",
	})

	_, err := svc.CreateFlag(ctx, feature.FlagInput{
		Key: "prod-only", Enabled: true, Environments: []string{"production"},
	})
	require.NoError(t, err)

	// Records land under the configured prefix.
	_, ok, err := kv.Get(ctx, "flags:v2:prod-only")
	require.NoError(t, err)
	assert.True(t, ok)

	// The configured default environment passes the allow-list check.
	res := svc.Evaluate(ctx, "prod-only", feature.EvaluationContext{})
	assert.True(t, res.Enabled)

	res = svc.Evaluate(ctx, "prod-only", feature.EvaluationContext{Environment: "staging"})
	assert.False(t, res.Enabled)
	assert.Equal(t, feature.ReasonEnvironmentMatch, res.Reason)
}
