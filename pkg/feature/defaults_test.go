package feature_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flagkit/pkg/feature"
)

const defaultsYAML = `flags:
  - key: new-ui
    name: New UI
    enabled: true
    rollout:
      type: percentage
      value: 25
    variants:
      - key: control
        name: Control
        weight: 70
      - key: treatment
        name: Treatment
        weight: 30
  - key: beta-access
    name: Beta Access
    enabled: true
    rollout:
      type: userIds
      ids: [alice, bob]
    targeting:
      - attribute: email
        operator: endsWith
        value: "@corp.io"
  - key: dark-mode
    name: Dark Mode
`

func writeDefaults(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flags.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	inputs, err := feature.LoadDefaults(writeDefaults(t, defaultsYAML))
	require.NoError(t, err)
	require.Len(t, inputs, 3)

	assert.Equal(t, "new-ui", inputs[0].Key)
	require.NotNil(t, inputs[0].Rollout)
	assert.Equal(t, feature.RolloutPercentage, inputs[0].Rollout.Type)
	assert.Equal(t, 25, inputs[0].Rollout.Value)
	require.Len(t, inputs[0].Variants, 2)
	assert.Equal(t, float64(70), inputs[0].Variants[0].Weight)

	assert.Equal(t, []string{"alice", "bob"}, inputs[1].Rollout.IDs)
	require.Len(t, inputs[1].Targeting, 1)
	// Scalar rule values decode as single-element lists.
	assert.Equal(t, feature.StringOrList{"@corp.io"}, inputs[1].Targeting[0].Value)

	// Omitted rollout stays nil; CreateFlag fills in the boolean default.
	assert.Nil(t, inputs[2].Rollout)
	assert.False(t, inputs[2].Enabled)
}

func TestLoadDefaultsErrors(t *testing.T) {
	t.Parallel()

	_, err := feature.LoadDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = feature.LoadDefaults(writeDefaults(t, "flags: {not: [valid"))
	assert.ErrorIs(t, err, feature.ErrInvalidFlag)

	_, err = feature.LoadDefaults(writeDefaults(t, "flags:\n  - name: keyless\n"))
	assert.ErrorIs(t, err, feature.ErrInvalidFlag)
}

func TestBootstrapFromDefaultsFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	inputs, err := feature.LoadDefaults(writeDefaults(t, defaultsYAML))
	require.NoError(t, err)

	svc := feature.New(feature.NewMemoryStore())
	require.NoError(t, svc.RegisterDefaultFlags(ctx, inputs))

	all, err := svc.GetAllFlags(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	res := svc.Evaluate(ctx, "beta-access", feature.EvaluationContext{UserID: "alice"})
	assert.True(t, res.Enabled)
	assert.Equal(t, feature.ReasonUserIDMatch, res.Reason)

	res = svc.Evaluate(ctx, "beta-access", feature.EvaluationContext{Email: "dev@corp.io"})
	assert.True(t, res.Enabled)
	assert.Equal(t, feature.ReasonTargetingMatch, res.Reason)

	res = svc.Evaluate(ctx, "dark-mode", feature.EvaluationContext{})
	assert.False(t, res.Enabled)
	assert.Equal(t, feature.ReasonFlagDisabled, res.Reason)
}
