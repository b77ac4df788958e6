package feature_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/flagkit/pkg/feature"
)

func TestStringOrListJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want feature.StringOrList
	}{
		{"Scalar", `"pro"`, feature.StringOrList{"pro"}},
		{"List", `["a","b"]`, feature.StringOrList{"a", "b"}},
		{"Number", `42`, feature.StringOrList{"42"}},
		{"Bool", `true`, feature.StringOrList{"true"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got feature.StringOrList
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringOrListYAML(t *testing.T) {
	t.Parallel()

	var scalar struct {
		Value feature.StringOrList `yaml:"value"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("value: pro\n"), &scalar))
	assert.Equal(t, feature.StringOrList{"pro"}, scalar.Value)

	var list struct {
		Value feature.StringOrList `yaml:"value"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("value:\n  - a\n  - b\n"), &list))
	assert.Equal(t, feature.StringOrList{"a", "b"}, list.Value)
}

func TestScheduleDatesRehydrate(t *testing.T) {
	t.Parallel()

	// Schedule dates are persisted as RFC3339 strings and must come back as
	// real times.
	end := time.Date(2026, 6, 30, 12, 0, 0, 0, time.UTC)
	flag := &feature.Flag{
		Key:     "seasonal",
		Enabled: true,
		Rollout: feature.Rollout{
			Type:      feature.RolloutSchedule,
			StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   &end,
		},
	}

	raw, err := json.Marshal(flag)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "2026-01-01T00:00:00Z")

	var back feature.Flag
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.Rollout.StartDate.Equal(flag.Rollout.StartDate))
	require.NotNil(t, back.Rollout.EndDate)
	assert.True(t, back.Rollout.EndDate.Equal(end))
}

func TestFlagClone(t *testing.T) {
	t.Parallel()

	end := time.Now().Add(time.Hour)
	flag := &feature.Flag{
		Key:     "f1",
		Enabled: true,
		Rollout: feature.Rollout{
			Type:    feature.RolloutUserIDs,
			IDs:     []string{"alice"},
			EndDate: &end,
		},
		Variants: []feature.Variant{
			{Key: "a", Weight: 1, Payload: map[string]any{"x": 1}},
		},
		Targeting: []feature.TargetingRule{
			{Attribute: "plan", Operator: feature.OpEquals, Value: feature.StringOrList{"pro"}},
		},
		Environments: []string{"production"},
	}

	clone := flag.Clone()
	clone.Rollout.IDs[0] = "mallory"
	clone.Variants[0].Payload["x"] = 2
	clone.Targeting[0].Value[0] = "free"
	clone.Environments[0] = "staging"
	*clone.Rollout.EndDate = end.Add(time.Hour)

	assert.Equal(t, "alice", flag.Rollout.IDs[0])
	assert.Equal(t, 1, flag.Variants[0].Payload["x"])
	assert.Equal(t, "pro", flag.Targeting[0].Value[0])
	assert.Equal(t, "production", flag.Environments[0])
	assert.True(t, flag.Rollout.EndDate.Equal(end))

	var nilFlag *feature.Flag
	assert.Nil(t, nilFlag.Clone())
}
