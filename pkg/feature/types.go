package feature

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Flag is a feature toggle definition. The key is the unique, immutable
// identifier; everything else is mutable via UpdateFlag.
type Flag struct {
	Key          string          `json:"key" yaml:"key"`
	Name         string          `json:"name" yaml:"name"`
	Description  string          `json:"description,omitempty" yaml:"description,omitempty"`
	Enabled      bool            `json:"enabled" yaml:"enabled"`
	Rollout      Rollout         `json:"rollout" yaml:"rollout"`
	Variants     []Variant       `json:"variants,omitempty" yaml:"variants,omitempty"`
	Targeting    []TargetingRule `json:"targeting,omitempty" yaml:"targeting,omitempty"`
	Environments []string        `json:"environments,omitempty" yaml:"environments,omitempty"`
	CreatedAt    time.Time       `json:"created_at,omitzero" yaml:"created_at,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at,omitzero" yaml:"updated_at,omitempty"`
	CreatedBy    string          `json:"created_by,omitempty" yaml:"created_by,omitempty"`
}

// Clone returns a deep copy so stored flags can be handed to callers without
// sharing mutable state.
func (f *Flag) Clone() *Flag {
	if f == nil {
		return nil
	}
	c := *f
	c.Environments = slices.Clone(f.Environments)
	c.Targeting = slices.Clone(f.Targeting)
	for i := range c.Targeting {
		c.Targeting[i].Value = slices.Clone(f.Targeting[i].Value)
	}
	c.Variants = slices.Clone(f.Variants)
	for i := range c.Variants {
		c.Variants[i].Payload = maps.Clone(f.Variants[i].Payload)
	}
	c.Rollout.IDs = slices.Clone(f.Rollout.IDs)
	c.Rollout.Names = slices.Clone(f.Rollout.Names)
	if f.Rollout.EndDate != nil {
		end := *f.Rollout.EndDate
		c.Rollout.EndDate = &end
	}
	return &c
}

// RolloutType discriminates the Rollout union. The literal tag values are
// part of the persisted representation and must not change.
type RolloutType string

const (
	RolloutBoolean    RolloutType = "boolean"
	RolloutPercentage RolloutType = "percentage"
	RolloutUserIDs    RolloutType = "userIds"
	RolloutCohorts    RolloutType = "cohorts"
	RolloutSchedule   RolloutType = "schedule"
)

// Rollout is a tagged union selected by Type; only the fields belonging to
// the active type are consulted during evaluation.
type Rollout struct {
	Type RolloutType `json:"type" yaml:"type"`
	// Value is the enabled percentage in [0,100] for RolloutPercentage.
	Value int `json:"value,omitempty" yaml:"value,omitempty"`
	// IDs is the allow-list for RolloutUserIDs.
	IDs []string `json:"ids,omitempty" yaml:"ids,omitempty"`
	// Names is the cohort allow-list for RolloutCohorts.
	Names []string `json:"names,omitempty" yaml:"names,omitempty"`
	// StartDate and EndDate bound a RolloutSchedule window. A nil EndDate
	// leaves the window open.
	StartDate time.Time  `json:"start_date,omitzero" yaml:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty" yaml:"end_date,omitempty"`
}

func (r Rollout) validate() error {
	switch r.Type {
	case RolloutBoolean, RolloutUserIDs, RolloutCohorts, RolloutSchedule:
		return nil
	case RolloutPercentage:
		if r.Value < 0 || r.Value > 100 {
			return errors.Join(ErrInvalidFlag,
				fmt.Errorf("percentage value %d must be between 0 and 100", r.Value))
		}
		return nil
	default:
		return errors.Join(ErrInvalidFlag, fmt.Errorf("unknown rollout type %q", r.Type))
	}
}

// Variant is a named weighted sub-allocation within an enabled flag. Weights
// need not sum to 100; they are normalized at assignment time.
type Variant struct {
	Key     string         `json:"key" yaml:"key"`
	Name    string         `json:"name" yaml:"name"`
	Weight  float64        `json:"weight" yaml:"weight"`
	Payload map[string]any `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// Operator is a targeting-rule predicate applied to a context attribute.
type Operator string

const (
	OpEquals     Operator = "equals"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "startsWith"
	OpEndsWith   Operator = "endsWith"
	OpIn         Operator = "in"
	OpRegex      Operator = "regex"
)

// TargetingRule force-enables a flag when its attribute predicate matches,
// ahead of rollout evaluation. Rules are evaluated in list order and the
// first match wins.
type TargetingRule struct {
	Attribute string       `json:"attribute" yaml:"attribute"`
	Operator  Operator     `json:"operator" yaml:"operator"`
	Value     StringOrList `json:"value" yaml:"value"`
}

// StringOrList decodes a JSON or YAML scalar as a single-element list and a
// sequence as-is, so rule values may be written either way.
type StringOrList []string

func (s *StringOrList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*s = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		// Numeric and boolean scalars are matched by their string form.
		var v any
		if err2 := json.Unmarshal(data, &v); err2 != nil {
			return err
		}
		single = fmt.Sprint(v)
	}
	*s = StringOrList{single}
	return nil
}

func (s *StringOrList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	}

	var single string
	if err := node.Decode(&single); err != nil {
		return err
	}
	*s = StringOrList{single}
	return nil
}

// FlagInput is the payload for CreateFlag and RegisterDefaultFlags. A nil
// Rollout defaults to the boolean strategy; Enabled defaults to false.
type FlagInput struct {
	Key          string          `json:"key" yaml:"key"`
	Name         string          `json:"name" yaml:"name"`
	Description  string          `json:"description,omitempty" yaml:"description,omitempty"`
	Enabled      bool            `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Rollout      *Rollout        `json:"rollout,omitempty" yaml:"rollout,omitempty"`
	Variants     []Variant       `json:"variants,omitempty" yaml:"variants,omitempty"`
	Targeting    []TargetingRule `json:"targeting,omitempty" yaml:"targeting,omitempty"`
	Environments []string        `json:"environments,omitempty" yaml:"environments,omitempty"`
	CreatedBy    string          `json:"created_by,omitempty" yaml:"created_by,omitempty"`
}

// FlagUpdate is a shallow-merge partial for UpdateFlag. Nil fields leave the
// stored value untouched; slice fields use nil for "untouched" and an empty
// non-nil slice to clear.
type FlagUpdate struct {
	Name         *string         `json:"name,omitempty"`
	Description  *string         `json:"description,omitempty"`
	Enabled      *bool           `json:"enabled,omitempty"`
	Rollout      *Rollout        `json:"rollout,omitempty"`
	Variants     []Variant       `json:"variants,omitempty"`
	Targeting    []TargetingRule `json:"targeting,omitempty"`
	Environments []string        `json:"environments,omitempty"`
	CreatedBy    *string         `json:"created_by,omitempty"`
}
