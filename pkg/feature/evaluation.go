package feature

import "time"

// EvaluationContext carries the caller-supplied identity and environment data
// that personalizes an evaluation. All fields are optional.
type EvaluationContext struct {
	UserID      string         `json:"user_id,omitempty"`
	Email       string         `json:"email,omitempty"`
	SessionID   string         `json:"session_id,omitempty"`
	Environment string         `json:"environment,omitempty"`
	Attributes  map[string]any `json:"attributes,omitempty"`
}

// subjectID is the identity used for bucketing: user id, falling back to
// session id, falling back to a shared anonymous subject.
func (c EvaluationContext) subjectID() string {
	if c.UserID != "" {
		return c.UserID
	}
	if c.SessionID != "" {
		return c.SessionID
	}
	return "anonymous"
}

// Reason explains which evaluation step decided the outcome.
type Reason string

const (
	ReasonFlagNotFound Reason = "FLAG_NOT_FOUND"
	ReasonFlagDisabled Reason = "FLAG_DISABLED"
	// ReasonEnvironmentMatch is returned when the effective environment is
	// NOT in the flag's allow-list. The label is historical and kept for
	// compatibility with consumers keying on the literal string.
	ReasonEnvironmentMatch  Reason = "ENVIRONMENT_MATCH"
	ReasonTargetingMatch    Reason = "TARGETING_MATCH"
	ReasonPercentageRollout Reason = "PERCENTAGE_ROLLOUT"
	ReasonUserIDMatch       Reason = "USER_ID_MATCH"
	ReasonCohortMatch       Reason = "COHORT_MATCH"
	ReasonScheduleActive    Reason = "SCHEDULE_ACTIVE"
	ReasonDefault           Reason = "DEFAULT"
)

// EvaluationResult is the outcome of a single evaluation. Variant and Payload
// are only populated on enabled results for flags that define variants.
type EvaluationResult struct {
	Key         string         `json:"key"`
	Enabled     bool           `json:"enabled"`
	Variant     string         `json:"variant,omitempty"`
	Payload     map[string]any `json:"payload,omitempty"`
	Reason      Reason         `json:"reason"`
	EvaluatedAt time.Time      `json:"evaluated_at"`
}
