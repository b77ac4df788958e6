package feature

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/dmitrymomot/flagkit/pkg/bucket"
)

// DefaultEnvironment is the effective environment when neither the
// evaluation context nor the service configuration names one.
const DefaultEnvironment = "development"

// Service is the flag evaluation engine and CRUD registry. Construct it with
// New and a Store; it holds no hidden global state, so independent instances
// with independent stores can coexist in one process.
type Service struct {
	store      Store
	log        *slog.Logger
	defaultEnv string
	metrics    *serviceMetrics
}

// New creates a Service over the given persistence tier.
// The store must not be nil, otherwise it panics.
func New(store Store, opts ...Option) *Service {
	if store == nil {
		panic("feature: store must not be nil")
	}
	s := &Service{
		store:      store,
		log:        slog.Default(),
		defaultEnv: DefaultEnvironment,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluate decides whether the flag is enabled for the given context and
// which variant, if any, the subject is assigned. It never returns an error:
// a missing or misconfigured flag is encoded in the result's Reason.
//
// Decision order, first decisive step wins: flag lookup, the Enabled kill
// switch, the environment allow-list, targeting rules in list order, then
// the rollout strategy. Variants are only attached to enabled results.
func (s *Service) Evaluate(ctx context.Context, key string, ectx EvaluationContext) EvaluationResult {
	result := s.evaluate(ctx, key, ectx)
	if s.metrics != nil {
		s.metrics.evaluations.WithLabelValues(key, string(result.Reason)).Inc()
	}
	return result
}

func (s *Service) evaluate(ctx context.Context, key string, ectx EvaluationContext) EvaluationResult {
	result := EvaluationResult{Key: key, EvaluatedAt: time.Now()}

	flag, err := s.store.Get(ctx, key)
	if err != nil || flag == nil {
		if err != nil && !errors.Is(err, ErrFlagNotFound) {
			s.log.WarnContext(ctx, "flag lookup failed, treating as not found",
				slog.String("flag", key), slog.Any("error", err))
		}
		result.Reason = ReasonFlagNotFound
		return result
	}

	// Global kill switch, independent of rollout and targeting.
	if !flag.Enabled {
		result.Reason = ReasonFlagDisabled
		return result
	}

	if len(flag.Environments) > 0 {
		env := ectx.Environment
		if env == "" {
			env = s.defaultEnv
		}
		if !slices.Contains(flag.Environments, env) {
			result.Reason = ReasonEnvironmentMatch
			return result
		}
	}

	subject := ectx.subjectID()

	for _, rule := range flag.Targeting {
		attr, ok := resolveAttribute(ectx, rule.Attribute)
		if !ok {
			continue
		}
		if matchRule(rule, attr) {
			result.Enabled = true
			result.Reason = ReasonTargetingMatch
			attachVariant(&result, flag, subject)
			return result
		}
	}

	switch flag.Rollout.Type {
	case RolloutPercentage:
		result.Enabled = bucket.Bucket(subject, flag.Key) < flag.Rollout.Value
		result.Reason = ReasonPercentageRollout
	case RolloutUserIDs:
		result.Enabled = ectx.UserID != "" && slices.Contains(flag.Rollout.IDs, ectx.UserID)
		result.Reason = ReasonUserIDMatch
	case RolloutCohorts:
		cohort, ok := resolveAttribute(ectx, attrCohort)
		result.Enabled = ok && slices.Contains(flag.Rollout.Names, cohort)
		result.Reason = ReasonCohortMatch
	case RolloutSchedule:
		now := time.Now()
		result.Enabled = !now.Before(flag.Rollout.StartDate) &&
			(flag.Rollout.EndDate == nil || !now.After(*flag.Rollout.EndDate))
		result.Reason = ReasonScheduleActive
	default:
		// Boolean, and any type this build does not recognize: enabled flags
		// without a narrower strategy are on for everyone.
		result.Enabled = true
		result.Reason = ReasonDefault
	}

	if result.Enabled {
		attachVariant(&result, flag, subject)
	}
	return result
}

func attachVariant(result *EvaluationResult, flag *Flag, subject string) {
	v := assignVariant(flag, subject)
	if v == nil {
		return
	}
	result.Variant = v.Key
	result.Payload = v.Payload
}

// IsEnabled is a convenience derivation of Evaluate.
func (s *Service) IsEnabled(ctx context.Context, key string, ectx EvaluationContext) bool {
	return s.Evaluate(ctx, key, ectx).Enabled
}

// GetVariant returns the assigned variant key, or an empty string when the
// flag is disabled, missing, or defines no variants.
func (s *Service) GetVariant(ctx context.Context, key string, ectx EvaluationContext) string {
	return s.Evaluate(ctx, key, ectx).Variant
}

// CreateFlag stores a new flag. Missing fields default to a disabled flag
// with the boolean rollout. Key uniqueness is the caller's responsibility:
// creating an existing key overwrites it destructively.
func (s *Service) CreateFlag(ctx context.Context, input FlagInput) (*Flag, error) {
	if input.Key == "" {
		return nil, errors.Join(ErrInvalidFlag, errors.New("flag key cannot be empty"))
	}

	rollout := Rollout{Type: RolloutBoolean}
	if input.Rollout != nil {
		rollout = *input.Rollout
	}
	if err := rollout.validate(); err != nil {
		return nil, err
	}
	if err := validateVariants(input.Variants); err != nil {
		return nil, err
	}

	now := time.Now()
	flag := &Flag{
		Key:          input.Key,
		Name:         input.Name,
		Description:  input.Description,
		Enabled:      input.Enabled,
		Rollout:      rollout,
		Variants:     input.Variants,
		Targeting:    input.Targeting,
		Environments: input.Environments,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    input.CreatedBy,
	}
	if err := s.store.Put(ctx, flag); err != nil {
		return nil, err
	}
	return flag, nil
}

// UpdateFlag applies a shallow merge: nil fields of the update keep the
// stored value. Returns ErrFlagNotFound when the flag does not exist.
func (s *Service) UpdateFlag(ctx context.Context, key string, update FlagUpdate) (*Flag, error) {
	flag, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		flag.Name = *update.Name
	}
	if update.Description != nil {
		flag.Description = *update.Description
	}
	if update.Enabled != nil {
		flag.Enabled = *update.Enabled
	}
	if update.Rollout != nil {
		if err := update.Rollout.validate(); err != nil {
			return nil, err
		}
		flag.Rollout = *update.Rollout
	}
	if update.Variants != nil {
		if err := validateVariants(update.Variants); err != nil {
			return nil, err
		}
		flag.Variants = update.Variants
	}
	if update.Targeting != nil {
		flag.Targeting = update.Targeting
	}
	if update.Environments != nil {
		flag.Environments = update.Environments
	}
	if update.CreatedBy != nil {
		flag.CreatedBy = *update.CreatedBy
	}
	flag.UpdatedAt = time.Now()

	if err := s.store.Put(ctx, flag); err != nil {
		return nil, err
	}
	return flag, nil
}

// DeleteFlag removes the flag from all persistence tiers. It is idempotent
// and succeeds even when only the local tiers could be cleared.
func (s *Service) DeleteFlag(ctx context.Context, key string) error {
	return s.store.Delete(ctx, key)
}

// GetFlag returns the stored flag definition or ErrFlagNotFound.
func (s *Service) GetFlag(ctx context.Context, key string) (*Flag, error) {
	return s.store.Get(ctx, key)
}

// GetAllFlags returns every stored flag, ordered by key. No pagination.
func (s *Service) GetAllFlags(ctx context.Context) ([]*Flag, error) {
	return s.store.All(ctx)
}

// RegisterDefaultFlags bootstraps flags that do not exist yet. Existing
// flags are left untouched so bootstrap never clobbers admin edits.
func (s *Service) RegisterDefaultFlags(ctx context.Context, inputs []FlagInput) error {
	for _, input := range inputs {
		if _, err := s.store.Get(ctx, input.Key); err == nil {
			continue
		} else if !errors.Is(err, ErrFlagNotFound) {
			return err
		}
		if _, err := s.CreateFlag(ctx, input); err != nil {
			return fmt.Errorf("register default flag %q: %w", input.Key, err)
		}
		s.log.DebugContext(ctx, "registered default flag", slog.String("flag", input.Key))
	}
	return nil
}

// ClearCache drops the store's read cache. Primarily for test isolation.
func (s *Service) ClearCache() {
	s.store.ClearCache()
}

func validateVariants(variants []Variant) error {
	for _, v := range variants {
		if v.Key == "" {
			return errors.Join(ErrInvalidFlag, errors.New("variant key cannot be empty"))
		}
		if v.Weight < 0 {
			return errors.Join(ErrInvalidFlag,
				fmt.Errorf("variant %q weight cannot be negative", v.Key))
		}
	}
	return nil
}
