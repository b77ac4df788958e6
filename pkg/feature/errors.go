package feature

import "errors"

var (
	// ErrFlagNotFound indicates the flag does not exist in any persistence tier.
	ErrFlagNotFound = errors.New("feature flag not found")

	// ErrInvalidFlag indicates a flag definition that cannot be stored,
	// such as an empty key or a percentage outside [0,100].
	ErrInvalidFlag = errors.New("invalid feature flag definition")
)
