package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotConfigured        = errors.New("attribution engine not configured")
	ErrAlreadyConfigured    = errors.New("attribution engine already configured")
	ErrMissingCredentials   = errors.New("missing api key")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrAttributionFailed    = errors.New("attribution failed")
	ErrSecretNotFound       = errors.New("secret not found")
)

var errUnknownCause = errors.New("unknown cause")

// AttributionFailedError wraps a failure reported by the attribution service.
// It matches both ErrAttributionFailed and its cause under errors.Is.
type AttributionFailedError struct {
	Op    string
	Cause error
}

func NewAttributionFailedError(op string, cause error) *AttributionFailedError {
	if cause == nil {
		cause = errUnknownCause
	}

	return &AttributionFailedError{Op: op, Cause: cause}
}

func (e *AttributionFailedError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", ErrAttributionFailed, e.Cause)
	}

	return fmt.Sprintf("%s: %s: %v", ErrAttributionFailed, e.Op, e.Cause)
}

func (e *AttributionFailedError) Unwrap() []error {
	return []error{ErrAttributionFailed, e.Cause}
}
