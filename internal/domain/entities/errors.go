package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRateAvailable is the only failure the orchestrator surfaces once every tier is exhausted.
	ErrNoRateAvailable = errors.New("no rate available")
	ErrInvalidCurrency = errors.New("invalid currency code")
	ErrInvalidAmount   = errors.New("invalid amount")
)

// ProviderError describes a failed call to one upstream rate provider.
type ProviderError struct {
	Provider   string
	Operation  string
	StatusCode int
	Err        error
}

func NewProviderError(provider, operation string, statusCode int, err error) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		Operation:  operation,
		StatusCode: statusCode,
		Err:        err,
	}
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s %s failed (HTTP %d): %v", e.Provider, e.Operation, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Provider, e.Operation, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NoRateError wraps ErrNoRateAvailable with the pair that could not be resolved.
func NoRateError(from, to string) error {
	return fmt.Errorf("unable to obtain rate for %s->%s: %w", from, to, ErrNoRateAvailable)
}
