package resilience

import "errors"

var (
	// ErrBreakerOpen is returned when the breaker rejects a call without running it.
	ErrBreakerOpen = errors.New("circuit breaker is open")
	// ErrCallTimeout is returned when a guarded call exceeds the breaker timeout.
	ErrCallTimeout = errors.New("circuit breaker call timeout")
)
