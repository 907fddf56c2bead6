package resilience

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

// Action is a unit of work that can be wrapped by WithBreaker and WithRetry.
type Action[T any] func(ctx context.Context) (T, error)

// RetryPolicy configura los reintentos con backoff exponencial
type RetryPolicy struct {
	// MaxAttempts is the total number of invocations; values below 1 mean a single attempt
	MaxAttempts int
	// BaseDelay is the wait after the first failure; it doubles after each further failure
	BaseDelay time.Duration
	// OnRetry is called after each failed attempt that will be retried (attempt is 1-based)
	OnRetry func(attempt int, err error)
}

// WithRetry invokes action up to MaxAttempts times, waiting BaseDelay*2^(n-1) after the n-th failure.
// It returns the first success or the last error.
func WithRetry[T any](action Action[T], policy RetryPolicy) Action[T] {
	attempts := uint(max(policy.MaxAttempts, 1))

	return func(ctx context.Context) (T, error) {
		opts := []retry.Option{
			retry.Context(ctx),
			retry.Attempts(attempts),
			retry.Delay(policy.BaseDelay),
			retry.DelayType(retry.BackOffDelay),
			retry.LastErrorOnly(true),
		}
		if policy.OnRetry != nil {
			opts = append(opts, retry.OnRetry(func(n uint, err error) {
				// retry-go also reports the final failed attempt
				if n+1 < attempts {
					policy.OnRetry(int(n)+1, err)
				}
			}))
		}

		return retry.DoWithData(func() (T, error) {
			return action(ctx)
		}, opts...)
	}
}

// Resilient composes retry around a breaker-guarded action, so every attempt respects the breaker gate.
func Resilient[T any](b *Breaker, policy RetryPolicy, action Action[T]) Action[T] {
	return WithRetry(WithBreaker(b, action), policy)
}
