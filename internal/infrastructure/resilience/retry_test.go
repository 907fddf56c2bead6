package resilience

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry(t *testing.T) {
	tests := []struct {
		name        string
		maxAttempts int
		failures    int
		wantCalls   int
		wantErr     string
	}{
		{name: "first attempt succeeds", maxAttempts: 3, failures: 0, wantCalls: 1},
		{name: "succeeds on last attempt", maxAttempts: 3, failures: 2, wantCalls: 3},
		{name: "exhausts attempts and returns last error", maxAttempts: 3, failures: 5, wantCalls: 3, wantErr: "attempt 3"},
		{name: "zero attempts still calls once", maxAttempts: 0, failures: 5, wantCalls: 1, wantErr: "attempt 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			action := WithRetry(func(ctx context.Context) (string, error) {
				calls++
				if calls <= tt.failures {
					return "", fmt.Errorf("attempt %d", calls)
				}
				return "ok", nil
			}, RetryPolicy{MaxAttempts: tt.maxAttempts, BaseDelay: time.Millisecond})

			got, err := action(context.Background())

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ok", got)
		})
	}
}

func TestWithRetry_ExponentialBackoff(t *testing.T) {
	var retries []int
	start := time.Now()

	action := WithRetry(func(ctx context.Context) (int, error) {
		return 0, errUpstream
	}, RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   20 * time.Millisecond,
		OnRetry: func(attempt int, err error) {
			retries = append(retries, attempt)
		},
	})

	_, err := action(context.Background())
	elapsed := time.Since(start)

	require.ErrorIs(t, err, errUpstream)
	// 20ms after the first failure, 40ms after the second
	assert.GreaterOrEqual(t, elapsed, 60*time.Millisecond)
	assert.Equal(t, []int{1, 2}, retries)
}

func TestWithRetry_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	calls := 0
	action := WithRetry(func(ctx context.Context) (int, error) {
		calls++
		return 0, errUpstream
	}, RetryPolicy{MaxAttempts: 5, BaseDelay: time.Second})

	_, err := action(ctx)

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestResilient_RetriesFailFastAgainstOpenBreaker(t *testing.T) {
	b := NewBreaker(testSettings())
	tripBreaker(t, b)

	calls := 0
	action := Resilient(b, RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}, func(ctx context.Context) (float64, error) {
		calls++
		return 1, nil
	})

	_, err := action(context.Background())

	assert.True(t, errors.Is(err, ErrBreakerOpen))
	assert.Zero(t, calls)
}

func TestResilient_RecoversThroughRetry(t *testing.T) {
	b := NewBreaker(testSettings())

	calls := 0
	action := Resilient(b, RetryPolicy{MaxAttempts: 2, BaseDelay: time.Millisecond}, func(ctx context.Context) (float64, error) {
		calls++
		if calls == 1 {
			return 0, errUpstream
		}
		return 7.8, nil
	})

	got, err := action(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 7.8, got)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "closed", b.State())
}
