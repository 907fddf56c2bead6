package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fx-rate-service/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream failed")

type recordingListener struct {
	mu     sync.Mutex
	events []entities.BreakerEvent
}

func (r *recordingListener) OnBreakerEvent(_ context.Context, event entities.BreakerEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingListener) types() []entities.BreakerEventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.BreakerEventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func (r *recordingListener) transitions() []entities.BreakerEventType {
	var out []entities.BreakerEventType
	for _, t := range r.types() {
		if t.IsTransition() {
			out = append(out, t)
		}
	}
	return out
}

func testSettings() BreakerSettings {
	return BreakerSettings{
		Name:            "test",
		Timeout:         time.Second,
		ErrorThreshold:  50,
		ResetTimeout:    50 * time.Millisecond,
		VolumeThreshold: 5,
		RollingWindow:   time.Minute,
	}
}

func failing(ctx context.Context) error { return errUpstream }
func succeeding(ctx context.Context) error { return nil }

func tripBreaker(t *testing.T, b *Breaker) {
	t.Helper()
	for i := 0; i < 5; i++ {
		require.ErrorIs(t, b.Execute(context.Background(), failing), errUpstream)
	}
	require.Equal(t, "open", b.State())
}

func TestBreaker_Trip(t *testing.T) {
	tests := []struct {
		name      string
		outcomes  []bool // true = success
		wantState string
	}{
		{
			name:      "opens after volume threshold with full failure rate",
			outcomes:  []bool{false, false, false, false, false},
			wantState: "open",
		},
		{
			name:      "stays closed below volume threshold",
			outcomes:  []bool{false, false, false, false},
			wantState: "closed",
		},
		{
			name:      "stays closed when failure rate does not exceed threshold",
			outcomes:  []bool{true, true, true, false, false},
			wantState: "closed",
		},
		{
			name:      "exactly at threshold does not trip",
			outcomes:  []bool{true, true, true, false, false, false},
			wantState: "closed",
		},
		{
			name:      "just above threshold trips",
			outcomes:  []bool{true, true, false, false, false},
			wantState: "open",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBreaker(testSettings())
			for _, ok := range tt.outcomes {
				fn := failing
				if ok {
					fn = succeeding
				}
				_ = b.Execute(context.Background(), fn)
			}
			assert.Equal(t, tt.wantState, b.State())
		})
	}
}

func TestBreaker_OpenRejectsWithoutCalling(t *testing.T) {
	listener := &recordingListener{}
	b := NewBreaker(testSettings(), listener)
	tripBreaker(t, b)

	var calls int32
	err := b.Execute(context.Background(), func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	assert.ErrorIs(t, err, ErrBreakerOpen)
	assert.Zero(t, atomic.LoadInt32(&calls))
	assert.Contains(t, listener.types(), entities.BreakerEventRejected)
	assert.Equal(t, []entities.BreakerEventType{entities.BreakerEventOpen}, listener.transitions())
}

func TestBreaker_HalfOpenAllowsExactlyOneTrial(t *testing.T) {
	b := NewBreaker(testSettings())
	tripBreaker(t, b)
	time.Sleep(80 * time.Millisecond)

	started := make(chan struct{})
	release := make(chan struct{})
	trialErr := make(chan error, 1)

	go func() {
		trialErr <- b.Execute(context.Background(), func(ctx context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	assert.Equal(t, "half-open", b.State())

	err := b.Execute(context.Background(), succeeding)
	assert.ErrorIs(t, err, ErrBreakerOpen)

	close(release)
	require.NoError(t, <-trialErr)
	assert.Equal(t, "closed", b.State())
}

func TestBreaker_HalfOpenTrialOutcome(t *testing.T) {
	tests := []struct {
		name            string
		trial           func(ctx context.Context) error
		wantState       string
		wantTransitions []entities.BreakerEventType
	}{
		{
			name:      "success closes",
			trial:     succeeding,
			wantState: "closed",
			wantTransitions: []entities.BreakerEventType{
				entities.BreakerEventOpen, entities.BreakerEventHalfOpen, entities.BreakerEventClosed,
			},
		},
		{
			name:      "failure re-opens",
			trial:     failing,
			wantState: "open",
			wantTransitions: []entities.BreakerEventType{
				entities.BreakerEventOpen, entities.BreakerEventHalfOpen, entities.BreakerEventOpen,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listener := &recordingListener{}
			b := NewBreaker(testSettings(), listener)
			tripBreaker(t, b)
			time.Sleep(80 * time.Millisecond)

			_ = b.Execute(context.Background(), tt.trial)

			assert.Equal(t, tt.wantState, b.State())
			assert.Equal(t, tt.wantTransitions, listener.transitions())
		})
	}
}

func TestBreaker_TimeoutCountsAsFailure(t *testing.T) {
	listener := &recordingListener{}
	settings := testSettings()
	settings.Timeout = 20 * time.Millisecond
	b := NewBreaker(settings, listener)

	slow := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}

	for i := 0; i < 5; i++ {
		err := b.Execute(context.Background(), slow)
		require.ErrorIs(t, err, ErrCallTimeout)
	}

	assert.Equal(t, "open", b.State())
	assert.Contains(t, listener.types(), entities.BreakerEventTimeout)
}

func TestBreaker_CallerCancellationIsNotAFailure(t *testing.T) {
	b := NewBreaker(testSettings())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 6; i++ {
		err := b.Execute(ctx, func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})
		require.ErrorIs(t, err, context.Canceled)
	}

	assert.Equal(t, "closed", b.State())
}

func TestWithBreaker_ReturnsValue(t *testing.T) {
	b := NewBreaker(testSettings())
	action := WithBreaker(b, func(ctx context.Context) (float64, error) {
		return 0.128, nil
	})

	got, err := action(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.128, got)
}

func TestMultiListener_FansOut(t *testing.T) {
	first, second := &recordingListener{}, &recordingListener{}
	multi := MultiListener{first, nil, second}

	multi.OnBreakerEvent(context.Background(), entities.BreakerEvent{Type: entities.BreakerEventOpen})

	assert.Len(t, first.types(), 1)
	assert.Len(t, second.types(), 1)
}
