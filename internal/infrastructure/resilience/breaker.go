package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fx-rate-service/internal/domain/entities"
	"fx-rate-service/internal/domain/interfaces"

	"github.com/sony/gobreaker/v2"
)

// BreakerSettings configura un circuit breaker
type BreakerSettings struct {
	Name string
	// Timeout bounds each guarded call
	Timeout time.Duration
	// ErrorThreshold is the failure percentage that must be exceeded to trip
	ErrorThreshold float64
	// ResetTimeout is how long the breaker stays open before allowing one trial call
	ResetTimeout time.Duration
	// VolumeThreshold is the minimum number of calls before the error rate is evaluated
	VolumeThreshold int
	// RollingWindow clears the closed-state counters periodically; zero keeps them until a trip
	RollingWindow time.Duration
}

// Breaker envuelve un gobreaker con timeout por llamada y notificación de eventos
type Breaker struct {
	name     string
	timeout  time.Duration
	cb       *gobreaker.CircuitBreaker[any]
	listener interfaces.BreakerListener
}

// NewBreaker crea un breaker que notifica cada evento a los listeners
func NewBreaker(settings BreakerSettings, listeners ...interfaces.BreakerListener) *Breaker {
	b := &Breaker{
		name:     settings.Name,
		timeout:  settings.Timeout,
		listener: MultiListener(listeners),
	}

	volume := uint32(max(settings.VolumeThreshold, 1))
	threshold := settings.ErrorThreshold

	b.cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: 1,
		Interval:    settings.RollingWindow,
		Timeout:     settings.ResetTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < volume {
				return false
			}
			failureRate := float64(counts.TotalFailures) * 100 / float64(counts.Requests)
			return failureRate > threshold
		},
		// caller cancellation says nothing about the dependency
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			b.notify(context.Background(), entities.BreakerEvent{
				Type: transitionEvent(to),
				From: from.String(),
				To:   to.String(),
			})
		},
	})

	return b
}

// Name returns the breaker name
func (b *Breaker) Name() string {
	return b.name
}

// State returns closed, open or half-open
func (b *Breaker) State() string {
	return b.cb.State().String()
}

// Execute runs fn through the breaker
func (b *Breaker) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	_, err := WithBreaker(b, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})(ctx)
	return err
}

type outcome[T any] struct {
	value T
	err   error
}

// WithBreaker wraps action so every call goes through b and is bounded by its timeout.
// Rejections surface as ErrBreakerOpen and timeouts as ErrCallTimeout.
func WithBreaker[T any](b *Breaker, action Action[T]) Action[T] {
	return func(ctx context.Context) (T, error) {
		var zero T

		res, err := b.cb.Execute(func() (any, error) {
			return b.guard(ctx, func(callCtx context.Context) (any, error) {
				return action(callCtx)
			})
		})

		switch {
		case err == nil:
			b.notify(ctx, entities.BreakerEvent{Type: entities.BreakerEventSuccess})
			value, _ := res.(T)
			return value, nil
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			b.notify(ctx, entities.BreakerEvent{Type: entities.BreakerEventRejected, Err: err})
			return zero, fmt.Errorf("%w: %s", ErrBreakerOpen, b.name)
		default:
			b.notify(ctx, entities.BreakerEvent{Type: entities.BreakerEventFailure, Err: err})
			return zero, err
		}
	}
}

// guard runs fn under the breaker timeout. The result travels over a buffered channel
// so a call abandoned on timeout can still finish without blocking.
func (b *Breaker) guard(ctx context.Context, fn func(context.Context) (any, error)) (any, error) {
	if b.timeout <= 0 {
		return fn(ctx)
	}

	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	done := make(chan outcome[any], 1)
	go func() {
		value, err := fn(callCtx)
		done <- outcome[any]{value: value, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil && b.timedOut(ctx, callCtx) {
			return nil, b.timeoutError(ctx)
		}
		return out.value, out.err
	case <-callCtx.Done():
		if b.timedOut(ctx, callCtx) {
			return nil, b.timeoutError(ctx)
		}
		return nil, ctx.Err()
	}
}

// timedOut distingue el timeout propio del breaker de la cancelación del llamador
func (b *Breaker) timedOut(parent, callCtx context.Context) bool {
	return errors.Is(callCtx.Err(), context.DeadlineExceeded) && parent.Err() == nil
}

func (b *Breaker) timeoutError(ctx context.Context) error {
	err := fmt.Errorf("%w after %v: %s", ErrCallTimeout, b.timeout, b.name)
	b.notify(ctx, entities.BreakerEvent{Type: entities.BreakerEventTimeout, Err: err})
	return err
}

func (b *Breaker) notify(ctx context.Context, event entities.BreakerEvent) {
	event.Breaker = b.name
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	b.listener.OnBreakerEvent(ctx, event)
}

func transitionEvent(to gobreaker.State) entities.BreakerEventType {
	switch to {
	case gobreaker.StateOpen:
		return entities.BreakerEventOpen
	case gobreaker.StateHalfOpen:
		return entities.BreakerEventHalfOpen
	default:
		return entities.BreakerEventClosed
	}
}
