package entities

import "time"

// BreakerEventType identifica un evento del ciclo de vida de un circuit breaker
type BreakerEventType string

const (
	BreakerEventOpen     BreakerEventType = "open"
	BreakerEventHalfOpen BreakerEventType = "half-open"
	BreakerEventClosed   BreakerEventType = "closed"
	BreakerEventTimeout  BreakerEventType = "timeout"
	BreakerEventRejected BreakerEventType = "rejected"
	BreakerEventSuccess  BreakerEventType = "success"
	BreakerEventFailure  BreakerEventType = "failure"
)

// IsTransition reports whether the event is a state change rather than a call outcome.
func (t BreakerEventType) IsTransition() bool {
	switch t {
	case BreakerEventOpen, BreakerEventHalfOpen, BreakerEventClosed:
		return true
	}
	return false
}

// BreakerEvent describe lo ocurrido en un breaker. From/To solo aplican a transiciones.
type BreakerEvent struct {
	Breaker   string           `json:"breaker"`
	Type      BreakerEventType `json:"event"`
	From      string           `json:"from,omitempty"`
	To        string           `json:"to,omitempty"`
	Err       error            `json:"-"`
	Timestamp time.Time        `json:"timestamp"`
}
