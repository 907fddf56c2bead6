package resilience

import (
	"context"

	"fx-rate-service/internal/domain/entities"
	"fx-rate-service/internal/domain/interfaces"
	"fx-rate-service/internal/infrastructure/logging"
	"fx-rate-service/internal/infrastructure/metrics"
)

// MultiListener reparte cada evento a todos los listeners
type MultiListener []interfaces.BreakerListener

func (m MultiListener) OnBreakerEvent(ctx context.Context, event entities.BreakerEvent) {
	for _, l := range m {
		if l != nil {
			l.OnBreakerEvent(ctx, event)
		}
	}
}

// LoggingListener registra transiciones, timeouts y rechazos
type LoggingListener struct{}

func NewLoggingListener() *LoggingListener {
	return &LoggingListener{}
}

func (l *LoggingListener) OnBreakerEvent(ctx context.Context, event entities.BreakerEvent) {
	fields := logging.Fields{
		logging.FieldBreaker: event.Breaker,
		"event":              string(event.Type),
	}

	switch event.Type {
	case entities.BreakerEventOpen:
		fields["from"] = event.From
		logging.Warn(ctx, "Circuit breaker opened", fields)
	case entities.BreakerEventHalfOpen:
		fields["from"] = event.From
		logging.Info(ctx, "Circuit breaker half-open, allowing trial call", fields)
	case entities.BreakerEventClosed:
		fields["from"] = event.From
		logging.Info(ctx, "Circuit breaker closed", fields)
	case entities.BreakerEventTimeout:
		logging.WarnWithError(ctx, "Circuit breaker call timed out", event.Err, fields)
	case entities.BreakerEventRejected:
		logging.Debug(ctx, "Circuit breaker rejected call", fields)
	case entities.BreakerEventFailure:
		logging.Debug(ctx, "Circuit breaker recorded failure", fields)
	}
}

// MetricsListener exporta estado y eventos del breaker a Prometheus
type MetricsListener struct{}

func NewMetricsListener() *MetricsListener {
	return &MetricsListener{}
}

func (l *MetricsListener) OnBreakerEvent(_ context.Context, event entities.BreakerEvent) {
	metrics.RecordCircuitBreakerEvent(event.Breaker, string(event.Type))

	switch event.Type {
	case entities.BreakerEventClosed:
		metrics.UpdateCircuitBreakerState(event.Breaker, 0)
	case entities.BreakerEventOpen:
		metrics.UpdateCircuitBreakerState(event.Breaker, 1)
	case entities.BreakerEventHalfOpen:
		metrics.UpdateCircuitBreakerState(event.Breaker, 2)
	}
}
