package interfaces

import (
	"context"

	"fx-rate-service/internal/domain/entities"
)

// BreakerListener observa los eventos de un circuit breaker.
// Se invoca de forma síncrona en el camino del llamador: no debe bloquear.
type BreakerListener interface {
	OnBreakerEvent(ctx context.Context, event entities.BreakerEvent)
}
