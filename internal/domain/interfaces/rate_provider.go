package interfaces

import (
	"context"

	"fx-rate-service/internal/domain/entities"
)

// RateProvider es el adaptador uniforme sobre una API externa de tipos de cambio
type RateProvider interface {
	// Name identifica al proveedor en logs, métricas y en el campo provider de los resultados
	Name() string

	GetRate(ctx context.Context, from, to string) (*entities.ProviderQuote, error)
	GetRates(ctx context.Context, base string) (*entities.ProviderRates, error)

	// HealthStatus refleja el resultado de la última llamada (healthy/unhealthy).
	// Es informativo, no bloquea llamadas.
	HealthStatus() string
}
