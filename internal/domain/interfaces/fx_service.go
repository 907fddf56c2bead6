package interfaces

import (
	"context"

	"fx-rate-service/internal/domain/entities"
)

// FxService define los casos de uso de tipos de cambio
type FxService interface {
	// GetExchangeRate recorre cache -> primario -> fallback -> tabla por defecto
	GetExchangeRate(ctx context.Context, from, to string) (*entities.RateResult, error)

	// Convert usa GetExchangeRate y redondea el monto a 2 decimales
	Convert(ctx context.Context, from, to string, amount float64) (*entities.ConvertResult, error)

	// GetRates devuelve las tasas para una base, filtradas por targets si no está vacío
	GetRates(ctx context.Context, base string, targets []string) (*entities.RatesResult, error)

	HealthCheck(ctx context.Context) *entities.HealthStatus
}
