package interfaces

import (
	"context"
	"time"
)

// RateCache es un cache clave/valor con TTL que nunca propaga errores de conexión.
// Todas las operaciones devuelven false cuando el cache no está disponible.
type RateCache interface {
	Get(ctx context.Context, key string, dest any) bool
	// Set usa el TTL por defecto del cache cuando ttl <= 0
	Set(ctx context.Context, key string, value any, ttl time.Duration) bool
	Delete(ctx context.Context, key string) bool
	Status() string
}
