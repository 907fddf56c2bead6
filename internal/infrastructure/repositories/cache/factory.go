package cache

import (
	"context"
	"fmt"

	"fx-rate-service/internal/infrastructure/config"
	"fx-rate-service/internal/infrastructure/logging"
)

// CacheType represents the type of store implementation
type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

// Factory provides methods to create cache instances
type Factory struct{}

// NewFactory creates a new cache factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateStore creates a store based on configuration. It does not dial; Gateway.Connect does.
func (f *Factory) CreateStore(cfg config.CacheConfig) (Store, error) {
	ctx := context.Background()

	switch CacheType(cfg.Backend) {
	case CacheTypeMemory:
		logging.Info(ctx, "Creating memory cache", logging.Fields{
			"type": "memory",
		})
		return NewMemoryStore(), nil

	case CacheTypeRedis:
		logging.Info(ctx, "Creating Redis cache", logging.Fields{
			"type":     "redis",
			"addr":     cfg.Redis.Addr(),
			"database": cfg.Redis.DB,
		})
		return NewRedisStore(cfg.Redis), nil

	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Backend)
	}
}

// CreateGateway creates the store and wraps it in a Gateway using the configured TTL
func (f *Factory) CreateGateway(cfg config.CacheConfig) (*Gateway, error) {
	store, err := f.CreateStore(cfg)
	if err != nil {
		return nil, err
	}
	return NewGateway(store, cfg.TTL), nil
}
