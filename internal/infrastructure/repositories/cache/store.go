package cache

import (
	"context"
	"time"
)

// Store is a raw string key/value backend with expiry.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// ConnectivityNotifier is implemented by stores that observe their own connection lifecycle.
type ConnectivityNotifier interface {
	SetConnectivityHandler(handler func(connected bool, err error))
}
