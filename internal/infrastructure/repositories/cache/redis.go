package cache

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"fx-rate-service/internal/infrastructure/config"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store using Redis and reports connectivity from a client hook
type RedisStore struct {
	client *redis.Client

	mu      sync.RWMutex
	handler func(connected bool, err error)
}

// NewRedisStore creates a Redis store. Reconnection backoff is driven by go-redis itself:
// MinRetryBackoff grows per attempt up to MaxRetryBackoff.
func NewRedisStore(cfg config.RedisConfig) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Addr(),
		Password:        cfg.Password,
		DB:              cfg.DB,
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: cfg.MinRetryBackoff,
		MaxRetryBackoff: cfg.MaxRetryBackoff,
		DialTimeout:     cfg.DialTimeout,
	})

	return NewRedisStoreWithClient(rdb)
}

// NewRedisStoreWithClient creates a Redis store with an existing client
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	s := &RedisStore{client: client}
	client.AddHook(&connectivityHook{store: s})
	return s
}

// SetConnectivityHandler registers the callback fired on every observed command or dial outcome
func (r *RedisStore) SetConnectivityHandler(handler func(connected bool, err error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handler = handler
}

func (r *RedisStore) report(err error) {
	// caller cancellation says nothing about the server
	if errors.Is(err, context.Canceled) {
		return
	}

	r.mu.RLock()
	handler := r.handler
	r.mu.RUnlock()
	if handler == nil {
		return
	}

	if isConnectivityError(err) {
		handler(false, err)
		return
	}
	handler(true, nil)
}

// Get retrieves a value from Redis
func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set stores a value in Redis with TTL
func (r *RedisStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes a key from Redis
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// Ping checks if Redis connection is alive
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisStore) Close() error {
	return r.client.Close()
}

// isConnectivityError distinguishes transport failures from replies the server did send
func isConnectivityError(err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return false
	}
	var replyErr redis.Error
	if errors.As(err, &replyErr) {
		return false
	}
	return true
}

// connectivityHook observa dial y comandos para mantener el flag de conexión
type connectivityHook struct {
	store *RedisStore
}

func (h *connectivityHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		h.store.report(err)
		return conn, err
	}
}

func (h *connectivityHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		h.store.report(err)
		return err
	}
}

func (h *connectivityHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		h.store.report(err)
		return err
	}
}
