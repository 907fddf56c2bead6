package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"fx-rate-service/internal/domain/entities"
	"fx-rate-service/internal/infrastructure/logging"
	"fx-rate-service/internal/infrastructure/metrics"
)

const (
	reconnectStep     = 100 * time.Millisecond
	reconnectMaxDelay = 3 * time.Second
	probeTimeout      = time.Second
)

// Gateway envuelve un Store con serialización JSON, TTL por defecto y degradación silenciosa.
// Ningún método propaga errores de conexión: se registran y se reportan como miss o false.
type Gateway struct {
	store      Store
	defaultTTL time.Duration

	connected atomic.Bool

	mu         sync.Mutex
	monitoring bool
	closed     bool
	stopCh     chan struct{}
	wg         sync.WaitGroup
}

// NewGateway crea un gateway sobre store, desconectado hasta que Connect funcione
func NewGateway(store Store, defaultTTL time.Duration) *Gateway {
	g := &Gateway{
		store:      store,
		defaultTTL: defaultTTL,
		stopCh:     make(chan struct{}),
	}

	if notifier, ok := store.(ConnectivityNotifier); ok {
		notifier.SetConnectivityHandler(g.setConnected)
	}
	metrics.UpdateCacheConnectionStatus(false)

	return g
}

// Connect verifica la conexión; si falla, el monitor sigue probando en segundo plano
func (g *Gateway) Connect(ctx context.Context) error {
	if err := g.store.Ping(ctx); err != nil {
		g.setConnected(false, err)
		return fmt.Errorf("cache connect failed: %w", err)
	}
	g.setConnected(true, nil)
	return nil
}

// Get decodes the value under key into dest. It returns false on miss, decode failure or when disconnected.
func (g *Gateway) Get(ctx context.Context, key string, dest any) bool {
	if !g.connected.Load() {
		metrics.RecordCacheOperation("get", "unavailable")
		return false
	}

	raw, err := g.store.Get(ctx, key)
	if err != nil {
		if IsMiss(err) {
			metrics.RecordCacheOperation("get", "miss")
			logging.Cache().Miss(ctx, key)
			return false
		}
		metrics.RecordCacheOperation("get", "error")
		logging.Cache().CacheError(ctx, logging.CacheOpGet, key, err)
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		metrics.RecordCacheOperation("get", "error")
		logging.Cache().CacheError(ctx, logging.CacheOpGet, key, fmt.Errorf("decode cached value: %w", err))
		return false
	}

	metrics.RecordCacheOperation("get", "hit")
	logging.Cache().Hit(ctx, key)
	return true
}

// Set encodes value as JSON and stores it. ttl <= 0 uses the gateway default.
func (g *Gateway) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	if !g.connected.Load() {
		metrics.RecordCacheOperation("set", "unavailable")
		return false
	}

	if ttl <= 0 {
		ttl = g.defaultTTL
	}

	payload, err := json.Marshal(value)
	if err != nil {
		metrics.RecordCacheOperation("set", "error")
		logging.Cache().CacheError(ctx, logging.CacheOpSet, key, fmt.Errorf("encode value: %w", err))
		return false
	}

	if err := g.store.Set(ctx, key, string(payload), ttl); err != nil {
		metrics.RecordCacheOperation("set", "error")
		logging.Cache().CacheError(ctx, logging.CacheOpSet, key, err)
		return false
	}

	metrics.RecordCacheOperation("set", "success")
	logging.Cache().Set(ctx, key, ttl.Seconds())
	return true
}

// Delete elimina la clave
func (g *Gateway) Delete(ctx context.Context, key string) bool {
	if !g.connected.Load() {
		metrics.RecordCacheOperation("delete", "unavailable")
		return false
	}

	if err := g.store.Delete(ctx, key); err != nil {
		metrics.RecordCacheOperation("delete", "error")
		logging.Cache().CacheError(ctx, logging.CacheOpDelete, key, err)
		return false
	}

	metrics.RecordCacheOperation("delete", "success")
	logging.Cache().Delete(ctx, key)
	return true
}

// Status returns connected or disconnected
func (g *Gateway) Status() string {
	if g.connected.Load() {
		return entities.CacheStatusConnected
	}
	return entities.CacheStatusDisconnected
}

// Connected reporta el flag de conectividad
func (g *Gateway) Connected() bool {
	return g.connected.Load()
}

// Close stops the reconnect monitor and closes the store
func (g *Gateway) Close() error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return nil
	}
	g.closed = true
	close(g.stopCh)
	g.mu.Unlock()

	g.wg.Wait()
	err := g.store.Close()
	g.setConnected(false, nil)
	return err
}

func (g *Gateway) setConnected(connected bool, cause error) {
	if g.connected.Swap(connected) != connected {
		metrics.UpdateCacheConnectionStatus(connected)
		logging.Cache().StatusChanged(context.Background(), g.Status(), cause)
	}

	if !connected {
		g.startMonitor()
	}
}

func (g *Gateway) startMonitor() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed || g.monitoring {
		return
	}
	g.monitoring = true
	g.wg.Add(1)
	go g.monitor()
}

func (g *Gateway) monitorDone() {
	g.mu.Lock()
	g.monitoring = false
	g.mu.Unlock()
}

// monitor prueba la conexión con backoff min(intento*100ms, 3s) hasta recuperarla
func (g *Gateway) monitor() {
	defer g.wg.Done()

	for attempt := 1; ; attempt++ {
		timer := time.NewTimer(reconnectDelay(attempt))
		select {
		case <-g.stopCh:
			timer.Stop()
			g.monitorDone()
			return
		case <-timer.C:
		}

		metrics.RecordCacheReconnectAttempt()

		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		err := g.store.Ping(ctx)
		cancel()

		if err == nil {
			g.monitorDone()
			g.setConnected(true, nil)
			return
		}

		logging.Debug(context.Background(), "Cache reconnect probe failed", logging.Fields{
			logging.FieldAttempt: attempt,
			logging.FieldError:   err.Error(),
		})
	}
}

func reconnectDelay(attempt int) time.Duration {
	return min(time.Duration(attempt)*reconnectStep, reconnectMaxDelay)
}
