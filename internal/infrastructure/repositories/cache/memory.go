package cache

import (
	"context"
	"sync"
	"time"
)

// cacheItem representa un elemento en el cache con su valor y tiempo de expiración
type cacheItem struct {
	value     string
	expiresAt time.Time
}

// isExpired verifica si el item ha expirado
func (item *cacheItem) isExpired(now time.Time) bool {
	return !item.expiresAt.IsZero() && now.After(item.expiresAt)
}

// MemoryStore implementa Store usando memoria local
type MemoryStore struct {
	items map[string]*cacheItem
	mu    sync.RWMutex
}

// NewMemoryStore crea una nueva instancia de store en memoria
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]*cacheItem),
	}
}

// Get obtiene un valor del store
func (c *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	item, exists := c.items[key]
	c.mu.RUnlock()

	if !exists {
		return "", ErrKeyNotFound
	}

	if item.isExpired(time.Now()) {
		// Eliminar clave expirada para evitar fuga de memoria
		_ = c.Delete(ctx, key)
		return "", ErrKeyExpired
	}

	return item.value, nil
}

// Set almacena un valor con TTL; ttl <= 0 no expira
func (c *MemoryStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	c.cleanupLocked(now)

	item := &cacheItem{value: value}
	if ttl > 0 {
		item.expiresAt = now.Add(ttl)
	}
	c.items[key] = item

	return nil
}

// Delete elimina un valor del store
func (c *MemoryStore) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}

// Ping siempre tiene éxito para el store en memoria
func (c *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close libera todas las entradas
func (c *MemoryStore) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*cacheItem)
	return nil
}

// Size retorna el número de elementos en el store (método auxiliar para debugging)
func (c *MemoryStore) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// cleanupLocked elimina elementos expirados; requiere el lock tomado
func (c *MemoryStore) cleanupLocked(now time.Time) {
	for key, item := range c.items {
		if item.isExpired(now) {
			delete(c.items, key)
		}
	}
}
