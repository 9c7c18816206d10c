package cachemanager

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/spherenav/internal/log"
)

const DefaultExpiration = 10 * time.Minute
const DefaultCleanupInterval = 30 * time.Minute

// NoExpiration keeps an entry until it is deleted or flushed.
const NoExpiration = gocache.NoExpiration

// InMemoryCacheManager is a CacheManager backed by go-cache.
type InMemoryCacheManager[K ~string, V any] struct {
	useCase string
	cache   *gocache.Cache
}

// NewInMemoryCacheManager creates an in-memory cache. useCase only labels log lines.
func NewInMemoryCacheManager[K ~string, V any](useCase string, defaultExpiration, cleanupInterval time.Duration) *InMemoryCacheManager[K, V] {
	return &InMemoryCacheManager[K, V]{
		useCase: useCase,
		cache:   gocache.New(defaultExpiration, cleanupInterval),
	}
}

var _ CacheManager[string, int] = (*InMemoryCacheManager[string, int])(nil)

// Get retrieves an item by key.
func (c *InMemoryCacheManager[K, V]) Get(key K) (V, bool) {
	var zero V

	value, found := c.cache.Get(string(key))
	if !found {
		return zero, false
	}

	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type assertion when getting value", "cache", c.useCase, "key", key)
		return zero, false
	}
	return v, true
}

// GetWithRefresh retrieves an item and, on a hit, extends its TTL.
func (c *InMemoryCacheManager[K, V]) GetWithRefresh(key K, ttl time.Duration) (V, bool) {
	value, found := c.Get(key)
	if found {
		c.Set(key, value, ttl)
	}
	return value, found
}

// Set stores value under key for ttl.
func (c *InMemoryCacheManager[K, V]) Set(key K, value V, ttl time.Duration) {
	c.cache.Set(string(key), value, ttl)
}

// Delete removes the given keys.
func (c *InMemoryCacheManager[K, V]) Delete(keys ...K) {
	for _, key := range keys {
		c.cache.Delete(string(key))
	}
}

// Flush removes every entry.
func (c *InMemoryCacheManager[K, V]) Flush() {
	c.cache.Flush()
	log.Debug(log.CatCache, "cache flushed", "cache", c.useCase)
}

// Len returns the number of entries, including expired ones not yet cleaned up.
func (c *InMemoryCacheManager[K, V]) Len() int {
	return c.cache.ItemCount()
}
