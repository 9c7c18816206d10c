package cachemanager

import "time"

// ReadThroughCache computes missing values with fn and stores only successful
// results, so misses on bad input never occupy the cache.
type ReadThroughCache[K ~string, V any] struct {
	cache CacheManager[K, V]
	fn    func(key K) (V, bool)
	ttl   time.Duration
}

// NewReadThroughCache wraps cache with the loader fn.
// A nil cache disables caching and calls fn every time.
func NewReadThroughCache[K ~string, V any](cache CacheManager[K, V], ttl time.Duration, fn func(key K) (V, bool)) *ReadThroughCache[K, V] {
	return &ReadThroughCache[K, V]{cache: cache, fn: fn, ttl: ttl}
}

// Get returns the cached value or loads it. hit reports whether the cache
// answered without calling fn.
func (r *ReadThroughCache[K, V]) Get(key K) (value V, ok bool, hit bool) {
	if r.cache != nil {
		if v, found := r.cache.GetWithRefresh(key, r.ttl); found {
			return v, true, true
		}
	}

	value, ok = r.fn(key)
	if ok && r.cache != nil {
		r.cache.Set(key, value, r.ttl)
	}
	return value, ok, false
}
