// Package cachemanager provides the in-process caches used on the navigation
// hot path.
package cachemanager

import "time"

// CacheManager is a typed key/value cache with per-entry TTL.
type CacheManager[K ~string, V any] interface {
	Get(key K) (V, bool)
	GetWithRefresh(key K, ttl time.Duration) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Delete(keys ...K)
	Flush()
	Len() int
}
