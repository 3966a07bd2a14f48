// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package cache

import (
	"fmt"
	"time"
)

// Cacher defines the interface for cache implementations.
// Cache (TTL map), LRUCache (bounded) and RedisCache (shared) implement it,
// so the recommendation engine and feed can switch backends by config.
//
// Usage:
//
//	var c Cacher = New(time.Hour)
//	c.SetWithTTL("suggestions:u1", ids, time.Hour)
//	ids, ok := GetAs[[]string](c, "suggestions:u1")
type Cacher interface {
	// Get retrieves a value from the cache.
	// Returns the value and true if found and not expired.
	Get(key string) (interface{}, bool)

	// Set stores a value in the cache with the default TTL.
	Set(key string, value interface{})

	// SetWithTTL stores a value with a custom TTL.
	SetWithTTL(key string, value interface{}, ttl time.Duration)

	// Delete removes a value from the cache.
	Delete(key string)

	// Clear removes all entries from the cache.
	Clear()

	// GetStats returns cache statistics.
	GetStats() Stats

	// HitRate returns the cache hit rate as a percentage.
	HitRate() float64
}

// CacheType represents the type of cache to create.
type CacheType string

const (
	// CacheTypeTTL is an unbounded TTL map with lazy expiry (default).
	CacheTypeTTL CacheType = "memory"

	// CacheTypeLRU bounds the entry count and evicts the least recently used.
	CacheTypeLRU CacheType = "lru"

	// CacheTypeRedis shares entries across processes through Redis.
	CacheTypeRedis CacheType = "redis"
)

// CacheConfig holds configuration for creating a cache.
type CacheConfig struct {
	// Type specifies the cache implementation (memory, lru or redis)
	Type CacheType

	// TTL is the default time-to-live for cache entries
	TTL time.Duration

	// Capacity is the maximum number of entries (only used for LRU)
	Capacity int

	// Redis holds the settings used when Type is redis
	Redis RedisConfig
}

// NewCacher creates a cache based on the configuration.
//
//	c, err := NewCacher(CacheConfig{Type: CacheTypeLRU, TTL: time.Hour, Capacity: 50000})
func NewCacher(cfg CacheConfig) (Cacher, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}

	switch cfg.Type {
	case CacheTypeLRU:
		return NewLRUCache(cfg.Capacity, cfg.TTL), nil
	case CacheTypeRedis:
		cfg.Redis.DefaultTTL = cfg.TTL
		return NewRedisCache(cfg.Redis)
	case CacheTypeTTL, "":
		return New(cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache type %q", cfg.Type)
	}
}

// Verify interface implementations at compile time
var (
	_ Cacher = (*Cache)(nil)
	_ Cacher = (*LRUCache)(nil)
	_ Cacher = (*RedisCache)(nil)
)
