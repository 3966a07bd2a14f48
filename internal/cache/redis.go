// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/forkfeed/internal/logging"
	"github.com/tomtom215/forkfeed/internal/metrics"
)

// RedisConfig holds settings for RedisCache.
type RedisConfig struct {
	// URL is a redis:// or rediss:// connection URL
	URL string

	// Prefix is prepended to every key so several deployments can share a server
	Prefix string

	// DefaultTTL is used by Set
	DefaultTTL time.Duration

	// OpTimeout bounds each Redis round trip
	OpTimeout time.Duration

	// BreakerFailures is the number of consecutive failures that opens the breaker
	BreakerFailures uint32

	// BreakerTimeout is how long the breaker stays open before probing again
	BreakerTimeout time.Duration
}

// RedisCache is a Cacher backed by Redis.
//
// Values are JSON-encoded on Set and returned as Raw from Get; use GetAs to
// decode them. Every call runs through a circuit breaker: when Redis is down
// the breaker opens and reads degrade to misses instead of erroring, which
// keeps the suggestion path available.
type RedisCache struct {
	client    *redis.Client
	prefix    string
	ttl       time.Duration
	opTimeout time.Duration
	breaker   *gobreaker.CircuitBreaker[[]byte]
	stats     Stats
}

// NewRedisCache parses cfg.URL and creates the client. It does not ping;
// an unreachable server shows up as breaker failures.
func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	if cfg.URL == "" {
		return nil, errors.New("redis url is required")
	}
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisCacheWithClient(redis.NewClient(opt), cfg), nil
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client *redis.Client, cfg RedisConfig) *RedisCache {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = time.Hour
	}
	if cfg.OpTimeout <= 0 {
		cfg.OpTimeout = 500 * time.Millisecond
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}

	name := "redis-cache"
	metrics.CacheBreakerState.WithLabelValues(name).Set(0)

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		IsSuccessful: func(err error) bool {
			// A cache miss is not a failure.
			return err == nil || errors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Cache circuit breaker state change")
			metrics.CacheBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
		},
	})

	return &RedisCache{
		client:    client,
		prefix:    cfg.Prefix,
		ttl:       cfg.DefaultTTL,
		opTimeout: cfg.OpTimeout,
		breaker:   breaker,
	}
}

// Get returns the stored JSON as Raw, or a miss on absence or any Redis error.
func (r *RedisCache) Get(key string) (interface{}, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), r.opTimeout)
	defer cancel()

	data, err := r.breaker.Execute(func() ([]byte, error) {
		return r.client.Get(ctx, r.prefix+key).Bytes()
	})
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.Debug().Err(err).Str("key", key).Msg("Redis cache read failed")
		}
		r.stats.recordMiss()
		return nil, false
	}

	r.stats.recordHit()
	return Raw(data), true
}

// Set stores value with the default TTL.
func (r *RedisCache) Set(key string, value interface{}) {
	r.SetWithTTL(key, value, r.ttl)
}

// SetWithTTL JSON-encodes value and stores it. Failures are logged and dropped.
func (r *RedisCache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	var data []byte
	if raw, ok := value.(Raw); ok {
		data = raw
	} else {
		encoded, err := json.Marshal(value)
		if err != nil {
			logging.Warn().Err(err).Str("key", key).Msg("Cache value is not JSON-encodable")
			return
		}
		data = encoded
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.opTimeout)
	defer cancel()

	_, err := r.breaker.Execute(func() ([]byte, error) {
		return nil, r.client.Set(ctx, r.prefix+key, data, ttl).Err()
	})
	if err != nil {
		logging.Debug().Err(err).Str("key", key).Msg("Redis cache write failed")
	}
}

// Delete removes key.
func (r *RedisCache) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), r.opTimeout)
	defer cancel()

	_, err := r.breaker.Execute(func() ([]byte, error) {
		return nil, r.client.Del(ctx, r.prefix+key).Err()
	})
	if err != nil {
		logging.Debug().Err(err).Str("key", key).Msg("Redis cache delete failed")
		return
	}
	r.stats.recordEvictions(1)
}

// Clear deletes every key under the configured prefix using SCAN.
// With an empty prefix it only clears keys this process can see, so set a prefix in shared deployments.
func (r *RedisCache) Clear() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*r.opTimeout)
	defer cancel()

	var (
		cursor  uint64
		removed int64
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+"*", 500).Result()
		if err != nil {
			logging.Warn().Err(err).Msg("Redis cache clear failed")
			break
		}
		if len(keys) > 0 {
			n, err := r.client.Del(ctx, keys...).Result()
			if err != nil {
				logging.Warn().Err(err).Msg("Redis cache clear failed")
				break
			}
			removed += n
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	r.stats.recordEvictions(removed)
}

// GetStats returns hit/miss counters for this process.
func (r *RedisCache) GetStats() Stats {
	return r.stats.snapshot()
}

// HitRate returns the hit rate as a percentage.
func (r *RedisCache) HitRate() float64 {
	s := r.GetStats()
	return s.hitRate()
}

// BreakerState reports the circuit breaker state ("closed", "half-open", "open").
func (r *RedisCache) BreakerState() string {
	return r.breaker.State().String()
}

// Ping checks connectivity without going through the breaker.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (r *RedisCache) Close() error {
	return r.client.Close()
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
