// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
// Values are layered: struct defaults, then an optional YAML file, then environment variables.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Storage   StorageConfig   `koanf:"storage"`
	Graph     GraphConfig     `koanf:"graph"`
	Posts     PostsConfig     `koanf:"posts"`
	Cache     CacheConfig     `koanf:"cache"`
	Recommend RecommendConfig `koanf:"recommend"`
	Feed      FeedConfig      `koanf:"feed"`
	Events    EventsConfig    `koanf:"events"`
	API       APIConfig       `koanf:"api"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json (production) or console (development).
	Format string `koanf:"format"`

	// Caller adds file:line to every entry.
	Caller bool `koanf:"caller"`
}

// Storage drivers.
const (
	StorageMemory = "memory"
	StorageBadger = "badger"
)

// StorageConfig selects the backend for users, follows, posts, saved items
// and notifications. Graph and Posts may override parts of it.
type StorageConfig struct {
	Driver           string        `koanf:"driver"`
	BadgerPath       string        `koanf:"badger_path"`
	BadgerGCInterval time.Duration `koanf:"badger_gc_interval"`
	BadgerInMemory   bool          `koanf:"badger_in_memory"`
}

// Graph and post drivers. "store" means use the StorageConfig backend.
const (
	DriverStore    = "store"
	DriverNeo4j    = "neo4j"
	DriverPostgres = "postgres"
)

// GraphConfig optionally moves users and follow edges to Neo4j.
type GraphConfig struct {
	Driver        string `koanf:"driver"`
	Neo4jURI      string `koanf:"neo4j_uri"`
	Neo4jUsername string `koanf:"neo4j_username"`
	Neo4jPassword string `koanf:"neo4j_password"`
	Neo4jDatabase string `koanf:"neo4j_database"`
}

// PostsConfig optionally moves posts, likes and comments to PostgreSQL.
type PostsConfig struct {
	Driver           string `koanf:"driver"`
	PostgresDSN      string `koanf:"postgres_dsn"`
	PostgresMaxConns int32  `koanf:"postgres_max_conns"`
}

// Cache drivers.
const (
	CacheMemory = "memory"
	CacheLRU    = "lru"
	CacheRedis  = "redis"
)

// CacheConfig selects the shared cache used for suggestion lists.
type CacheConfig struct {
	Driver          string        `koanf:"driver"`
	DefaultTTL      time.Duration `koanf:"default_ttl"`
	LRUCapacity     int           `koanf:"lru_capacity"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
	RedisURL        string        `koanf:"redis_url"`
	RedisPrefix     string        `koanf:"redis_prefix"`
	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// RecommendConfig tunes the suggested-users engine.
type RecommendConfig struct {
	// Limit is the maximum number of suggestions (default 5).
	Limit int `koanf:"limit"`

	// CacheTTL is how long a computed list is served from cache (default 1h).
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// Seed for the padding sampler. 0 seeds from the clock.
	Seed int64 `koanf:"seed"`

	// ExcludeFollowed drops users the viewer already follows.
	// Off by default to match the historical behaviour.
	ExcludeFollowed bool `koanf:"exclude_followed"`

	// WarmInterval recomputes suggestions for known users in the
	// background. 0 disables the warmer.
	WarmInterval time.Duration `koanf:"warm_interval"`

	// WarmMaxUsers caps how many users one warm pass touches.
	WarmMaxUsers int `koanf:"warm_max_users"`
}

// FeedConfig tunes the feed view.
type FeedConfig struct {
	TrendingTagsLimit int `koanf:"trending_tags_limit"`
}

// EventsConfig controls the in-process notification pipeline.
type EventsConfig struct {
	Enabled            bool          `koanf:"enabled"`
	Buffer             int64         `koanf:"buffer"`
	RetryMax           int           `koanf:"retry_max"`
	RetryInitialDelay  time.Duration `koanf:"retry_initial_delay"`
	RouterCloseTimeout time.Duration `koanf:"router_close_timeout"`
}

// APIConfig holds HTTP surface settings.
type APIConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Load reads configuration from defaults, an optional config file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
