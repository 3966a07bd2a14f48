// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/forkfeed/config.yaml",
	"/etc/forkfeed/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvPathEnvVar overrides the .env file path.
const DotEnvPathEnvVar = "DOTENV_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Storage: StorageConfig{
			Driver:           StorageMemory,
			BadgerPath:       "/data/forkfeed",
			BadgerGCInterval: 10 * time.Minute,
		},
		Graph: GraphConfig{
			Driver:        DriverStore,
			Neo4jURI:      "neo4j://localhost:7687",
			Neo4jUsername: "neo4j",
			Neo4jDatabase: "neo4j",
		},
		Posts: PostsConfig{
			Driver:           DriverStore,
			PostgresMaxConns: 10,
		},
		Cache: CacheConfig{
			Driver:          CacheMemory,
			DefaultTTL:      time.Hour,
			LRUCapacity:     10000,
			CleanupInterval: 5 * time.Minute,
			RedisPrefix:     "forkfeed:",
			BreakerFailures: 5,
			BreakerTimeout:  30 * time.Second,
		},
		Recommend: RecommendConfig{
			Limit:        5,
			CacheTTL:     time.Hour,
			WarmMaxUsers: 1000,
		},
		Feed: FeedConfig{
			TrendingTagsLimit: 5,
		},
		Events: EventsConfig{
			Enabled:            true,
			Buffer:             64,
			RetryMax:           3,
			RetryInitialDelay:  100 * time.Millisecond,
			RouterCloseTimeout: 10 * time.Second,
		},
		API: APIConfig{
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
		},
	}
}

// LoadWithKoanf loads configuration with layered sources:
//  1. Defaults
//  2. Optional YAML config file
//  3. Environment variables (a .env file, if present, is loaded into the environment first)
//
// The result is validated before it is returned.
func LoadWithKoanf() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// HTTP_PORT -> server.port, RECOMMEND_SEED -> recommend.seed
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv loads DOTENV_PATH or ./.env when present. Existing environment
// variables win over the file.
func loadDotEnv() error {
	path := os.Getenv(DotEnvPathEnvVar)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set from env.
var sliceConfigPaths = []string{
	"api.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Storage
	"storage_driver":     "storage.driver",
	"badger_path":        "storage.badger_path",
	"badger_gc_interval": "storage.badger_gc_interval",
	"badger_in_memory":   "storage.badger_in_memory",

	// Graph
	"graph_driver":   "graph.driver",
	"neo4j_uri":      "graph.neo4j_uri",
	"neo4j_username": "graph.neo4j_username",
	"neo4j_password": "graph.neo4j_password",
	"neo4j_database": "graph.neo4j_database",

	// Posts
	"posts_driver":       "posts.driver",
	"postgres_dsn":       "posts.postgres_dsn",
	"database_url":       "posts.postgres_dsn",
	"postgres_max_conns": "posts.postgres_max_conns",

	// Cache
	"cache_driver":           "cache.driver",
	"cache_default_ttl":      "cache.default_ttl",
	"cache_lru_capacity":     "cache.lru_capacity",
	"cache_cleanup_interval": "cache.cleanup_interval",
	"redis_url":              "cache.redis_url",
	"redis_prefix":           "cache.redis_prefix",
	"cache_breaker_failures": "cache.breaker_failures",
	"cache_breaker_timeout":  "cache.breaker_timeout",

	// Recommendation engine
	"recommend_limit":            "recommend.limit",
	"recommend_cache_ttl":        "recommend.cache_ttl",
	"recommend_seed":             "recommend.seed",
	"recommend_exclude_followed": "recommend.exclude_followed",
	"recommend_warm_interval":    "recommend.warm_interval",
	"recommend_warm_max_users":   "recommend.warm_max_users",

	// Feed
	"feed_trending_tags_limit": "feed.trending_tags_limit",

	// Events
	"events_enabled":              "events.enabled",
	"events_buffer":               "events.buffer",
	"events_retry_max":            "events.retry_max",
	"events_retry_initial_delay":  "events.retry_initial_delay",
	"events_router_close_timeout": "events.router_close_timeout",

	// API
	"cors_origins":        "api.cors_origins",
	"rate_limit_requests": "api.rate_limit_requests",
	"rate_limit_window":   "api.rate_limit_window",
	"disable_rate_limit":  "api.rate_limit_disabled",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
