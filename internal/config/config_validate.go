// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/forkfeed/internal/logging"
)

// Validate checks the configuration for invalid or inconsistent values.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateGraph(); err != nil {
		return err
	}
	if err := c.validatePosts(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateEvents(); err != nil {
		return err
	}
	return c.validateAPI()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be 'json' or 'console', got %q", c.Logging.Format)
	}
}

func (c *Config) validateStorage() error {
	switch c.Storage.Driver {
	case StorageMemory:
		return nil
	case StorageBadger:
		if c.Storage.BadgerPath == "" && !c.Storage.BadgerInMemory {
			return fmt.Errorf("BADGER_PATH is required when STORAGE_DRIVER=badger")
		}
		if c.Storage.BadgerGCInterval <= 0 {
			return fmt.Errorf("BADGER_GC_INTERVAL must be positive, got %v", c.Storage.BadgerGCInterval)
		}
		return nil
	default:
		return fmt.Errorf("STORAGE_DRIVER must be 'memory' or 'badger', got %q", c.Storage.Driver)
	}
}

func (c *Config) validateGraph() error {
	switch c.Graph.Driver {
	case DriverStore:
		return nil
	case DriverNeo4j:
		u, err := url.Parse(c.Graph.Neo4jURI)
		if err != nil || u.Host == "" {
			return fmt.Errorf("NEO4J_URI %q is not a valid URI", c.Graph.Neo4jURI)
		}
		switch u.Scheme {
		case "neo4j", "neo4j+s", "neo4j+ssc", "bolt", "bolt+s", "bolt+ssc":
		default:
			return fmt.Errorf("NEO4J_URI scheme %q is not supported", u.Scheme)
		}
		return nil
	default:
		return fmt.Errorf("GRAPH_DRIVER must be 'store' or 'neo4j', got %q", c.Graph.Driver)
	}
}

func (c *Config) validatePosts() error {
	switch c.Posts.Driver {
	case DriverStore:
		return nil
	case DriverPostgres:
		if c.Posts.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required when POSTS_DRIVER=postgres")
		}
		if c.Posts.PostgresMaxConns < 1 {
			return fmt.Errorf("POSTGRES_MAX_CONNS must be at least 1, got %d", c.Posts.PostgresMaxConns)
		}
		return nil
	default:
		return fmt.Errorf("POSTS_DRIVER must be 'store' or 'postgres', got %q", c.Posts.Driver)
	}
}

func (c *Config) validateCache() error {
	if c.Cache.DefaultTTL <= 0 {
		return fmt.Errorf("CACHE_DEFAULT_TTL must be positive, got %v", c.Cache.DefaultTTL)
	}
	switch c.Cache.Driver {
	case CacheMemory:
		return nil
	case CacheLRU:
		if c.Cache.LRUCapacity < 1 {
			return fmt.Errorf("CACHE_LRU_CAPACITY must be at least 1, got %d", c.Cache.LRUCapacity)
		}
		return nil
	case CacheRedis:
		if !strings.HasPrefix(c.Cache.RedisURL, "redis://") && !strings.HasPrefix(c.Cache.RedisURL, "rediss://") {
			return fmt.Errorf("REDIS_URL must start with redis:// or rediss:// when CACHE_DRIVER=redis")
		}
		if c.Cache.BreakerFailures == 0 {
			return fmt.Errorf("CACHE_BREAKER_FAILURES must be at least 1")
		}
		return nil
	default:
		return fmt.Errorf("CACHE_DRIVER must be 'memory', 'lru' or 'redis', got %q", c.Cache.Driver)
	}
}

func (c *Config) validateRecommend() error {
	if c.Recommend.Limit < 1 || c.Recommend.Limit > 100 {
		return fmt.Errorf("RECOMMEND_LIMIT must be between 1 and 100, got %d", c.Recommend.Limit)
	}
	if c.Recommend.CacheTTL <= 0 {
		return fmt.Errorf("RECOMMEND_CACHE_TTL must be positive, got %v", c.Recommend.CacheTTL)
	}
	if c.Recommend.WarmInterval < 0 {
		return fmt.Errorf("RECOMMEND_WARM_INTERVAL must not be negative, got %v", c.Recommend.WarmInterval)
	}
	if c.Recommend.WarmInterval > 0 && c.Recommend.WarmMaxUsers < 1 {
		return fmt.Errorf("RECOMMEND_WARM_MAX_USERS must be at least 1 when warming, got %d", c.Recommend.WarmMaxUsers)
	}
	return nil
}

func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}
	if c.Events.Buffer < 0 {
		return fmt.Errorf("EVENTS_BUFFER must not be negative, got %d", c.Events.Buffer)
	}
	if c.Events.RetryMax < 0 {
		return fmt.Errorf("EVENTS_RETRY_MAX must not be negative, got %d", c.Events.RetryMax)
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.RateLimitDisabled {
		return nil
	}
	if c.API.RateLimitRequests < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.API.RateLimitRequests)
	}
	if c.API.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.API.RateLimitWindow)
	}
	return nil
}
