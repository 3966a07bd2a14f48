// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package config

import (
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"badger without path", func(c *Config) {
			c.Storage.Driver = StorageBadger
			c.Storage.BadgerPath = ""
		}, true},
		{"badger in memory", func(c *Config) {
			c.Storage.Driver = StorageBadger
			c.Storage.BadgerPath = ""
			c.Storage.BadgerInMemory = true
		}, false},
		{"neo4j valid", func(c *Config) {
			c.Graph.Driver = DriverNeo4j
			c.Graph.Neo4jURI = "bolt://graph:7687"
		}, false},
		{"neo4j bad scheme", func(c *Config) {
			c.Graph.Driver = DriverNeo4j
			c.Graph.Neo4jURI = "http://graph:7474"
		}, true},
		{"postgres without dsn", func(c *Config) { c.Posts.Driver = DriverPostgres }, true},
		{"postgres valid", func(c *Config) {
			c.Posts.Driver = DriverPostgres
			c.Posts.PostgresDSN = "postgres://u:p@db:5432/forkfeed"
		}, false},
		{"redis without url", func(c *Config) { c.Cache.Driver = CacheRedis }, true},
		{"redis valid", func(c *Config) {
			c.Cache.Driver = CacheRedis
			c.Cache.RedisURL = "redis://cache:6379/0"
		}, false},
		{"lru zero capacity", func(c *Config) {
			c.Cache.Driver = CacheLRU
			c.Cache.LRUCapacity = 0
		}, true},
		{"unknown cache", func(c *Config) { c.Cache.Driver = "memcached" }, true},
		{"recommend limit zero", func(c *Config) { c.Recommend.Limit = 0 }, true},
		{"recommend ttl zero", func(c *Config) { c.Recommend.CacheTTL = 0 }, true},
		{"warm interval negative", func(c *Config) { c.Recommend.WarmInterval = -time.Second }, true},
		{"warming without user cap", func(c *Config) { c.Recommend.WarmInterval = time.Minute; c.Recommend.WarmMaxUsers = 0 }, true},
		{"warming enabled", func(c *Config) { c.Recommend.WarmInterval = time.Minute }, false},
		{"rate limit zero", func(c *Config) { c.API.RateLimitRequests = 0 }, true},
		{"rate limit disabled", func(c *Config) {
			c.API.RateLimitRequests = 0
			c.API.RateLimitDisabled = true
		}, false},
		{"negative event retry", func(c *Config) { c.Events.RetryMax = -1 }, true},
		{"zero shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }, true},
		{"negative window", func(c *Config) { c.API.RateLimitWindow = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestServerConfigAddr(t *testing.T) {
	t.Parallel()

	s := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := s.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q", got)
	}
}
