// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points config discovery at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	t.Setenv(DotEnvPathEnvVar, filepath.Join(dir, "missing.env"))
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.Driver != StorageMemory {
		t.Errorf("Storage.Driver = %q, want memory", cfg.Storage.Driver)
	}
	if cfg.Recommend.Limit != 5 {
		t.Errorf("Recommend.Limit = %d, want 5", cfg.Recommend.Limit)
	}
	if cfg.Recommend.CacheTTL != time.Hour {
		t.Errorf("Recommend.CacheTTL = %v, want 1h", cfg.Recommend.CacheTTL)
	}
	if cfg.Recommend.ExcludeFollowed {
		t.Error("Recommend.ExcludeFollowed should default to false")
	}
	if cfg.Recommend.Seed != 0 {
		t.Errorf("Recommend.Seed = %d, want 0", cfg.Recommend.Seed)
	}
	if cfg.Feed.TrendingTagsLimit != 5 {
		t.Errorf("Feed.TrendingTagsLimit = %d, want 5", cfg.Feed.TrendingTagsLimit)
	}
	if !cfg.Events.Enabled || cfg.Events.Buffer != 64 {
		t.Errorf("Events = %+v, want enabled with buffer 64", cfg.Events)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadWithKoanf_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if len(cfg.API.CORSOrigins) != 1 || cfg.API.CORSOrigins[0] != "*" {
		t.Errorf("API.CORSOrigins = %v, want [*]", cfg.API.CORSOrigins)
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("RECOMMEND_CACHE_TTL", "30m")
	t.Setenv("RECOMMEND_SEED", "42")
	t.Setenv("RECOMMEND_EXCLUDE_FOLLOWED", "true")
	t.Setenv("RECOMMEND_WARM_INTERVAL", "15m")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CACHE_DRIVER", "lru")
	t.Setenv("CACHE_LRU_CAPACITY", "50")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Recommend.CacheTTL != 30*time.Minute {
		t.Errorf("Recommend.CacheTTL = %v, want 30m", cfg.Recommend.CacheTTL)
	}
	if cfg.Recommend.Seed != 42 {
		t.Errorf("Recommend.Seed = %d, want 42", cfg.Recommend.Seed)
	}
	if !cfg.Recommend.ExcludeFollowed {
		t.Error("Recommend.ExcludeFollowed should be true")
	}
	if cfg.Recommend.WarmInterval != 15*time.Minute || cfg.Recommend.WarmMaxUsers != 1000 {
		t.Errorf("warmer = %v/%d, want 15m/1000", cfg.Recommend.WarmInterval, cfg.Recommend.WarmMaxUsers)
	}
	if len(cfg.API.CORSOrigins) != 2 || cfg.API.CORSOrigins[1] != "https://b.example" {
		t.Errorf("API.CORSOrigins = %v", cfg.API.CORSOrigins)
	}
	if cfg.Cache.Driver != CacheLRU || cfg.Cache.LRUCapacity != 50 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
}

func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 7070
storage:
  driver: badger
  badger_path: /tmp/forkfeed-test
feed:
  trending_tags_limit: 3
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Storage.Driver != StorageBadger || cfg.Storage.BadgerPath != "/tmp/forkfeed-test" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if cfg.Feed.TrendingTagsLimit != 3 {
		t.Errorf("Feed.TrendingTagsLimit = %d, want 3", cfg.Feed.TrendingTagsLimit)
	}
	// Untouched sections keep defaults
	if cfg.Recommend.Limit != 5 {
		t.Errorf("Recommend.Limit = %d, want 5", cfg.Recommend.Limit)
	}
}

func TestLoadWithKoanf_EnvBeatsFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7070\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "6060")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 6060 {
		t.Errorf("Server.Port = %d, want 6060", cfg.Server.Port)
	}
}

func TestLoadWithKoanf_DotEnv(t *testing.T) {
	dir := isolate(t)
	envPath := filepath.Join(dir, "test.env")
	if err := os.WriteFile(envPath, []byte("FEED_TRENDING_TAGS_LIMIT=8\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(DotEnvPathEnvVar, envPath)
	// godotenv sets the variable process-wide; clear it afterwards.
	t.Cleanup(func() { os.Unsetenv("FEED_TRENDING_TAGS_LIMIT") })

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Feed.TrendingTagsLimit != 8 {
		t.Errorf("Feed.TrendingTagsLimit = %d, want 8", cfg.Feed.TrendingTagsLimit)
	}
}

func TestLoadWithKoanf_InvalidValue(t *testing.T) {
	isolate(t)
	t.Setenv("STORAGE_DRIVER", "sqlite")

	if _, err := LoadWithKoanf(); err == nil {
		t.Error("expected validation error for unknown storage driver")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"REDIS_URL", "cache.redis_url"},
		{"DATABASE_URL", "posts.postgres_dsn"},
		{"NEO4J_URI", "graph.neo4j_uri"},
		{"RECOMMEND_EXCLUDE_FOLLOWED", "recommend.exclude_followed"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
