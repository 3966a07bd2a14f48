// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package cache

import (
	"testing"
	"time"
)

func TestNewRedisCache_InvalidURL(t *testing.T) {
	if _, err := NewRedisCache(RedisConfig{}); err == nil {
		t.Error("Expected error for empty URL")
	}
	if _, err := NewRedisCache(RedisConfig{URL: "http://not-redis"}); err == nil {
		t.Error("Expected error for non-redis URL scheme")
	}
}

func TestRedisCache_UnreachableDegradesToMiss(t *testing.T) {
	// Port 1 is never a Redis server; connections are refused immediately.
	c, err := NewRedisCache(RedisConfig{
		URL:             "redis://127.0.0.1:1/0",
		OpTimeout:       200 * time.Millisecond,
		BreakerFailures: 3,
		BreakerTimeout:  time.Minute,
	})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()

	c.SetWithTTL("k", []string{"a"}, time.Minute)

	for i := 0; i < 5; i++ {
		if _, ok := c.Get("k"); ok {
			t.Fatal("Expected miss while Redis is unreachable")
		}
	}

	if state := c.BreakerState(); state != "open" {
		t.Errorf("Expected breaker open after repeated failures, got %q", state)
	}

	stats := c.GetStats()
	if stats.Misses != 5 {
		t.Errorf("Expected 5 misses, got %d", stats.Misses)
	}
}
