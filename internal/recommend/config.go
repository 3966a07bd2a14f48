// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package recommend

import (
	"fmt"
	"time"
)

const (
	// DefaultLimit is the maximum suggestion list length.
	DefaultLimit = 5

	// DefaultCacheTTL is how long a computed list is served from cache.
	DefaultCacheTTL = time.Hour
)

// Config contains the recommendation engine settings.
type Config struct {
	// Limit is the maximum number of suggested users.
	Limit int `json:"limit"`

	// CacheTTL is the lifetime of a cached suggestion list.
	CacheTTL time.Duration `json:"cache_ttl"`

	// Seed seeds the padding sampler. Zero seeds from the clock.
	Seed int64 `json:"seed"`

	// ExcludeFollowed drops users the viewer already follows.
	ExcludeFollowed bool `json:"exclude_followed"`
}

// DefaultConfig returns a Config with the default limit and TTL.
func DefaultConfig() *Config {
	return &Config{
		Limit:    DefaultLimit,
		CacheTTL: DefaultCacheTTL,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Limit < 1 {
		return fmt.Errorf("limit must be at least 1, got %d", c.Limit)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive, got %s", c.CacheTTL)
	}
	return nil
}
