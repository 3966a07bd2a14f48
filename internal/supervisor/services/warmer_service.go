// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// SuggestionEngine computes and caches follow suggestions for one viewer.
// Satisfied by *recommend.Engine.
type SuggestionEngine interface {
	SuggestUsers(ctx context.Context, viewer string) ([]string, error)
}

// UserLister enumerates known users. Satisfied by every store.UserStore.
type UserLister interface {
	ListUserIDs(ctx context.Context) ([]string, error)
}

// WarmerConfig controls the suggestion warmer.
type WarmerConfig struct {
	// Interval between warm passes. Defaults to one hour.
	Interval time.Duration

	// WarmOnStartup runs a pass before the first tick.
	WarmOnStartup bool

	// MaxUsers caps how many users one pass touches. 0 means no cap.
	MaxUsers int
}

// SuggestionWarmer periodically asks the engine for every user's
// suggestions so the first feed request after a cache expiry is served
// from cache.
type SuggestionWarmer struct {
	engine SuggestionEngine
	users  UserLister
	config WarmerConfig
	logger zerolog.Logger
	name   string
}

// NewSuggestionWarmer creates a warmer over engine and users.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSuggestionWarmer(engine SuggestionEngine, users UserLister, cfg WarmerConfig, logger zerolog.Logger) *SuggestionWarmer {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	return &SuggestionWarmer{
		engine: engine,
		users:  users,
		config: cfg,
		logger: logger.With().Str("service", "suggestion-warmer").Logger(),
		name:   "suggestion-warmer",
	}
}

// Serve implements suture.Service.
func (s *SuggestionWarmer) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("warm_on_startup", s.config.WarmOnStartup).
		Dur("interval", s.config.Interval).
		Int("max_users", s.config.MaxUsers).
		Msg("suggestion warmer starting")

	if s.config.WarmOnStartup {
		if _, err := s.WarmOnce(ctx); err != nil && ctx.Err() == nil {
			s.logger.Warn().Err(err).Msg("initial warm failed (will retry on schedule)")
		}
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("suggestion warmer shutting down")
			return ctx.Err()

		case <-ticker.C:
			if _, err := s.WarmOnce(ctx); err != nil && ctx.Err() == nil {
				s.logger.Warn().Err(err).Msg("scheduled warm failed")
			}
		}
	}
}

// WarmOnce runs one pass and returns how many users were warmed.
// A failure for one user is logged and skipped; only a listing failure
// or cancellation aborts the pass.
func (s *SuggestionWarmer) WarmOnce(ctx context.Context) (int, error) {
	start := time.Now()

	ids, err := s.users.ListUserIDs(ctx)
	if err != nil {
		return 0, err
	}
	if s.config.MaxUsers > 0 && len(ids) > s.config.MaxUsers {
		ids = ids[:s.config.MaxUsers]
	}

	warmed := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return warmed, err
		}
		if _, err := s.engine.SuggestUsers(ctx, id); err != nil {
			s.logger.Debug().Err(err).Str("user_id", id).Msg("warm skipped user")
			continue
		}
		warmed++
	}

	s.logger.Debug().
		Int("warmed", warmed).
		Dur("duration", time.Since(start)).
		Msg("suggestion warm pass complete")
	return warmed, nil
}

// String implements fmt.Stringer for suture event logs.
func (s *SuggestionWarmer) String() string {
	return s.name
}
