// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package recommend

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/forkfeed/internal/cache"
	"github.com/tomtom215/forkfeed/internal/metrics"
	"github.com/tomtom215/forkfeed/internal/store"
)

// CacheKeyPrefix prefixes every cached suggestion list.
const CacheKeyPrefix = "suggestions:"

// CacheKey returns the cache key holding viewer's suggestions.
func CacheKey(viewer string) string {
	return CacheKeyPrefix + viewer
}

// Engine computes "users you may want to follow" lists.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	graph  store.GraphStore
	cache  cache.Cacher
	logger zerolog.Logger

	// Random source for padding (protected by rngMu for concurrent access)
	rng   *rand.Rand
	rngMu sync.Mutex

	// Concurrent misses for one viewer share a single computation.
	inflight singleflight.Group
}

// Candidate is a user with a positive mutual-follow overlap.
type Candidate struct {
	UserID string
	Mutual int
}

// NewEngine creates a recommendation engine reading graph and caching in c.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, graph store.GraphStore, c cache.Cacher, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if graph == nil || c == nil {
		return nil, fmt.Errorf("recommend: graph store and cache are required")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Engine{
		config: cfg,
		graph:  graph,
		cache:  c,
		logger: logger.With().Str("component", "recommend").Logger(),
		rng:    rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for suggestion padding
	}, nil
}

// SuggestUsers returns up to Limit user ids for viewer.
//
// A cached list is returned verbatim. Otherwise candidates are ranked by
// mutual-follow overlap (descending, then id ascending), the top Limit are
// kept, and any free slots are padded with a uniform random sample of the
// remaining users. The viewer is never included.
func (e *Engine) SuggestUsers(ctx context.Context, viewer string) ([]string, error) {
	key := CacheKey(viewer)
	if ids, ok := cache.GetAs[[]string](e.cache, key); ok {
		metrics.RecordSuggestion(true, 0, 0)
		return append([]string(nil), ids...), nil
	}

	// The shared computation outlives any one caller; each caller still
	// stops waiting when its own ctx ends.
	ch := e.inflight.DoChan(viewer, func() (interface{}, error) {
		return e.compute(context.WithoutCancel(ctx), viewer)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return append([]string(nil), res.Val.([]string)...), nil
	}
}

func (e *Engine) compute(ctx context.Context, viewer string) ([]string, error) {
	start := time.Now()

	if _, err := e.graph.GetUser(ctx, viewer); err != nil {
		return nil, err
	}
	following, err := e.graph.Following(ctx, viewer)
	if err != nil {
		return nil, fmt.Errorf("load following: %w", err)
	}
	all, err := e.graph.ListUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	counts, err := e.MutualCounts(ctx, viewer, following, all)
	if err != nil {
		return nil, err
	}

	excluded := map[string]struct{}{viewer: {}}
	if e.config.ExcludeFollowed {
		for _, f := range following {
			excluded[f] = struct{}{}
		}
	}

	ranked := Rank(counts, excluded)
	if len(ranked) > e.config.Limit {
		ranked = ranked[:e.config.Limit]
	}

	result := make([]string, 0, e.config.Limit)
	for _, c := range ranked {
		result = append(result, c.UserID)
		excluded[c.UserID] = struct{}{}
	}

	pool := make([]string, 0, len(all))
	for _, id := range all {
		if _, skip := excluded[id]; !skip {
			pool = append(pool, id)
		}
	}
	padding := e.sample(pool, e.config.Limit-len(result))
	result = append(result, padding...)

	e.cache.SetWithTTL(CacheKey(viewer), append([]string(nil), result...), e.config.CacheTTL)

	elapsed := time.Since(start)
	metrics.RecordSuggestion(false, elapsed, len(padding))
	e.logger.Debug().
		Str("viewer_id", viewer).
		Int("ranked", len(ranked)).
		Int("padded", len(padding)).
		Dur("duration", elapsed).
		Msg("Computed suggestions")

	return result, nil
}

// MutualCounts returns |following(viewer) ∩ following(U)| for every user U
// other than viewer with a positive overlap. Graph stores implementing
// store.CoFollowCounter answer from their follower index; otherwise every
// user in all is scanned.
func (e *Engine) MutualCounts(ctx context.Context, viewer string, following, all []string) (map[string]int, error) {
	if cf, ok := e.graph.(store.CoFollowCounter); ok {
		counts, err := cf.CoFollowCounts(ctx, viewer)
		if err != nil {
			return nil, fmt.Errorf("co-follow counts: %w", err)
		}
		return counts, nil
	}

	mine := make(map[string]struct{}, len(following))
	for _, f := range following {
		mine[f] = struct{}{}
	}
	counts := make(map[string]int)
	if len(mine) == 0 {
		return counts, nil
	}
	for _, u := range all {
		if u == viewer {
			continue
		}
		theirs, err := e.graph.Following(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("load following of %s: %w", u, err)
		}
		n := 0
		for _, f := range theirs {
			if _, ok := mine[f]; ok {
				n++
			}
		}
		if n > 0 {
			counts[u] = n
		}
	}
	return counts, nil
}

// Rank orders candidates with a positive count by count descending, then
// user id ascending, skipping excluded ids.
func Rank(counts map[string]int, excluded map[string]struct{}) []Candidate {
	out := make([]Candidate, 0, len(counts))
	for id, n := range counts {
		if n <= 0 {
			continue
		}
		if _, skip := excluded[id]; skip {
			continue
		}
		out = append(out, Candidate{UserID: id, Mutual: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mutual != out[j].Mutual {
			return out[i].Mutual > out[j].Mutual
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

// sample draws k ids uniformly without replacement using a partial
// Fisher-Yates shuffle. pool is reordered.
func (e *Engine) sample(pool []string, k int) []string {
	if k <= 0 || len(pool) == 0 {
		return nil
	}
	if k > len(pool) {
		k = len(pool)
	}

	e.rngMu.Lock()
	for i := 0; i < k; i++ {
		j := i + e.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	e.rngMu.Unlock()

	return append([]string(nil), pool[:k]...)
}
