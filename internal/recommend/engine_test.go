// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/forkfeed/internal/cache"
	"github.com/tomtom215/forkfeed/internal/models"
	"github.com/tomtom215/forkfeed/internal/store"
	"github.com/tomtom215/forkfeed/internal/store/memory"
)

// scanGraph hides the memory store's CoFollowCounter so the engine falls
// back to scanning every user. It also counts Following calls.
type scanGraph struct {
	store.GraphStore
	followingCalls atomic.Int32
}

func (g *scanGraph) Following(ctx context.Context, user string) ([]string, error) {
	g.followingCalls.Add(1)
	return g.GraphStore.Following(ctx, user)
}

// seedGraph creates users and applies edges given as follower -> followed list.
func seedGraph(t *testing.T, users []string, edges map[string][]string) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.New()
	for _, id := range users {
		if err := s.CreateUser(ctx, &models.User{ID: id, Username: id}); err != nil {
			t.Fatalf("CreateUser(%s): %v", id, err)
		}
	}
	for follower, followed := range edges {
		for _, f := range followed {
			if err := s.AddEdge(ctx, follower, f); err != nil {
				t.Fatalf("AddEdge(%s, %s): %v", follower, f, err)
			}
		}
	}
	return s
}

func newTestEngine(t *testing.T, graph store.GraphStore, c cache.Cacher, mutate func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 42
	if mutate != nil {
		mutate(cfg)
	}
	e, err := NewEngine(cfg, graph, c, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestNewEngine(t *testing.T) {
	graph := memory.New()
	c := cache.New(time.Hour)

	if _, err := NewEngine(nil, graph, c, zerolog.Nop()); err != nil {
		t.Errorf("NewEngine(nil config) error = %v", err)
	}
	if _, err := NewEngine(&Config{Limit: 0, CacheTTL: time.Hour}, graph, c, zerolog.Nop()); err == nil {
		t.Error("expected error for zero limit")
	}
	if _, err := NewEngine(DefaultConfig(), nil, c, zerolog.Nop()); err == nil {
		t.Error("expected error for nil graph")
	}
	if _, err := NewEngine(DefaultConfig(), graph, nil, zerolog.Nop()); err == nil {
		t.Error("expected error for nil cache")
	}
}

func TestSuggestUsers_MutualScenario(t *testing.T) {
	users := []string{"A", "B", "C", "D", "E"}
	edges := map[string][]string{
		"A": {"B", "C"},
		"D": {"B", "C"},
	}

	for _, tc := range []struct {
		name  string
		graph func(*memory.Store) store.GraphStore
	}{
		{"indexed", func(s *memory.Store) store.GraphStore { return s }},
		{"scan", func(s *memory.Store) store.GraphStore { return &scanGraph{GraphStore: s} }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := seedGraph(t, users, edges)
			e := newTestEngine(t, tc.graph(s), cache.New(time.Hour), nil)

			got, err := e.SuggestUsers(context.Background(), "A")
			if err != nil {
				t.Fatalf("SuggestUsers: %v", err)
			}

			// D (mutual 2) first, then the three remaining users in random order.
			if len(got) != 4 {
				t.Fatalf("len = %d, want 4 (population exhausted): %v", len(got), got)
			}
			if got[0] != "D" {
				t.Errorf("first suggestion = %q, want D", got[0])
			}
			seen := map[string]bool{}
			for _, id := range got {
				if id == "A" {
					t.Errorf("viewer in suggestions: %v", got)
				}
				if seen[id] {
					t.Errorf("duplicate %q in %v", id, got)
				}
				seen[id] = true
			}
			for _, want := range []string{"B", "C", "E"} {
				if !seen[want] {
					t.Errorf("padding missing %q: %v", want, got)
				}
			}
		})
	}
}

func TestSuggestUsers_RankingAndTieBreak(t *testing.T) {
	users := []string{"v", "a", "b", "c", "d", "e", "f", "g", "x", "y", "z"}
	edges := map[string][]string{
		"v": {"x", "y", "z"},
		"g": {"x", "y", "z"}, // 3
		"c": {"x", "y"},      // 2
		"b": {"y", "z"},      // 2
		"f": {"z"},           // 1
		"a": {"x"},           // 1
		"e": {"x"},           // 1
		"d": {},              // 0
	}
	s := seedGraph(t, users, edges)
	e := newTestEngine(t, s, cache.New(time.Hour), nil)

	got, err := e.SuggestUsers(context.Background(), "v")
	if err != nil {
		t.Fatalf("SuggestUsers: %v", err)
	}
	want := []string{"g", "b", "c", "a", "e"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("SuggestUsers = %v, want %v", got, want)
	}
}

func TestSuggestUsers_NeverExceedsLimitOrIncludesViewer(t *testing.T) {
	users := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		users = append(users, fmt.Sprintf("u%02d", i))
	}
	edges := map[string][]string{}
	for i, u := range users {
		edges[u] = []string{users[(i+1)%len(users)], users[(i+7)%len(users)]}
	}
	s := seedGraph(t, users, edges)
	e := newTestEngine(t, s, cache.New(time.Hour), nil)

	for _, viewer := range users {
		got, err := e.SuggestUsers(context.Background(), viewer)
		if err != nil {
			t.Fatalf("SuggestUsers(%s): %v", viewer, err)
		}
		if len(got) > DefaultLimit {
			t.Errorf("SuggestUsers(%s) returned %d ids", viewer, len(got))
		}
		for _, id := range got {
			if id == viewer {
				t.Errorf("SuggestUsers(%s) contains viewer", viewer)
			}
		}
	}
}

func TestSuggestUsers_AlreadyFollowedPolicy(t *testing.T) {
	users := []string{"v", "a", "b"}
	edges := map[string][]string{
		"v": {"b"},
		"a": {"b"},
	}

	s := seedGraph(t, users, edges)
	e := newTestEngine(t, s, cache.New(time.Hour), nil)
	got, err := e.SuggestUsers(context.Background(), "v")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("default policy: got %v, want a and b", got)
	}

	e = newTestEngine(t, s, cache.New(time.Hour), func(c *Config) { c.ExcludeFollowed = true })
	got, err = e.SuggestUsers(context.Background(), "v")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "a" {
		t.Errorf("exclude_followed: got %v, want [a]", got)
	}
}

func TestSuggestUsers_CachedVerbatim(t *testing.T) {
	s := seedGraph(t, []string{"v", "a", "b"}, nil)
	c := cache.New(time.Hour)
	c.SetWithTTL(CacheKey("v"), []string{"stale"}, time.Hour)

	e := newTestEngine(t, s, c, nil)
	got, err := e.SuggestUsers(context.Background(), "v")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "stale" {
		t.Errorf("expected cached list verbatim, got %v", got)
	}
}

func TestSuggestUsers_CacheExpiry(t *testing.T) {
	var mu sync.Mutex
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	s := seedGraph(t, []string{"v", "a", "b"}, map[string][]string{"v": {"a"}, "b": {"a"}})
	graph := &scanGraph{GraphStore: s}
	c := cache.NewWithClock(time.Hour, clock)
	e := newTestEngine(t, graph, c, nil)
	ctx := context.Background()

	if _, err := e.SuggestUsers(ctx, "v"); err != nil {
		t.Fatal(err)
	}
	first := graph.followingCalls.Load()

	if _, err := e.SuggestUsers(ctx, "v"); err != nil {
		t.Fatal(err)
	}
	if graph.followingCalls.Load() != first {
		t.Error("second call within TTL recomputed")
	}

	mu.Lock()
	now = now.Add(time.Hour + time.Second)
	mu.Unlock()

	if _, err := e.SuggestUsers(ctx, "v"); err != nil {
		t.Fatal(err)
	}
	if graph.followingCalls.Load() == first {
		t.Error("call after TTL did not recompute")
	}
}

func TestSuggestUsers_ReturnsCopy(t *testing.T) {
	s := seedGraph(t, []string{"v", "a"}, nil)
	c := cache.New(time.Hour)
	e := newTestEngine(t, s, c, nil)

	got, err := e.SuggestUsers(context.Background(), "v")
	if err != nil {
		t.Fatal(err)
	}
	got[0] = "mutated"

	cached, ok := cache.GetAs[[]string](c, CacheKey("v"))
	if !ok || cached[0] != "a" {
		t.Errorf("cached list was mutated: %v", cached)
	}
}

func TestSuggestUsers_UnknownViewer(t *testing.T) {
	e := newTestEngine(t, memory.New(), cache.New(time.Hour), nil)
	_, err := e.SuggestUsers(context.Background(), "ghost")
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestSuggestUsers_DoesNotMutateGraph(t *testing.T) {
	s := seedGraph(t, []string{"v", "a", "b"}, map[string][]string{"v": {"a"}})
	e := newTestEngine(t, s, cache.New(time.Hour), nil)
	ctx := context.Background()

	if _, err := e.SuggestUsers(ctx, "v"); err != nil {
		t.Fatal(err)
	}
	following, _ := s.Following(ctx, "v")
	if len(following) != 1 || following[0] != "a" {
		t.Errorf("graph changed: v follows %v", following)
	}
}

func TestSuggestUsers_Concurrent(t *testing.T) {
	users := []string{"v", "a", "b", "c", "d", "e", "f"}
	s := seedGraph(t, users, map[string][]string{"v": {"a"}, "b": {"a"}})
	e := newTestEngine(t, s, cache.New(time.Hour), nil)

	var wg sync.WaitGroup
	results := make([][]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := e.SuggestUsers(context.Background(), "v")
			if err != nil {
				t.Errorf("SuggestUsers: %v", err)
				return
			}
			results[i] = got
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		if len(r) == 0 || r[0] != "b" {
			t.Errorf("expected b ranked first, got %v", r)
		}
	}
}

// gatedGraph blocks ListUserIDs until release is closed.
type gatedGraph struct {
	store.GraphStore
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedGraph) ListUserIDs(ctx context.Context) ([]string, error) {
	g.once.Do(func() { close(g.entered) })
	<-g.release
	return g.GraphStore.ListUserIDs(ctx)
}

func TestSuggestUsers_CanceledCallerDoesNotFailOthers(t *testing.T) {
	t.Parallel()

	base := seedGraph(t, []string{"a", "b", "c", "d"}, map[string][]string{
		"a": {"b", "c"},
		"d": {"b", "c"},
	})
	graph := &gatedGraph{GraphStore: base, entered: make(chan struct{}), release: make(chan struct{})}
	e := newTestEngine(t, graph, cache.New(time.Hour), nil)

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := e.SuggestUsers(firstCtx, "a")
		firstErr <- err
	}()
	<-graph.entered

	cancel()
	select {
	case err := <-firstErr:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("canceled caller error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("canceled caller still waiting on the shared computation")
	}

	// Joins the flight that is still blocked in ListUserIDs.
	second := make(chan []string, 1)
	secondErr := make(chan error, 1)
	go func() {
		ids, err := e.SuggestUsers(context.Background(), "a")
		second <- ids
		secondErr <- err
	}()
	close(graph.release)

	ids := <-second
	if err := <-secondErr; err != nil {
		t.Fatalf("second caller error = %v", err)
	}
	if len(ids) == 0 || ids[0] != "d" {
		t.Errorf("suggestions = %v, want d first", ids)
	}
}

func TestRank(t *testing.T) {
	counts := map[string]int{"c": 1, "a": 1, "b": 3, "z": 0, "skip": 5}
	got := Rank(counts, map[string]struct{}{"skip": {}})

	want := []Candidate{{"b", 3}, {"a", 1}, {"c", 1}}
	if len(got) != len(want) {
		t.Fatalf("Rank = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Rank[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSample(t *testing.T) {
	e := newTestEngine(t, memory.New(), cache.New(time.Hour), nil)

	if got := e.sample([]string{"a"}, 0); got != nil {
		t.Errorf("sample(k=0) = %v", got)
	}
	if got := e.sample(nil, 3); got != nil {
		t.Errorf("sample(empty) = %v", got)
	}

	pool := []string{"a", "b", "c", "d", "e", "f"}
	got := e.sample(pool, 4)
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	seen := map[string]bool{}
	for _, id := range got {
		if seen[id] {
			t.Errorf("duplicate %q", id)
		}
		seen[id] = true
	}

	if got := e.sample([]string{"a", "b"}, 5); len(got) != 2 {
		t.Errorf("sample beyond population = %v", got)
	}
}

func TestSample_SeededIsDeterministic(t *testing.T) {
	pool := func() []string { return []string{"a", "b", "c", "d", "e", "f", "g", "h"} }

	e1 := newTestEngine(t, memory.New(), cache.New(time.Hour), func(c *Config) { c.Seed = 7 })
	e2 := newTestEngine(t, memory.New(), cache.New(time.Hour), func(c *Config) { c.Seed = 7 })

	if a, b := e1.sample(pool(), 3), e2.sample(pool(), 3); fmt.Sprint(a) != fmt.Sprint(b) {
		t.Errorf("same seed produced %v and %v", a, b)
	}
}
