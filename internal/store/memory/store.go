// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

// Package memory is the in-process implementation of every store contract.
// It is the default backend and the one most tests run against.
package memory

import (
	"context"
	"hash/fnv"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/forkfeed/internal/models"
	"github.com/tomtom215/forkfeed/internal/store"
)

const lockStripes = 64

// Option configures a Store.
type Option func(*Store)

// WithClock overrides time.Now for CreatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

type savedEntry struct {
	item models.SavedItem
	seq  uint64
}

// Store keeps everything in maps guarded by one RWMutex.
// Toggles additionally hold a mutex striped by the (actor, target) pair, so
// the membership check and the flip happen as one step for that pair.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time
	seq uint64

	users     map[string]*models.User
	following map[string]map[string]time.Time // follower -> followed -> since
	followers map[string]map[string]time.Time // followed -> follower -> since

	posts     map[string]*models.Post
	postOrder []string
	likes     map[string]map[string]time.Time // post -> user -> at

	comments       map[string]*models.Comment
	commentsByPost map[string][]string

	saved map[string]map[string]*savedEntry // user -> item key -> entry

	notifications map[string]*models.Notification
	notesByUser   map[string][]string

	stripes [lockStripes]sync.Mutex
}

var (
	_ store.Store           = (*Store)(nil)
	_ store.CoFollowCounter = (*Store)(nil)
	_ store.PostStats       = (*Store)(nil)
)

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		now:            time.Now,
		users:          make(map[string]*models.User),
		following:      make(map[string]map[string]time.Time),
		followers:      make(map[string]map[string]time.Time),
		posts:          make(map[string]*models.Post),
		likes:          make(map[string]map[string]time.Time),
		comments:       make(map[string]*models.Comment),
		commentsByPost: make(map[string][]string),
		saved:          make(map[string]map[string]*savedEntry),
		notifications:  make(map[string]*models.Notification),
		notesByUser:    make(map[string][]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

func (s *Store) pairLock(a, b string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(a))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(b))
	return &s.stripes[h.Sum32()%lockStripes]
}

func sortedKeys(m map[string]time.Time) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Users and follow graph

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	if u == nil || u.ID == "" {
		return models.NewValidationError("id", "is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[u.ID]; exists {
		return models.NewValidationError("id", "already exists")
	}
	cp := *u
	if cp.JoinedAt.IsZero() {
		cp.JoinedAt = s.now()
	}
	s.users[u.ID] = &cp
	*u = cp
	return nil
}

func (s *Store) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, models.NewNotFoundError("user", id)
	}
	cp := *u
	return &cp, nil
}

func (s *Store) ListUserIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.users))
	for id := range s.users {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (s *Store) Following(_ context.Context, user string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.users[user]; !ok {
		return nil, models.NewNotFoundError("user", user)
	}
	return sortedKeys(s.following[user]), nil
}

func (s *Store) Followers(_ context.Context, user string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.users[user]; !ok {
		return nil, models.NewNotFoundError("user", user)
	}
	return sortedKeys(s.followers[user]), nil
}

// checkPair must be called with mu held.
func (s *Store) checkPair(follower, followed string) error {
	if follower == followed {
		return models.NewSelfReferenceError(follower)
	}
	if _, ok := s.users[follower]; !ok {
		return models.NewNotFoundError("user", follower)
	}
	if _, ok := s.users[followed]; !ok {
		return models.NewNotFoundError("user", followed)
	}
	return nil
}

// link and unlink must be called with mu held.
func (s *Store) link(follower, followed string) {
	if _, ok := s.following[follower][followed]; ok {
		return
	}
	at := s.now()
	if s.following[follower] == nil {
		s.following[follower] = make(map[string]time.Time)
	}
	if s.followers[followed] == nil {
		s.followers[followed] = make(map[string]time.Time)
	}
	s.following[follower][followed] = at
	s.followers[followed][follower] = at
}

func (s *Store) unlink(follower, followed string) {
	delete(s.following[follower], followed)
	delete(s.followers[followed], follower)
}

func (s *Store) AddEdge(_ context.Context, follower, followed string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkPair(follower, followed); err != nil {
		return err
	}
	s.link(follower, followed)
	return nil
}

func (s *Store) RemoveEdge(_ context.Context, follower, followed string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkPair(follower, followed); err != nil {
		return err
	}
	s.unlink(follower, followed)
	return nil
}

func (s *Store) IsFollowing(_ context.Context, follower, followed string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.following[follower][followed]
	return ok, nil
}

func (s *Store) ToggleFollow(_ context.Context, follower, followed string) (bool, error) {
	pl := s.pairLock(follower, followed)
	pl.Lock()
	defer pl.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkPair(follower, followed); err != nil {
		return false, err
	}
	if _, ok := s.following[follower][followed]; ok {
		s.unlink(follower, followed)
		return false, nil
	}
	s.link(follower, followed)
	return true, nil
}

// CoFollowCounts walks the follower index of each user the viewer follows,
// so the cost is the sum of those users' follower counts.
func (s *Store) CoFollowCounts(_ context.Context, viewer string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.users[viewer]; !ok {
		return nil, models.NewNotFoundError("user", viewer)
	}
	counts := make(map[string]int)
	for f := range s.following[viewer] {
		for u := range s.followers[f] {
			if u != viewer {
				counts[u]++
			}
		}
	}
	return counts, nil
}
