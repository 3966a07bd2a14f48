// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/forkfeed/internal/models"
)

func userKey(id string) []byte { return key("user", id) }

func (s *Store) CreateUser(ctx context.Context, u *models.User) (err error) {
	start := time.Now()
	defer func() { observe("create_user", start, err) }()
	if u == nil || u.ID == "" {
		return models.NewValidationError("id", "is required")
	}
	if u.JoinedAt.IsZero() {
		u.JoinedAt = s.now()
	}
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return s.updateWithRetry(ctx, func(txn *badger.Txn) error {
		found, err := exists(txn, userKey(u.ID))
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		if found {
			return models.NewValidationError("id", "already exists")
		}
		return txn.Set(userKey(u.ID), data)
	})
}

func (s *Store) GetUser(_ context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return models.NewNotFoundError("user", id)
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &u)
		})
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) ListUserIDs(_ context.Context) ([]string, error) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		ids = suffixes(txn, prefix("user"))
		return nil
	})
	if ids == nil {
		ids = []string{}
	}
	return ids, err
}

func (s *Store) adjacency(kind, user string) ([]string, error) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		found, err := exists(txn, userKey(user))
		if err != nil {
			return err
		}
		if !found {
			return models.NewNotFoundError("user", user)
		}
		ids = suffixes(txn, prefix(kind, user))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (s *Store) Following(_ context.Context, user string) ([]string, error) {
	return s.adjacency("follow", user)
}

func (s *Store) Followers(_ context.Context, user string) ([]string, error) {
	return s.adjacency("follower", user)
}

func checkPair(txn *badger.Txn, follower, followed string) error {
	if follower == followed {
		return models.NewSelfReferenceError(follower)
	}
	for _, id := range []string{follower, followed} {
		found, err := exists(txn, userKey(id))
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		if !found {
			return models.NewNotFoundError("user", id)
		}
	}
	return nil
}

func (s *Store) setEdge(txn *badger.Txn, follower, followed string, on bool) error {
	fwd := key("follow", follower, followed)
	rev := key("follower", followed, follower)
	if !on {
		if err := txn.Delete(fwd); err != nil {
			return err
		}
		return txn.Delete(rev)
	}
	at := timeBytes(s.now())
	if err := txn.Set(fwd, at); err != nil {
		return err
	}
	return txn.Set(rev, at)
}

func (s *Store) AddEdge(ctx context.Context, follower, followed string) error {
	return s.updateWithRetry(ctx, func(txn *badger.Txn) error {
		if err := checkPair(txn, follower, followed); err != nil {
			return err
		}
		found, err := exists(txn, key("follow", follower, followed))
		if err != nil || found {
			return err
		}
		return s.setEdge(txn, follower, followed, true)
	})
}

func (s *Store) RemoveEdge(ctx context.Context, follower, followed string) error {
	return s.updateWithRetry(ctx, func(txn *badger.Txn) error {
		if err := checkPair(txn, follower, followed); err != nil {
			return err
		}
		return s.setEdge(txn, follower, followed, false)
	})
}

func (s *Store) IsFollowing(_ context.Context, follower, followed string) (bool, error) {
	var found bool
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		found, err = exists(txn, key("follow", follower, followed))
		return err
	})
	return found, err
}

// ToggleFollow reads and flips the edge inside one transaction. Badger's
// conflict detection aborts one of two concurrent toggles, which is retried.
func (s *Store) ToggleFollow(ctx context.Context, follower, followed string) (following bool, err error) {
	start := time.Now()
	defer func() { observe("toggle_follow", start, err) }()
	err = s.updateWithRetry(ctx, func(txn *badger.Txn) error {
		if err := checkPair(txn, follower, followed); err != nil {
			return err
		}
		found, err := exists(txn, key("follow", follower, followed))
		if err != nil {
			return err
		}
		following = !found
		return s.setEdge(txn, follower, followed, following)
	})
	return following, err
}

// CoFollowCounts walks the follower index of each followed user.
func (s *Store) CoFollowCounts(_ context.Context, viewer string) (map[string]int, error) {
	counts := make(map[string]int)
	err := s.db.View(func(txn *badger.Txn) error {
		found, err := exists(txn, userKey(viewer))
		if err != nil {
			return err
		}
		if !found {
			return models.NewNotFoundError("user", viewer)
		}
		for _, f := range suffixes(txn, prefix("follow", viewer)) {
			for _, u := range suffixes(txn, prefix("follower", f)) {
				if u != viewer {
					counts[u]++
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}
