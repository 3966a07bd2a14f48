// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package main

import (
	"context"
	"testing"

	"github.com/tomtom215/forkfeed/internal/config"
	"github.com/tomtom215/forkfeed/internal/models"
	"github.com/tomtom215/forkfeed/internal/store/badgerstore"
	"github.com/tomtom215/forkfeed/internal/store/memory"
)

func TestOpenStores_BaseDrivers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		storage config.StorageConfig
		check   func(t *testing.T, s *storeSet)
	}{
		{
			name:    "memory",
			storage: config.StorageConfig{Driver: config.StorageMemory},
			check: func(t *testing.T, s *storeSet) {
				if _, ok := s.base.(*memory.Store); !ok {
					t.Errorf("base = %T, want *memory.Store", s.base)
				}
			},
		},
		{
			name:    "badger in memory",
			storage: config.StorageConfig{Driver: config.StorageBadger, BadgerInMemory: true},
			check: func(t *testing.T, s *storeSet) {
				if _, ok := s.base.(*badgerstore.Store); !ok {
					t.Errorf("base = %T, want *badgerstore.Store", s.base)
				}
				if len(s.closers) != 1 {
					t.Errorf("closers = %d, want 1", len(s.closers))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &config.Config{
				Storage: tt.storage,
				Graph:   config.GraphConfig{Driver: config.DriverStore},
				Posts:   config.PostsConfig{Driver: config.DriverStore},
			}
			s, err := openStores(context.Background(), cfg)
			if err != nil {
				t.Fatalf("openStores() error = %v", err)
			}
			defer s.Close()

			tt.check(t, s)

			ctx := context.Background()
			if err := s.Graph.CreateUser(ctx, &models.User{ID: "alice", Username: "alice"}); err != nil {
				t.Fatalf("CreateUser() error = %v", err)
			}
			if _, err := s.Graph.GetUser(ctx, "alice"); err != nil {
				t.Errorf("GetUser() error = %v", err)
			}
		})
	}
}
