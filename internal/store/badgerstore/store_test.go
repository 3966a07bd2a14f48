// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package badgerstore

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/forkfeed/internal/models"
	"github.com/tomtom215/forkfeed/internal/store"
	"github.com/tomtom215/forkfeed/internal/store/storetest"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Config{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return s
}

func TestGraphStore(t *testing.T) {
	storetest.RunGraph(t, func(t *testing.T) store.GraphStore { return openTestStore(t) })
}

func TestPostStore(t *testing.T) {
	storetest.RunPosts(t, func(t *testing.T) store.PostStore { return openTestStore(t) })
}

func TestSavedStore(t *testing.T) {
	storetest.RunSaved(t, func(t *testing.T) store.SavedStore { return openTestStore(t) })
}

func TestNotificationStore(t *testing.T) {
	storetest.RunNotifications(t, func(t *testing.T) store.NotificationStore { return openTestStore(t) })
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(Config{Path: dir})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.CreateUser(ctx, &models.User{ID: "a", Username: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateUser(ctx, &models.User{ID: "b", Username: "b"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ToggleFollow(ctx, "a", "b"); err != nil {
		t.Fatal(err)
	}
	p := &models.Post{ID: "p1", AuthorID: "a", Content: "tacos", Category: models.CategoryLunch}
	if err := s.CreatePost(ctx, p); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(Config{Path: dir})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	if ok, _ := s.IsFollowing(ctx, "a", "b"); !ok {
		t.Error("follow edge lost across reopen")
	}
	got, err := s.GetPost(ctx, "p1")
	if err != nil {
		t.Fatalf("GetPost after reopen: %v", err)
	}
	if got.Content != "tacos" || got.Category != models.CategoryLunch {
		t.Errorf("post after reopen = %+v", got)
	}

	// New posts must sort after the ones written before the restart.
	if err := s.CreatePost(ctx, &models.Post{ID: "p2", AuthorID: "b", Category: models.CategoryOther}); err != nil {
		t.Fatal(err)
	}
	all, _ := s.AllPosts(ctx)
	if len(all) != 2 || all[0].ID != "p1" || all[1].ID != "p2" {
		t.Errorf("AllPosts after reopen = %v", all)
	}
}

func TestInMemory(t *testing.T) {
	s, err := Open(Config{InMemory: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.CreateUser(context.Background(), &models.User{ID: "x"}); err != nil {
		t.Fatal(err)
	}
	gc := NewGCService(s, time.Minute)
	if err := gc.RunGC(); err != nil {
		t.Errorf("RunGC on in-memory db: %v", err)
	}
}

func TestGCServiceStopsOnCancel(t *testing.T) {
	s := openTestStore(t)
	gc := NewGCService(s, 10*time.Millisecond)
	if gc.String() != "badger-gc" {
		t.Errorf("String() = %q", gc.String())
	}
	if err := gc.RunGC(); err != nil {
		t.Errorf("RunGC: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- gc.Serve(ctx) }()
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not stop after cancel")
	}
}
