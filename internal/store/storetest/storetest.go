// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

// Package storetest holds behaviour tests shared by every store backend.
// Each backend's _test.go calls the Run functions with a factory that
// returns a fresh, empty store.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/forkfeed/internal/models"
	"github.com/tomtom215/forkfeed/internal/store"
)

// GraphFactory returns an empty GraphStore for one subtest.
type GraphFactory func(t *testing.T) store.GraphStore

// PostFactory returns an empty PostStore for one subtest.
type PostFactory func(t *testing.T) store.PostStore

// SavedFactory returns an empty SavedStore for one subtest.
type SavedFactory func(t *testing.T) store.SavedStore

// NotificationFactory returns an empty NotificationStore for one subtest.
type NotificationFactory func(t *testing.T) store.NotificationStore

func mustCreateUsers(t *testing.T, g store.GraphStore, ids ...string) {
	t.Helper()
	for _, id := range ids {
		if err := g.CreateUser(context.Background(), &models.User{ID: id, Username: id}); err != nil {
			t.Fatalf("CreateUser(%s): %v", id, err)
		}
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// RunGraph exercises the GraphStore contract.
func RunGraph(t *testing.T, newStore GraphFactory) {
	t.Run("users", func(t *testing.T) {
		ctx := context.Background()
		g := newStore(t)
		mustCreateUsers(t, g, "carol", "alice", "bob")

		u, err := g.GetUser(ctx, "alice")
		if err != nil {
			t.Fatalf("GetUser: %v", err)
		}
		if u.Username != "alice" || u.JoinedAt.IsZero() {
			t.Errorf("unexpected user %+v", u)
		}

		if _, err := g.GetUser(ctx, "nobody"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}

		ids, err := g.ListUserIDs(ctx)
		if err != nil {
			t.Fatalf("ListUserIDs: %v", err)
		}
		if !equalStrings(ids, []string{"alice", "bob", "carol"}) {
			t.Errorf("ListUserIDs = %v, want sorted", ids)
		}

		if err := g.CreateUser(ctx, &models.User{ID: "alice", Username: "dup"}); err == nil {
			t.Error("expected duplicate user to fail")
		}
	})

	t.Run("edges", func(t *testing.T) {
		ctx := context.Background()
		g := newStore(t)
		mustCreateUsers(t, g, "a", "b", "c")

		for _, pair := range [][2]string{{"a", "b"}, {"a", "c"}, {"c", "b"}, {"a", "b"}} {
			if err := g.AddEdge(ctx, pair[0], pair[1]); err != nil {
				t.Fatalf("AddEdge(%v): %v", pair, err)
			}
		}

		following, _ := g.Following(ctx, "a")
		if !equalStrings(following, []string{"b", "c"}) {
			t.Errorf("Following(a) = %v", following)
		}
		followers, _ := g.Followers(ctx, "b")
		if !equalStrings(followers, []string{"a", "c"}) {
			t.Errorf("Followers(b) = %v", followers)
		}

		if err := g.RemoveEdge(ctx, "a", "b"); err != nil {
			t.Fatalf("RemoveEdge: %v", err)
		}
		if ok, _ := g.IsFollowing(ctx, "a", "b"); ok {
			t.Error("expected a -> b removed")
		}
		if err := g.RemoveEdge(ctx, "a", "b"); err != nil {
			t.Errorf("removing a missing edge should be a no-op: %v", err)
		}

		if _, err := g.Following(ctx, "ghost"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound for unknown user, got %v", err)
		}
		if err := g.AddEdge(ctx, "a", "ghost"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound for unknown target, got %v", err)
		}
	})

	t.Run("self_follow_rejected", func(t *testing.T) {
		ctx := context.Background()
		g := newStore(t)
		mustCreateUsers(t, g, "a")

		if err := g.AddEdge(ctx, "a", "a"); !errors.Is(err, models.ErrSelfReference) {
			t.Errorf("AddEdge self: expected ErrSelfReference, got %v", err)
		}
		if _, err := g.ToggleFollow(ctx, "a", "a"); !errors.Is(err, models.ErrSelfReference) {
			t.Errorf("ToggleFollow self: expected ErrSelfReference, got %v", err)
		}
		if ok, _ := g.IsFollowing(ctx, "a", "a"); ok {
			t.Error("self edge must never exist")
		}
	})

	t.Run("toggle_follow_round_trip", func(t *testing.T) {
		ctx := context.Background()
		g := newStore(t)
		mustCreateUsers(t, g, "a", "b")

		on, err := g.ToggleFollow(ctx, "a", "b")
		if err != nil || !on {
			t.Fatalf("first toggle = %v, %v; want true", on, err)
		}
		off, err := g.ToggleFollow(ctx, "a", "b")
		if err != nil || off {
			t.Fatalf("second toggle = %v, %v; want false", off, err)
		}
		if ok, _ := g.IsFollowing(ctx, "a", "b"); ok {
			t.Error("expected original (unfollowed) state after two toggles")
		}
	})

	t.Run("toggle_follow_concurrent", func(t *testing.T) {
		ctx := context.Background()
		g := newStore(t)
		mustCreateUsers(t, g, "a", "b")

		const n = 20
		var wg sync.WaitGroup
		var mu sync.Mutex
		ons := 0
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				on, err := g.ToggleFollow(ctx, "a", "b")
				if err != nil {
					t.Errorf("ToggleFollow: %v", err)
					return
				}
				if on {
					mu.Lock()
					ons++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		// An even number of atomic toggles leaves the edge absent
		// and exactly half of them observed the "on" state.
		if ons != n/2 {
			t.Errorf("expected %d on-transitions, got %d", n/2, ons)
		}
		if ok, _ := g.IsFollowing(ctx, "a", "b"); ok {
			t.Error("expected edge absent after an even number of toggles")
		}
	})

	t.Run("co_follow_counts", func(t *testing.T) {
		ctx := context.Background()
		g := newStore(t)
		cf, ok := g.(store.CoFollowCounter)
		if !ok {
			t.Skip("store does not implement CoFollowCounter")
		}
		mustCreateUsers(t, g, "A", "B", "C", "D", "E", "F")
		for _, e := range [][2]string{{"A", "B"}, {"A", "C"}, {"D", "B"}, {"D", "C"}, {"F", "C"}, {"B", "C"}} {
			if err := g.AddEdge(ctx, e[0], e[1]); err != nil {
				t.Fatal(err)
			}
		}

		counts, err := cf.CoFollowCounts(ctx, "A")
		if err != nil {
			t.Fatalf("CoFollowCounts: %v", err)
		}
		want := map[string]int{"D": 2, "F": 1, "B": 1}
		if len(counts) != len(want) {
			t.Errorf("CoFollowCounts = %v, want %v", counts, want)
		}
		for k, v := range want {
			if counts[k] != v {
				t.Errorf("CoFollowCounts[%s] = %d, want %d", k, counts[k], v)
			}
		}
		if _, ok := counts["A"]; ok {
			t.Error("viewer must not appear in its own counts")
		}
	})
}

func newPost(id, author string, at time.Time, tags ...string) *models.Post {
	return &models.Post{
		ID:        id,
		AuthorID:  author,
		Content:   "post " + id,
		Tags:      tags,
		Category:  models.CategoryDinner,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

// RunPosts exercises the PostStore contract.
func RunPosts(t *testing.T, newStore PostFactory) {
	base := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)

	t.Run("create_get_list", func(t *testing.T) {
		ctx := context.Background()
		ps := newStore(t)

		for i, author := range []string{"u1", "u2", "u1"} {
			p := newPost(fmt.Sprintf("p%d", i+1), author, base.Add(time.Duration(i)*time.Minute), "spicy", "spicy")
			if err := ps.CreatePost(ctx, p); err != nil {
				t.Fatalf("CreatePost: %v", err)
			}
		}

		got, err := ps.GetPost(ctx, "p2")
		if err != nil {
			t.Fatalf("GetPost: %v", err)
		}
		if got.AuthorID != "u2" || !got.CreatedAt.Equal(base.Add(time.Minute)) {
			t.Errorf("unexpected post %+v", got)
		}
		if len(got.Tags) != 2 {
			t.Errorf("tags must keep duplicates, got %v", got.Tags)
		}

		all, _ := ps.AllPosts(ctx)
		if len(all) != 3 || all[0].ID != "p1" || all[2].ID != "p3" {
			t.Errorf("AllPosts not in insertion order: %v", all)
		}

		byAuthor, _ := ps.PostsByAuthorIn(ctx, []string{"u1"})
		if len(byAuthor) != 2 || byAuthor[0].ID != "p1" || byAuthor[1].ID != "p3" {
			t.Errorf("PostsByAuthorIn = %v", byAuthor)
		}
		none, _ := ps.PostsByAuthorIn(ctx, nil)
		if len(none) != 0 {
			t.Errorf("PostsByAuthorIn(nil) = %v, want empty", none)
		}

		if _, err := ps.GetPost(ctx, "missing"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("place_round_trip", func(t *testing.T) {
		ctx := context.Background()
		ps := newStore(t)

		p := newPost("shared", "u1", base)
		p.SharedFromID = "orig"
		p.Place = &models.SharedPlace{Kind: models.PlaceRestaurant, PlaceID: "ChIJ123", Name: "Noodle Bar", City: "Austin"}
		if err := ps.CreatePost(ctx, p); err != nil {
			t.Fatal(err)
		}
		got, err := ps.GetPost(ctx, "shared")
		if err != nil {
			t.Fatal(err)
		}
		if got.SharedFromID != "orig" || got.Place == nil || got.Place.PlaceID != "ChIJ123" || got.Place.City != "Austin" {
			t.Errorf("place context lost: %+v", got)
		}
	})

	t.Run("toggle_like_round_trip", func(t *testing.T) {
		ctx := context.Background()
		ps := newStore(t)
		if err := ps.CreatePost(ctx, newPost("p1", "author", base)); err != nil {
			t.Fatal(err)
		}

		liked, count, err := ps.ToggleLike(ctx, "u1", "p1")
		if err != nil || !liked || count != 1 {
			t.Fatalf("first toggle = %v, %d, %v", liked, count, err)
		}
		if ok, _ := ps.HasLiked(ctx, "u1", "p1"); !ok {
			t.Error("expected HasLiked after like")
		}
		liked, count, err = ps.ToggleLike(ctx, "u1", "p1")
		if err != nil || liked || count != 0 {
			t.Fatalf("second toggle = %v, %d, %v", liked, count, err)
		}
		if n, _ := ps.LikeCount(ctx, "p1"); n != 0 {
			t.Errorf("LikeCount = %d, want original 0", n)
		}

		if _, _, err := ps.ToggleLike(ctx, "u1", "missing"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("toggle_like_concurrent", func(t *testing.T) {
		ctx := context.Background()
		ps := newStore(t)
		if err := ps.CreatePost(ctx, newPost("p1", "author", base)); err != nil {
			t.Fatal(err)
		}

		const n = 10
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, _, err := ps.ToggleLike(ctx, "dup", "p1"); err != nil {
					t.Errorf("ToggleLike: %v", err)
				}
			}()
		}
		wg.Wait()

		if c, _ := ps.LikeCount(ctx, "p1"); c != 0 {
			t.Errorf("LikeCount after %d duplicate toggles = %d, want 0", n, c)
		}
	})

	t.Run("comments_and_cascade", func(t *testing.T) {
		ctx := context.Background()
		ps := newStore(t)
		if err := ps.CreatePost(ctx, newPost("p1", "author", base)); err != nil {
			t.Fatal(err)
		}
		if err := ps.CreatePost(ctx, newPost("p2", "author", base)); err != nil {
			t.Fatal(err)
		}

		for i, post := range []string{"p1", "p1", "p2"} {
			c := &models.Comment{
				ID:        fmt.Sprintf("c%d", i+1),
				PostID:    post,
				AuthorID:  "u1",
				Text:      "nice",
				CreatedAt: base.Add(time.Duration(i) * time.Second),
			}
			if err := ps.AddComment(ctx, c); err != nil {
				t.Fatalf("AddComment: %v", err)
			}
		}
		if _, _, err := ps.ToggleLike(ctx, "u1", "p1"); err != nil {
			t.Fatal(err)
		}

		comments, _ := ps.ListComments(ctx, "p1")
		if len(comments) != 2 || comments[0].ID != "c1" {
			t.Errorf("ListComments = %+v", comments)
		}

		if err := ps.AddComment(ctx, &models.Comment{ID: "cx", PostID: "missing", AuthorID: "u1", Text: "x"}); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("comment on missing post: expected ErrNotFound, got %v", err)
		}

		if err := ps.DeletePost(ctx, "p1"); err != nil {
			t.Fatalf("DeletePost: %v", err)
		}
		for _, id := range []string{"c1", "c2"} {
			if _, err := ps.GetComment(ctx, id); !errors.Is(err, models.ErrNotFound) {
				t.Errorf("comment %s survived its post: %v", id, err)
			}
		}
		if _, err := ps.GetComment(ctx, "c3"); err != nil {
			t.Errorf("unrelated comment removed: %v", err)
		}
		if _, err := ps.ListComments(ctx, "p1"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("ListComments on deleted post: expected ErrNotFound, got %v", err)
		}
		if ok, _ := ps.HasLiked(ctx, "u1", "p1"); ok {
			t.Error("like survived its post")
		}
		if err := ps.DeletePost(ctx, "p1"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("second delete: expected ErrNotFound, got %v", err)
		}

		if err := ps.DeleteComment(ctx, "c3"); err != nil {
			t.Fatalf("DeleteComment: %v", err)
		}
		remaining, _ := ps.ListComments(ctx, "p2")
		if len(remaining) != 0 {
			t.Errorf("expected no comments, got %+v", remaining)
		}
	})

	t.Run("stats", func(t *testing.T) {
		ctx := context.Background()
		ps := newStore(t)
		stats, ok := ps.(store.PostStats)
		if !ok {
			t.Skip("store does not implement PostStats")
		}
		if err := ps.CreatePost(ctx, newPost("p1", "author", base)); err != nil {
			t.Fatal(err)
		}
		if err := ps.CreatePost(ctx, newPost("p2", "author", base)); err != nil {
			t.Fatal(err)
		}
		_, _, _ = ps.ToggleLike(ctx, "v", "p1")
		_, _, _ = ps.ToggleLike(ctx, "w", "p1")
		_ = ps.AddComment(ctx, &models.Comment{ID: "c1", PostID: "p2", AuthorID: "v", Text: "yum"})

		got, err := stats.Stats(ctx, []string{"p1", "p2"}, "v")
		if err != nil {
			t.Fatalf("Stats: %v", err)
		}
		if got["p1"].Likes != 2 || !got["p1"].Liked || got["p1"].Comments != 0 {
			t.Errorf("p1 stats = %+v", got["p1"])
		}
		if got["p2"].Likes != 0 || got["p2"].Liked || got["p2"].Comments != 1 {
			t.Errorf("p2 stats = %+v", got["p2"])
		}
	})
}

// RunSaved exercises the SavedStore contract.
func RunSaved(t *testing.T, newStore SavedFactory) {
	t.Run("toggle_and_list", func(t *testing.T) {
		ctx := context.Background()
		ss := newStore(t)
		base := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)

		items := []models.SavedItem{
			{UserID: "u1", Kind: models.PlaceRestaurant, TargetID: "r1", Name: "Taqueria", CreatedAt: base},
			{UserID: "u1", Kind: models.PlaceRecipe, TargetID: "716429", Name: "Pasta", CreatedAt: base.Add(time.Minute)},
			{UserID: "u1", Kind: models.PlaceRestaurant, TargetID: "r2", Name: "Ramen", CreatedAt: base.Add(2 * time.Minute)},
			{UserID: "u2", Kind: models.PlaceRestaurant, TargetID: "r1", CreatedAt: base},
		}
		for i := range items {
			saved, err := ss.ToggleSaved(ctx, &items[i])
			if err != nil || !saved {
				t.Fatalf("ToggleSaved(%d) = %v, %v", i, saved, err)
			}
		}

		all, _ := ss.ListSaved(ctx, "u1", "")
		if len(all) != 3 || all[0].TargetID != "r2" || all[2].TargetID != "r1" {
			t.Errorf("ListSaved newest-first = %+v", all)
		}
		restaurants, _ := ss.ListSaved(ctx, "u1", models.PlaceRestaurant)
		if len(restaurants) != 2 {
			t.Errorf("ListSaved(restaurant) = %+v", restaurants)
		}

		again := models.SavedItem{UserID: "u1", Kind: models.PlaceRestaurant, TargetID: "r1"}
		saved, err := ss.ToggleSaved(ctx, &again)
		if err != nil || saved {
			t.Fatalf("second toggle = %v, %v; want false", saved, err)
		}
		after, _ := ss.ListSaved(ctx, "u1", models.PlaceRestaurant)
		if len(after) != 1 || after[0].TargetID != "r2" {
			t.Errorf("after unsave = %+v", after)
		}
		other, _ := ss.ListSaved(ctx, "u2", "")
		if len(other) != 1 {
			t.Errorf("other user's saves affected: %+v", other)
		}
	})
}

// RunNotifications exercises the NotificationStore contract.
func RunNotifications(t *testing.T, newStore NotificationFactory) {
	t.Run("list_and_mark", func(t *testing.T) {
		ctx := context.Background()
		ns := newStore(t)
		base := time.Date(2026, 5, 3, 12, 0, 0, 0, time.UTC)

		for i := 0; i < 3; i++ {
			n := &models.Notification{
				ID:          fmt.Sprintf("n%d", i+1),
				RecipientID: "u1",
				Type:        models.NotificationLike,
				SenderID:    "u2",
				PostID:      "p1",
				Message:     "u2 liked your post",
				CreatedAt:   base.Add(time.Duration(i) * time.Minute),
			}
			if err := ns.AddNotification(ctx, n); err != nil {
				t.Fatalf("AddNotification: %v", err)
			}
		}
		if err := ns.AddNotification(ctx, &models.Notification{ID: "other", RecipientID: "u2", Type: models.NotificationFollow, CreatedAt: base}); err != nil {
			t.Fatal(err)
		}

		list, _ := ns.ListNotifications(ctx, "u1", false)
		if len(list) != 3 || list[0].ID != "n3" || list[2].ID != "n1" {
			t.Errorf("ListNotifications newest-first = %+v", list)
		}

		if err := ns.MarkRead(ctx, "u1", "n2"); err != nil {
			t.Fatalf("MarkRead: %v", err)
		}
		unread, _ := ns.ListNotifications(ctx, "u1", true)
		if len(unread) != 2 {
			t.Errorf("unread = %+v", unread)
		}

		if err := ns.MarkRead(ctx, "u1", "other"); !errors.Is(err, models.ErrPermission) {
			t.Errorf("marking another user's notification: expected ErrPermission, got %v", err)
		}
		if err := ns.MarkRead(ctx, "u1", "missing"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}

		changed, err := ns.MarkAllRead(ctx, "u1")
		if err != nil || changed != 2 {
			t.Errorf("MarkAllRead = %d, %v; want 2", changed, err)
		}
		if unread, _ := ns.ListNotifications(ctx, "u1", true); len(unread) != 0 {
			t.Errorf("expected all read, got %+v", unread)
		}
	})
}
