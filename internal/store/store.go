// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

// Package store defines the persistence contracts used by Forkfeed.
//
// Implementations live in subpackages: memory (default and tests),
// badgerstore (embedded, persistent), postgres (posts only) and
// neo4jgraph (follow graph only). Errors use the models taxonomy:
// unknown entities are *models.NotFoundError and self-follows are
// *models.SelfReferenceError.
package store

import (
	"context"

	"github.com/tomtom215/forkfeed/internal/models"
)

// GraphStore holds user identities and directed follow edges.
type GraphStore interface {
	// CreateUser stores a new user. The ID must be set and unused.
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)

	// ListUserIDs returns every user id in ascending order.
	ListUserIDs(ctx context.Context) ([]string, error)

	// Following returns the ids user follows, ascending.
	Following(ctx context.Context, user string) ([]string, error)
	// Followers returns the ids following user, ascending.
	Followers(ctx context.Context, user string) ([]string, error)

	// AddEdge creates follower -> followed. Adding an existing edge is a no-op.
	AddEdge(ctx context.Context, follower, followed string) error
	// RemoveEdge deletes follower -> followed. Removing a missing edge is a no-op.
	RemoveEdge(ctx context.Context, follower, followed string) error
	IsFollowing(ctx context.Context, follower, followed string) (bool, error)

	// ToggleFollow flips the edge atomically and reports whether it now exists.
	ToggleFollow(ctx context.Context, follower, followed string) (bool, error)
}

// CoFollowCounter is implemented by graph stores that can compute
// mutual-follow overlap without scanning every user.
type CoFollowCounter interface {
	// CoFollowCounts maps every user U other than viewer with a positive
	// overlap to |following(viewer) ∩ following(U)|.
	CoFollowCounts(ctx context.Context, viewer string) (map[string]int, error)
}

// PostStore holds posts, like membership and comments.
// Listing methods return insertion order.
type PostStore interface {
	AllPosts(ctx context.Context) ([]models.Post, error)
	PostsByAuthorIn(ctx context.Context, authors []string) ([]models.Post, error)

	CreatePost(ctx context.Context, p *models.Post) error
	GetPost(ctx context.Context, id string) (*models.Post, error)
	// DeletePost removes the post with its comments and likes.
	DeletePost(ctx context.Context, id string) error

	// ToggleLike flips (user, post) membership atomically and returns
	// the new state with the resulting like count.
	ToggleLike(ctx context.Context, user, post string) (liked bool, count int, err error)
	LikeCount(ctx context.Context, post string) (int, error)
	HasLiked(ctx context.Context, user, post string) (bool, error)

	AddComment(ctx context.Context, c *models.Comment) error
	GetComment(ctx context.Context, id string) (*models.Comment, error)
	// ListComments returns the comments of post, oldest first.
	ListComments(ctx context.Context, post string) ([]models.Comment, error)
	DeleteComment(ctx context.Context, id string) error
}

// PostStats is implemented by post stores that can decorate many posts at once.
type PostStats interface {
	// Stats returns like and comment counts for ids, plus the set the viewer liked.
	// viewer may be empty.
	Stats(ctx context.Context, ids []string, viewer string) (map[string]Counts, error)
}

// Counts is the per-post aggregate returned by PostStats.
type Counts struct {
	Likes    int
	Comments int
	Liked    bool
}

// SavedStore holds per-user saved restaurants, recipes and grocery stores.
type SavedStore interface {
	// ToggleSaved flips the (UserID, Kind, TargetID) entry atomically.
	ToggleSaved(ctx context.Context, item *models.SavedItem) (bool, error)
	// ListSaved returns newest first. An empty kind means every kind.
	ListSaved(ctx context.Context, user string, kind models.PlaceKind) ([]models.SavedItem, error)
}

// NotificationStore holds notifications.
type NotificationStore interface {
	AddNotification(ctx context.Context, n *models.Notification) error
	// ListNotifications returns newest first.
	ListNotifications(ctx context.Context, user string, unreadOnly bool) ([]models.Notification, error)
	// MarkRead fails with *models.PermissionError when id belongs to another user.
	MarkRead(ctx context.Context, user, id string) error
	// MarkAllRead returns the number of notifications changed.
	MarkAllRead(ctx context.Context, user string) (int, error)
}

// Store bundles every contract. memory and badgerstore implement all of it.
type Store interface {
	GraphStore
	PostStore
	SavedStore
	NotificationStore
	Close() error
}
