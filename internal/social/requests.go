// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package social

// CreateUserRequest registers an identity handed over by the gateway.
// ID is generated when empty.
type CreateUserRequest struct {
	ID          string `json:"id" validate:"omitempty,max=64"`
	Username    string `json:"username" validate:"notblank,max=50"`
	DisplayName string `json:"display_name" validate:"max=100"`
	Bio         string `json:"bio" validate:"max=500"`
	Location    string `json:"location" validate:"max=100"`
}

// PlaceRequest is the restaurant/recipe context attached to a shared post.
type PlaceRequest struct {
	Kind    string `json:"kind" validate:"placekind"`
	PlaceID string `json:"place_id" validate:"notblank,max=255"`
	Name    string `json:"name" validate:"notblank,max=200"`
	City    string `json:"city" validate:"max=100"`
}

// CreatePostRequest creates a post. Content may be empty only when a place
// is attached. Category defaults to other.
type CreatePostRequest struct {
	AuthorID     string        `json:"author_id" validate:"required"`
	Content      string        `json:"content" validate:"required_without=Place,max=2000"`
	Tags         []string      `json:"tags" validate:"max=20,dive,notblank,max=50"`
	Category     string        `json:"category" validate:"omitempty,category"`
	Location     string        `json:"location" validate:"max=100"`
	SharedFromID string        `json:"shared_from_id"`
	Place        *PlaceRequest `json:"place"`
}

// ToggleRequest flips a (actor, target) membership: a like on a post or a
// follow of a user.
type ToggleRequest struct {
	ActorID  string `json:"actor_id" validate:"required"`
	TargetID string `json:"target_id" validate:"required"`
}

// ToggleResult reports the state after a toggle. Count is the like count
// for likes and the target's follower count for follows.
type ToggleResult struct {
	Active bool `json:"active"`
	Count  int  `json:"count"`
}

// CommentRequest adds a comment to a post.
type CommentRequest struct {
	AuthorID string `json:"author_id" validate:"required"`
	PostID   string `json:"post_id" validate:"required"`
	Text     string `json:"text" validate:"notblank,max=2000"`
}

// SaveRequest toggles a saved restaurant, recipe or grocery store.
type SaveRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Kind     string `json:"kind" validate:"placekind"`
	TargetID string `json:"target_id" validate:"notblank,max=255"`
	Name     string `json:"name" validate:"max=200"`
	Notes    string `json:"notes" validate:"max=1000"`
}
