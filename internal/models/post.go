// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package models

import (
	"fmt"
	"strings"
	"time"
)

// Category is the meal category attached to a post.
type Category string

const (
	CategoryBreakfast Category = "breakfast"
	CategoryLunch     Category = "lunch"
	CategoryDinner    Category = "dinner"
	CategoryDessert   Category = "dessert"
	CategorySnack     Category = "snack"
	CategoryOther     Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryBreakfast,
	CategoryLunch,
	CategoryDinner,
	CategoryDessert,
	CategorySnack,
	CategoryOther,
}

// ParseCategory matches s case-insensitively against the category enum.
// Surrounding whitespace is ignored.
func ParseCategory(s string) (Category, error) {
	normalized := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, c := range Categories {
		if c == normalized {
			return c, nil
		}
	}
	return "", NewValidationError("category", fmt.Sprintf("unknown category %q", s))
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// Equal reports whether two categories match case-insensitively.
func (c Category) Equal(other Category) bool {
	return strings.EqualFold(string(c), string(other))
}

// PlaceKind identifies what a shared place or saved item refers to.
type PlaceKind string

const (
	PlaceRestaurant   PlaceKind = "restaurant"
	PlaceRecipe       PlaceKind = "recipe"
	PlaceGroceryStore PlaceKind = "grocery_store"
)

// ParsePlaceKind validates a place kind string.
func ParsePlaceKind(s string) (PlaceKind, error) {
	switch k := PlaceKind(strings.ToLower(strings.TrimSpace(s))); k {
	case PlaceRestaurant, PlaceRecipe, PlaceGroceryStore:
		return k, nil
	default:
		return "", NewValidationError("kind", fmt.Sprintf("unknown kind %q", s))
	}
}

// SharedPlace is restaurant/recipe context copied onto a post when it is shared.
// It is a snapshot: later changes to the place are not reflected.
type SharedPlace struct {
	Kind    PlaceKind `json:"kind"`
	PlaceID string    `json:"place_id"` // google_place_id for restaurants, API id for recipes
	Name    string    `json:"name"`
	City    string    `json:"city,omitempty"`
}

// Post is a feed entry. Likes and comments are held by the PostStore.
type Post struct {
	ID           string       `json:"id"`
	AuthorID     string       `json:"author_id"`
	Content      string       `json:"content"`
	Tags         []string     `json:"tags"` // order-preserving, not deduplicated
	Category     Category     `json:"category"`
	Location     string       `json:"location,omitempty"`
	SharedFromID string       `json:"shared_from_id,omitempty"`
	Place        *SharedPlace `json:"place,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Clone returns a deep copy so callers cannot mutate store-owned slices.
func (p *Post) Clone() Post {
	out := *p
	if p.Tags != nil {
		out.Tags = append([]string(nil), p.Tags...)
	}
	if p.Place != nil {
		place := *p.Place
		out.Place = &place
	}
	return out
}

// Comment is a reply attached to a post. Deleting the post deletes its comments.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostView is a post decorated for a particular viewer.
type PostView struct {
	Post
	LikeCount     int  `json:"like_count"`
	CommentCount  int  `json:"comment_count"`
	LikedByViewer bool `json:"liked_by_viewer"`
}
