// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package models

import (
	"fmt"
	"strings"
)

// FilterMode is the feed view mode.
type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterFollowing FilterMode = "following"
	FilterCategory  FilterMode = "category"
	FilterTrending  FilterMode = "trending"
)

// FilterSpec selects and orders the posts of a feed request.
// Category is only meaningful when Mode is FilterCategory.
type FilterSpec struct {
	Mode     FilterMode `json:"mode"`
	Category Category   `json:"category,omitempty"`
}

// AllPosts is the unfiltered, newest-first view.
func AllPosts() FilterSpec {
	return FilterSpec{Mode: FilterAll}
}

// FollowingOnly restricts the feed to authors the viewer follows.
func FollowingOnly() FilterSpec {
	return FilterSpec{Mode: FilterFollowing}
}

// Trending orders the feed by like count.
func Trending() FilterSpec {
	return FilterSpec{Mode: FilterTrending}
}

// InCategory restricts the feed to a single category.
func InCategory(c Category) FilterSpec {
	return FilterSpec{Mode: FilterCategory, Category: c}
}

// ParseFilterSpec parses the query form used by the HTTP layer:
// "", "all", "following", "trending" or "category=<name>".
// Matching is case-insensitive.
func ParseFilterSpec(raw string) (FilterSpec, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "", string(FilterAll):
		return AllPosts(), nil
	case string(FilterFollowing):
		return FollowingOnly(), nil
	case string(FilterTrending):
		return Trending(), nil
	}

	if name, ok := strings.CutPrefix(s, string(FilterCategory)+"="); ok {
		c, err := ParseCategory(name)
		if err != nil {
			return FilterSpec{}, NewValidationError("filter", fmt.Sprintf("unknown category %q", name))
		}
		return InCategory(c), nil
	}

	return FilterSpec{}, NewValidationError("filter", fmt.Sprintf("unknown filter %q", raw))
}

// String renders the filter in the same form ParseFilterSpec accepts.
func (f FilterSpec) String() string {
	if f.Mode == FilterCategory {
		return string(FilterCategory) + "=" + string(f.Category)
	}
	if f.Mode == "" {
		return string(FilterAll)
	}
	return string(f.Mode)
}

// Validate checks that the mode is known and a category filter names a category.
func (f FilterSpec) Validate() error {
	switch f.Mode {
	case "", FilterAll, FilterFollowing, FilterTrending:
		return nil
	case FilterCategory:
		if _, err := ParseCategory(string(f.Category)); err != nil {
			return err
		}
		return nil
	default:
		return NewValidationError("filter", fmt.Sprintf("unknown filter mode %q", f.Mode))
	}
}
