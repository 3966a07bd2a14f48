// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package api

import (
	"net/http"

	"github.com/tomtom215/forkfeed/internal/middleware"
)

// Feed handles GET /api/v1/feed?filter=
// Anonymous viewers get every filter except following.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	home, err := h.feed.Home(r.Context(), middleware.ViewerID(r.Context()), filter)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(home)
}

// TrendingTags handles GET /api/v1/tags/trending?filter=&limit=
func (h *Handler) TrendingTags(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	limit, err := parseLimit(r, "limit")
	if err != nil {
		WriteError(w, r, err)
		return
	}

	tags, err := h.feed.TrendingTags(r.Context(), middleware.ViewerID(r.Context()), filter, limit)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	NewResponseWriter(w, r).List(tags, len(tags))
}

// Suggestions handles GET /api/v1/suggestions
// Returns up to five user ids for the viewer to follow.
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	viewer, err := requireViewer(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	ids, err := h.suggester.SuggestUsers(r.Context(), viewer)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	NewResponseWriter(w, r).List(ids, len(ids))
}
