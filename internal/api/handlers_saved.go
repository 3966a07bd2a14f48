// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package api

import (
	"net/http"

	"github.com/tomtom215/forkfeed/internal/social"
)

// ToggleSaved handles POST /api/v1/saved
// Saves or unsaves a restaurant, recipe or grocery store for the viewer.
func (h *Handler) ToggleSaved(w http.ResponseWriter, r *http.Request) {
	viewer, err := requireViewer(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	var req social.SaveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	req.UserID = viewer

	res, err := h.social.ToggleSaved(r.Context(), req)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(res)
}

// ListSaved handles GET /api/v1/saved?kind=
func (h *Handler) ListSaved(w http.ResponseWriter, r *http.Request) {
	viewer, err := requireViewer(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	items, err := h.social.ListSaved(r.Context(), viewer, r.URL.Query().Get("kind"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	NewResponseWriter(w, r).List(items, len(items))
}
