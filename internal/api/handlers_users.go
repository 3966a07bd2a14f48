// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/forkfeed/internal/social"
)

// CreateUser handles POST /api/v1/users
// The gateway-assigned X-User-ID becomes the user id.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	viewer, err := requireViewer(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	var req social.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	req.ID = viewer

	user, err := h.social.CreateUser(r.Context(), req)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(user)
}

// GetUser handles GET /api/v1/users/{userID}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.social.GetUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(user)
}

// ToggleFollow handles POST /api/v1/users/{userID}/follow
// Following yourself is rejected with SELF_REFERENCE.
func (h *Handler) ToggleFollow(w http.ResponseWriter, r *http.Request) {
	viewer, err := requireViewer(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	res, err := h.social.ToggleFollow(r.Context(), social.ToggleRequest{
		ActorID:  viewer,
		TargetID: chi.URLParam(r, "userID"),
	})
	if err != nil {
		WriteError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(res)
}

// Followers handles GET /api/v1/users/{userID}/followers
func (h *Handler) Followers(w http.ResponseWriter, r *http.Request) {
	ids, err := h.social.Followers(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	NewResponseWriter(w, r).List(ids, len(ids))
}

// Following handles GET /api/v1/users/{userID}/following
func (h *Handler) Following(w http.ResponseWriter, r *http.Request) {
	ids, err := h.social.Following(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	NewResponseWriter(w, r).List(ids, len(ids))
}
