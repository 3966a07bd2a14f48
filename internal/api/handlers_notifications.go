// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListNotifications handles GET /api/v1/notifications?unread=
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	viewer, err := requireViewer(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	unread, err := parseBool(r, "unread")
	if err != nil {
		WriteError(w, r, err)
		return
	}

	notes, err := h.social.ListNotifications(r.Context(), viewer, unread)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	NewResponseWriter(w, r).List(notes, len(notes))
}

// MarkNotificationRead handles POST /api/v1/notifications/{notificationID}/read
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	viewer, err := requireViewer(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	if err := h.social.MarkNotificationRead(r.Context(), viewer, chi.URLParam(r, "notificationID")); err != nil {
		WriteError(w, r, err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}

// MarkAllNotificationsRead handles POST /api/v1/notifications/read-all
func (h *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	viewer, err := requireViewer(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	n, err := h.social.MarkAllNotificationsRead(r.Context(), viewer)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(map[string]int{"marked": n})
}
