// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/forkfeed/internal/logging"
	"github.com/tomtom215/forkfeed/internal/social"
)

// CreatePost handles POST /api/v1/posts
// The author is always the viewer; author_id in the body is ignored.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	viewer, err := requireViewer(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	var req social.CreatePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	req.AuthorID = viewer

	post, err := h.social.CreatePost(r.Context(), req)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(post)
}

// GetPost handles GET /api/v1/posts/{postID}
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.social.GetPost(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(post)
}

// DeletePost handles DELETE /api/v1/posts/{postID}
// Only the author may delete. Comments are removed with the post.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	viewer, err := requireViewer(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	postID := chi.URLParam(r, "postID")
	if err := h.social.DeletePost(r.Context(), viewer, postID); err != nil {
		WriteError(w, r, err)
		return
	}
	logging.Ctx(r.Context()).Info().Str("post_id", postID).Msg("Post deleted")
	NewResponseWriter(w, r).NoContent()
}

// ToggleLike handles POST /api/v1/posts/{postID}/like
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	viewer, err := requireViewer(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	res, err := h.social.ToggleLike(r.Context(), social.ToggleRequest{
		ActorID:  viewer,
		TargetID: chi.URLParam(r, "postID"),
	})
	if err != nil {
		WriteError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(res)
}

// commentBody is the JSON accepted by AddComment.
type commentBody struct {
	Text string `json:"text"`
}

// AddComment handles POST /api/v1/posts/{postID}/comments
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	viewer, err := requireViewer(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	var body commentBody
	if err := decodeJSON(w, r, &body); err != nil {
		WriteError(w, r, err)
		return
	}

	comment, err := h.social.AddComment(r.Context(), social.CommentRequest{
		AuthorID: viewer,
		PostID:   chi.URLParam(r, "postID"),
		Text:     body.Text,
	})
	if err != nil {
		WriteError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(comment)
}

// ListComments handles GET /api/v1/posts/{postID}/comments
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.social.ListComments(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	NewResponseWriter(w, r).List(comments, len(comments))
}

// DeleteComment handles DELETE /api/v1/comments/{commentID}
// The comment's author and the post's author may delete it.
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	viewer, err := requireViewer(r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	if err := h.social.DeleteComment(r.Context(), viewer, chi.URLParam(r, "commentID")); err != nil {
		WriteError(w, r, err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}
