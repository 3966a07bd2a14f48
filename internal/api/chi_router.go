// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/forkfeed/internal/middleware"
)

// NewRouter configures all HTTP routes using Chi router.
func NewRouter(h *Handler, mw *ChiMiddleware) http.Handler {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}

	r := chi.NewRouter()

	// Global middleware, applied to all routes in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS()) // global so OPTIONS preflight is answered
	r.Use(middleware.Viewer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
	})

	r.Handle("/metrics", promhttp.Handler())

	// Health probes skip rate limiting
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", h.HealthLive)
		r.Get("/", h.Health)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/feed", h.Feed)
		r.Get("/suggestions", h.Suggestions)
		r.Get("/tags/trending", h.TrendingTags)

		r.Post("/users", h.CreateUser)
		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/", h.GetUser)
			r.Post("/follow", h.ToggleFollow)
			r.Get("/followers", h.Followers)
			r.Get("/following", h.Following)
		})

		r.Post("/posts", h.CreatePost)
		r.Route("/posts/{postID}", func(r chi.Router) {
			r.Get("/", h.GetPost)
			r.Delete("/", h.DeletePost)
			r.Post("/like", h.ToggleLike)
			r.Post("/comments", h.AddComment)
			r.Get("/comments", h.ListComments)
		})
		r.Delete("/comments/{commentID}", h.DeleteComment)

		r.Post("/saved", h.ToggleSaved)
		r.Get("/saved", h.ListSaved)

		r.Get("/notifications", h.ListNotifications)
		r.Post("/notifications/read-all", h.MarkAllNotificationsRead)
		r.Post("/notifications/{notificationID}/read", h.MarkNotificationRead)
	})

	return r
}
