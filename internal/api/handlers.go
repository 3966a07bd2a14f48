// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/forkfeed/internal/cache"
	"github.com/tomtom215/forkfeed/internal/feed"
	"github.com/tomtom215/forkfeed/internal/middleware"
	"github.com/tomtom215/forkfeed/internal/models"
	"github.com/tomtom215/forkfeed/internal/social"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Handler serves the Forkfeed JSON API.
type Handler struct {
	social    *social.Service
	feed      *feed.Ranker
	suggester feed.Suggester
	cache     cache.Cacher
	startTime time.Time
}

// NewHandler creates a Handler. c is reported by the health endpoint and
// may be nil.
func NewHandler(svc *social.Service, ranker *feed.Ranker, suggester feed.Suggester, c cache.Cacher) *Handler {
	return &Handler{
		social:    svc,
		feed:      ranker,
		suggester: suggester,
		cache:     c,
		startTime: time.Now(),
	}
}

// requireViewer returns the X-User-ID of the request or ErrMissingViewer.
func requireViewer(r *http.Request) (string, error) {
	viewer := middleware.ViewerID(r.Context())
	if viewer == "" {
		return "", ErrMissingViewer
	}
	return viewer, nil
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrMalformedBody)
		}
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return nil
}

// parseFilter reads the filter query parameter (all, following, trending,
// category=<name>).
func parseFilter(r *http.Request) (models.FilterSpec, error) {
	return models.ParseFilterSpec(r.URL.Query().Get("filter"))
}

// parseLimit reads a positive integer query parameter. An absent value
// yields 0 so the callee applies its default.
func parseLimit(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, models.NewValidationError(key, "must be a positive integer")
	}
	return n, nil
}

// parseBool reads a boolean query parameter, false when absent.
func parseBool(r *http.Request, key string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, models.NewValidationError(key, "must be a boolean")
	}
	return b, nil
}
