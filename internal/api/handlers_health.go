// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package api

import (
	"net/http"
	"time"
)

// HealthLive handles GET /api/v1/health/live.
// Returns 200 while the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// Health handles GET /api/v1/health with cache statistics.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"status": "healthy",
		"uptime": time.Since(h.startTime).Seconds(),
	}
	if h.cache != nil {
		stats := h.cache.GetStats()
		data["cache"] = map[string]interface{}{
			"hits":      stats.Hits,
			"misses":    stats.Misses,
			"evictions": stats.Evictions,
			"keys":      stats.TotalKeys,
			"hit_rate":  h.cache.HitRate(),
		}
	}
	NewResponseWriter(w, r).Success(data)
}
