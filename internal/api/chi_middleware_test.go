// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/forkfeed/internal/config"
	"github.com/tomtom215/forkfeed/internal/middleware"
)

func TestRateLimit_RejectsWithEnvelope(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	a := newTestAPI(t, cfg)

	for i := 0; i < 2; i++ {
		rec, _ := a.do(t, http.MethodGet, "/api/v1/tags/trending", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d = %d", i, rec.Code)
		}
	}
	rec, env := a.do(t, http.MethodGet, "/api/v1/tags/trending", "", nil)
	expectError(t, rec, env, http.StatusTooManyRequests, ErrCodeTooManyRequests)

	// Health probes are outside the limited group.
	rec, _ = a.do(t, http.MethodGet, "/api/v1/health/live", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("health after limit = %d", rec.Code)
	}
}

func TestRateLimit_KeyedPerViewer(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 1
	cfg.RateLimitWindow = time.Minute
	a := newTestAPI(t, cfg)

	if rec, _ := a.do(t, http.MethodGet, "/api/v1/tags/trending", "alice", nil); rec.Code != http.StatusOK {
		t.Fatalf("alice = %d", rec.Code)
	}
	if rec, _ := a.do(t, http.MethodGet, "/api/v1/tags/trending", "bob", nil); rec.Code != http.StatusOK {
		t.Errorf("bob shares alice's bucket: %d", rec.Code)
	}
	if rec, _ := a.do(t, http.MethodGet, "/api/v1/tags/trending", "alice", nil); rec.Code != http.StatusTooManyRequests {
		t.Errorf("alice second request = %d, want 429", rec.Code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true, RateLimitRequests: 1, RateLimitWindow: time.Minute})
	handler := m.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d = %d", i, rec.Code)
		}
	}
}

func TestCORS_Preflight(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://app.forkfeed.example"}
	cfg.RateLimitDisabled = true
	a := newTestAPI(t, cfg)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/posts", nil)
	req.Header.Set("Origin", "https://app.forkfeed.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", middleware.HeaderUserID)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.forkfeed.example" {
		t.Errorf("Allow-Origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/tags/trending", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin echoed: %q", got)
	}
}

func TestChiMiddlewareConfigFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		in         config.APIConfig
		wantReqs   int
		wantWindow time.Duration
	}{
		{"explicit", config.APIConfig{CORSOrigins: []string{"a"}, RateLimitRequests: 10, RateLimitWindow: time.Second}, 10, time.Second},
		{"zero keeps defaults", config.APIConfig{}, 100, time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ChiMiddlewareConfigFrom(&tt.in)
			if got.RateLimitRequests != tt.wantReqs || got.RateLimitWindow != tt.wantWindow {
				t.Errorf("got %d/%s, want %d/%s", got.RateLimitRequests, got.RateLimitWindow, tt.wantReqs, tt.wantWindow)
			}
			if len(got.CORSAllowedOrigins) != len(tt.in.CORSOrigins) {
				t.Errorf("origins = %v", got.CORSAllowedOrigins)
			}
		})
	}
}
