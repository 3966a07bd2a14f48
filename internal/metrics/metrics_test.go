// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/feed", "200"))

	RecordAPIRequest("GET", "/api/v1/feed", "200", 15*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/feed", "200"))
	if after-before != 1 {
		t.Errorf("Expected counter to increase by 1, got %f", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 2 {
		t.Errorf("Expected 2 active requests, got %f", got)
	}

	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 0 {
		t.Errorf("Expected 0 active requests, got %f", got)
	}
}

func TestRecordSuggestion(t *testing.T) {
	hits := testutil.ToFloat64(SuggestionCacheHits)
	misses := testutil.ToFloat64(SuggestionCacheMisses)
	padded := testutil.ToFloat64(SuggestionPadded)

	RecordSuggestion(true, 0, 0)
	RecordSuggestion(false, time.Millisecond, 3)

	if got := testutil.ToFloat64(SuggestionCacheHits) - hits; got != 1 {
		t.Errorf("Expected 1 hit, got %f", got)
	}
	if got := testutil.ToFloat64(SuggestionCacheMisses) - misses; got != 1 {
		t.Errorf("Expected 1 miss, got %f", got)
	}
	if got := testutil.ToFloat64(SuggestionPadded) - padded; got != 3 {
		t.Errorf("Expected 3 padded slots, got %f", got)
	}
}

func TestRecordToggle(t *testing.T) {
	tests := []struct {
		kind   string
		active bool
		state  string
	}{
		{"like", true, "on"},
		{"like", false, "off"},
		{"follow", true, "on"},
		{"saved", false, "off"},
	}

	for _, tt := range tests {
		t.Run(tt.kind+"_"+tt.state, func(t *testing.T) {
			before := testutil.ToFloat64(ToggleOperationsTotal.WithLabelValues(tt.kind, tt.state))
			RecordToggle(tt.kind, tt.active)
			after := testutil.ToFloat64(ToggleOperationsTotal.WithLabelValues(tt.kind, tt.state))
			if after-before != 1 {
				t.Errorf("Expected %s/%s to increase by 1, got %f", tt.kind, tt.state, after-before)
			}
		})
	}
}

func TestRecordEventPublish(t *testing.T) {
	okBefore := testutil.ToFloat64(EventsPublished.WithLabelValues("post.liked", "ok"))
	errBefore := testutil.ToFloat64(EventsPublished.WithLabelValues("post.liked", "error"))

	RecordEventPublish("post.liked", nil)
	RecordEventPublish("post.liked", errors.New("closed"))

	if got := testutil.ToFloat64(EventsPublished.WithLabelValues("post.liked", "ok")) - okBefore; got != 1 {
		t.Errorf("Expected 1 ok publish, got %f", got)
	}
	if got := testutil.ToFloat64(EventsPublished.WithLabelValues("post.liked", "error")) - errBefore; got != 1 {
		t.Errorf("Expected 1 failed publish, got %f", got)
	}
}

func TestRecordStoreOperation(t *testing.T) {
	before := testutil.ToFloat64(StoreOperationErrors.WithLabelValues("badger", "toggle_like"))

	RecordStoreOperation("badger", "toggle_like", time.Millisecond, nil)
	RecordStoreOperation("badger", "toggle_like", time.Millisecond, errors.New("conflict"))

	if got := testutil.ToFloat64(StoreOperationErrors.WithLabelValues("badger", "toggle_like")) - before; got != 1 {
		t.Errorf("Expected 1 store error, got %f", got)
	}
}

func TestConcurrentRecording(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				RecordFeedRequest("all", j)
				RecordNotification("LIKE")
			}
		}()
	}
	wg.Wait()
}

// TestMetricGathering tests that metrics can be gathered using testutil
func TestMetricGathering(t *testing.T) {
	RecordAPIRequest("POST", "/api/v1/posts", "201", time.Millisecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("GatherAndLint failed: %v", err)
	}
	for _, p := range problems {
		t.Errorf("metric lint problem %s: %s", p.Metric, p.Text)
	}
}
