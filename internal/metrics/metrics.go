// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	SuggestionCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "suggestion_cache_hits_total",
			Help: "Total number of suggestion lists served from cache",
		},
	)

	SuggestionCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "suggestion_cache_misses_total",
			Help: "Total number of suggestion lists computed on a cache miss",
		},
	)

	SuggestionComputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "suggestion_compute_duration_seconds",
			Help:    "Time spent computing a suggestion list",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	SuggestionPadded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "suggestion_random_padding_total",
			Help: "Total number of suggestion slots filled by random sampling",
		},
	)

	// Feed Metrics
	FeedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_requests_total",
			Help: "Total number of feed requests by filter mode",
		},
		[]string{"filter"},
	)

	FeedPostsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_posts_returned",
			Help:    "Number of posts returned per feed request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	// Social Metrics
	ToggleOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toggle_operations_total",
			Help: "Total number of membership toggles by kind and resulting state",
		},
		[]string{"kind", "state"}, // kind: like, follow, saved; state: on, off
	)

	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_created_total",
			Help: "Total number of notifications created",
		},
		[]string{"type"},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of domain events published",
		},
		[]string{"topic", "result"}, // result: ok, error
	)

	// Storage Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of storage backend operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "Total number of storage backend errors",
		},
		[]string{"backend", "operation"},
	)

	// Cache Metrics
	CacheBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_breaker_state",
			Help: "Cache circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"breaker"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements active request counter
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordSuggestion records one SuggestUsers call.
// padded is the number of slots filled from the random sample.
func RecordSuggestion(cacheHit bool, duration time.Duration, padded int) {
	if cacheHit {
		SuggestionCacheHits.Inc()
		return
	}
	SuggestionCacheMisses.Inc()
	SuggestionComputeDuration.Observe(duration.Seconds())
	if padded > 0 {
		SuggestionPadded.Add(float64(padded))
	}
}

// RecordFeedRequest records a feed request and its result size
func RecordFeedRequest(filterMode string, posts int) {
	FeedRequestsTotal.WithLabelValues(filterMode).Inc()
	FeedPostsReturned.Observe(float64(posts))
}

// RecordToggle records the outcome of a like, follow or saved toggle
func RecordToggle(kind string, active bool) {
	state := "off"
	if active {
		state = "on"
	}
	ToggleOperationsTotal.WithLabelValues(kind, state).Inc()
}

// RecordNotification records a created notification
func RecordNotification(notificationType string) {
	NotificationsCreated.WithLabelValues(notificationType).Inc()
}

// RecordEventPublish records a domain event publish attempt
func RecordEventPublish(topic string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	EventsPublished.WithLabelValues(topic, result).Inc()
}

// RecordStoreOperation records a storage backend call
func RecordStoreOperation(backend, operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(backend, operation).Inc()
	}
}
