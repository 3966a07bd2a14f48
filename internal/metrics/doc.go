// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

/*
Package metrics provides Prometheus metrics collection and export for observability.

Collectors are registered with the default registry through promauto and
exposed by the API router at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Recommendation Metrics:
  - suggestion_cache_hits_total / suggestion_cache_misses_total
  - suggestion_compute_duration_seconds: Time to compute a list on a miss
  - suggestion_random_padding_total: Slots filled by random sampling

Feed and Social Metrics:
  - feed_requests_total: Labels: filter
  - feed_posts_returned: Posts per response (histogram)
  - toggle_operations_total: Labels: kind (like, follow, saved), state (on, off)
  - notifications_created_total: Labels: type
  - events_published_total: Labels: topic, result

Storage and Cache Metrics:
  - store_operation_duration_seconds / store_operation_errors_total
    Labels: backend, operation
  - cache_breaker_state: 0=closed, 1=half-open, 2=open. Labels: breaker

# Usage

	start := time.Now()
	ids, err := engine.SuggestUsers(ctx, viewer)
	metrics.RecordSuggestion(false, time.Since(start), padded)

All Record helpers are safe for concurrent use.
*/
package metrics
