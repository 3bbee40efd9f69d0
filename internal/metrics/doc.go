// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

/*
Package metrics provides Prometheus metrics collection and export for observability.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8484/metrics

# Available Metrics

Feed Metrics:
  - mediafeed_feed_builds_total: Feeds built (counter), labels: mode
  - mediafeed_feed_build_duration_seconds: Build latency (histogram), labels: mode
  - mediafeed_feed_items: Items per feed (histogram), labels: mode

Source Metrics:
  - mediafeed_source_requests_total: Adapter calls (counter)
    Labels: provider, op, result (success, failure, timeout)
  - mediafeed_source_request_duration_seconds: Adapter latency (histogram)
  - mediafeed_source_rate_limit_wait_seconds: Limiter wait time (histogram)

Circuit Breaker Metrics:
  - mediafeed_circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - mediafeed_circuit_breaker_requests_total: labels: name, result
  - mediafeed_circuit_breaker_state_transitions_total: labels: name, from_state, to_state

Cache Metrics:
  - mediafeed_cache_operations_total: labels: backend, result (hit, miss, error)

HTTP Metrics:
  - mediafeed_http_requests_total: labels: method, route, status
  - mediafeed_http_request_duration_seconds: labels: method, route
  - mediafeed_http_requests_in_flight: gauge

All collectors are registered with the default registry through promauto, so
importing this package is enough to expose them.
*/
package metrics
