// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for production observability:
// - Feed builds per mode (latency, size)
// - Source adapter calls (tmdb, rawg, googlebooks, library)
// - Circuit breakers guarding the remote sources
// - Response cache efficiency
// - HTTP API latency and throughput

var (
	// Feed Metrics
	FeedBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediafeed_feed_builds_total",
			Help: "Total number of feeds built",
		},
		[]string{"mode"}, // restricted, genre, signal, coldstart
	)

	FeedBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mediafeed_feed_build_duration_seconds",
			Help:    "Duration of feed builds in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"mode"},
	)

	FeedItems = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mediafeed_feed_items",
			Help:    "Number of items returned per feed",
			Buckets: []float64{0, 1, 5, 10, 15, 20, 24},
		},
		[]string{"mode"},
	)

	FeedInvalidRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mediafeed_feed_invalid_requests_total",
			Help: "Total number of feed requests rejected as invalid",
		},
	)

	// Source Adapter Metrics
	SourceRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediafeed_source_requests_total",
			Help: "Total number of source adapter calls",
		},
		[]string{"provider", "op", "result"}, // result: success, failure, timeout
	)

	SourceRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mediafeed_source_request_duration_seconds",
			Help:    "Duration of source adapter calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "op"},
	)

	SourceRateLimitWait = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mediafeed_source_rate_limit_wait_seconds",
			Help:    "Time spent waiting on the per-source rate limiter",
			Buckets: []float64{.001, .01, .05, .1, .5, 1, 5},
		},
		[]string{"provider"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mediafeed_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediafeed_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mediafeed_circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediafeed_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Cache Metrics
	CacheOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediafeed_cache_operations_total",
			Help: "Total number of response cache lookups",
		},
		[]string{"backend", "result"}, // result: hit, miss, error
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediafeed_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mediafeed_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 30},
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mediafeed_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// Source call results.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultTimeout = "timeout"
)

// RecordFeedBuild records a completed feed build
func RecordFeedBuild(mode string, items int, duration time.Duration) {
	FeedBuildsTotal.WithLabelValues(mode).Inc()
	FeedBuildDuration.WithLabelValues(mode).Observe(duration.Seconds())
	FeedItems.WithLabelValues(mode).Observe(float64(items))
}

// RecordSourceRequest records a source adapter call
func RecordSourceRequest(provider, op, result string, duration time.Duration) {
	SourceRequestsTotal.WithLabelValues(provider, op, result).Inc()
	SourceRequestDuration.WithLabelValues(provider, op).Observe(duration.Seconds())
}

// RecordRateLimitWait records time spent blocked on a source limiter
func RecordRateLimitWait(provider string, waited time.Duration) {
	SourceRateLimitWait.WithLabelValues(provider).Observe(waited.Seconds())
}

// RecordCacheLookup records a cache hit, miss or error
func RecordCacheLookup(backend, result string) {
	CacheOperations.WithLabelValues(backend, result).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, route, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
