// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

/*
Package middleware provides HTTP middleware shared by the API router.

Key Components:

  - RequestID: UUID-based request tracking, integrated with the logging
    package so every log line of a request carries request_id and
    correlation_id
  - PrometheusMetrics: request counters and latency histograms labelled by
    the chi route pattern rather than the raw path, keeping label
    cardinality bounded for /api/v1/feed/{userID}
  - AccessLog: one structured zerolog line per request

All middleware use the http.HandlerFunc signature; the api package adapts
them to chi's func(http.Handler) http.Handler form.
*/
package middleware
