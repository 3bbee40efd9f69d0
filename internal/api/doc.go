// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

/*
Package api exposes the feed engine over HTTP using the chi router.

Routes:

	GET /api/v1/feed/{userID}?kind=&genre=&ratings=L,10   build a feed
	GET /api/v1/stats                                     engine counters and library size
	GET /api/v1/health/live                               liveness probe
	GET /api/v1/health/ready                              readiness probe, pings the database
	GET /metrics                                          Prometheus exposition

Every JSON response uses the APIResponse envelope:

	{"success": true, "data": {...}, "metadata": {"request_id": "...", "timestamp": "...", "duration_ms": 12}}
	{"success": false, "error": {"code": "VALIDATION_ERROR", "message": "..."}, "metadata": {...}}

Query parameters are validated with go-playground/validator before the
engine is called. kind accepts movie, tv, book, game or all; ratings is a
comma-separated subset of L,10,12,14,16,18 and switches the engine into
restricted mode.

Middleware order: RealIP, RequestID, AccessLog, Recoverer, PrometheusMetrics,
CORS, then per-group rate limiting and security headers.
*/
package api
