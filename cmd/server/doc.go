// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

/*
Package main is the entry point for the mediafeed HTTP server.

mediafeed blends movies and TV (TMDB), books (Google Books), games (RAWG)
and a curated local library into one deduplicated, reasoned feed per user.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("mediafeed")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── Cache GC (badger backend only)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment variables
 2. Logging: zerolog with JSON/console output modes
 3. Database: SQLite (modernc) or PostgreSQL, migrations, optional seed file
 4. Response cache: memory, badger, redis or none
 5. Source catalog: rate limiter, circuit breaker and cache around each adapter
 6. Feed engine
 7. Supervisor tree and HTTP server (chi router)

# Configuration

	# Server
	HTTP_PORT=8080
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Storage
	DATABASE_DRIVER=sqlite       # sqlite or postgres
	DATABASE_DSN=/data/mediafeed.db
	DATABASE_SEED_FILE=/data/seed.yaml
	CACHE_BACKEND=memory         # memory, badger, redis or none

	# Sources
	TMDB_API_KEY=...
	RAWG_API_KEY=...
	GOOGLE_BOOKS_API_KEY=...

# Endpoints

	GET /api/v1/feed/{userID}?kind=&genre=&ratings=L,10
	GET /api/v1/stats
	GET /api/v1/health/live
	GET /api/v1/health/ready
	GET /metrics

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests for HTTP_SHUTDOWN_TIMEOUT before the cache and
database are closed.
*/
package main
