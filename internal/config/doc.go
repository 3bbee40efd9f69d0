// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

/*
Package config provides centralized configuration management for mediafeed.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file (CONFIG_PATH or config.yaml), then environment variables.

# Environment Variables

Metadata sources:
  - TMDB_API_KEY, TMDB_BASE_URL, TMDB_LANGUAGE (default: pt-BR), TMDB_REGION (default: BR)
  - RAWG_API_KEY, RAWG_BASE_URL
  - GOOGLE_BOOKS_API_KEY, GOOGLE_BOOKS_LANGUAGE, GOOGLE_BOOKS_TRENDING_QUERY
  - <SOURCE>_TIMEOUT, <SOURCE>_RATE_LIMIT, <SOURCE>_BURST, <SOURCE>_ENABLED

Storage:
  - DATABASE_DRIVER: sqlite or postgres (default: sqlite)
  - DATABASE_DSN: file path or connection URL
  - DATABASE_SEED_FILE: optional YAML library seed
  - CACHE_BACKEND: memory, badger, redis or none (default: memory)
  - REDIS_ADDR, REDIS_PASSWORD, REDIS_DB, CACHE_BADGER_PATH

Feed engine:
  - FEED_MAX_ITEMS (default: 24), FEED_SEED_COUNT (default: 5)
  - FEED_WEIGHT_OWN, FEED_WEIGHT_BOOK, FEED_WEIGHT_GAME, FEED_WEIGHT_MOVIE
  - FEED_TRENDING_LAST_RESORT (default: true)
  - FEED_RANDOM_SEED: fixed RNG seed, 0 seeds from the clock

Server:
  - HTTP_HOST, HTTP_PORT (default: 8080), ENVIRONMENT
  - CORS_ORIGINS (comma-separated), RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("failed to load configuration")
	}
*/
package config
