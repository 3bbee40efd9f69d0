// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

// Package logging provides centralized zerolog-based logging for mediafeed.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Msg("Server starting")
//	logging.Error().Err(err).Msg("Operation failed")
//
//	// With request context (request_id, correlation_id)
//	logging.Ctx(ctx).Info().Str("user_id", userID).Msg("feed served")
//
// Components receive a zerolog.Logger at construction time and derive a
// sub-logger with a component field:
//
//	logger.With().Str("component", "feed").Logger()
//
// # Configuration
//
// Level and format come from the logging section of the application config
// (LOG_LEVEL, LOG_FORMAT, LOG_CALLER in the environment).
//
// # Credentials
//
// Source adapters put API keys in query strings. Use RedactURL before
// logging a request URL.
//
// # slog Bridge
//
// SlogHandler lets slog-only libraries (sutureslog) write through zerolog.
package logging
