// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

/*
Package store persists the curated local library, user signals (ratings and
likes) and profile genre preferences in a SQL database.

Two dialects are supported through database/sql:

  - sqlite (modernc.org/sqlite, pure Go, the default)
  - postgres (github.com/lib/pq)

Queries are written once with "?" placeholders and rebound to "$n" for
PostgreSQL. The schema is managed by versioned migrations recorded in the
schema_migrations table; Open applies pending migrations.

Tables:
  - library_items: curated records served in cold start (kind, title, scores, genres)
  - user_ratings: 1-5 star ratings, one per user and media id
  - user_likes: likes, one per user and media id
  - user_preferences: ordered profile genres

Timestamps are stored as Unix milliseconds so both dialects share one schema.

The store satisfies the feed engine's Library, SignalStore and
PreferenceStore interfaces.
*/
package store
