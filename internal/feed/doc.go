// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

/*
Package feed builds the blended recommendation feed.

The Engine turns a user's rating and like history, an optional media kind
filter, an optional genre and an optional set of allowed content ratings
into one deduplicated, ranked list of at most Config.MaxItems items, each
carrying the reason it was recommended.

# Modes

Exactly one mode runs per request, chosen by precedence:

  - ModeRestricted: a rating set is present. Movies, TV and books are
    discovered from safe genres under the rating ceiling and shuffled.
  - ModeGenre: a genre is present. Every kind matching the filter is
    discovered in parallel and sorted by quality score.
  - ModeSignal: the user has high ratings or likes. Up to SeedCount seeds
    are searched in parallel and interleaved round-robin.
  - ModeColdStart: no signals. The curated local library comes first,
    topped up with trending content from the remote sources.

Profile genre preferences are blended into the signal and cold-start
feeds when a PreferenceStore is configured.

# Failure Semantics

Every source call runs with its own timeout. A failing or slow source is
logged at warn level and contributes nothing; BuildFeed only fails on
invalid input (InputError, matching ErrInvalidRequest) or when the caller's
context is done.

# Thread Safety

An Engine is safe for concurrent use. The random source is guarded by a
mutex and can be injected with WithRand for deterministic tests.
*/
package feed
