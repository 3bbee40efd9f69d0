// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

/*
Package sources defines the remote metadata provider contract and the
plumbing shared by every provider.

A Provider answers three questions for the kinds it serves: free-text
search, discovery by genre and a trending list. Adapters live in the
tmdb, rawg and googlebooks subpackages and normalize their payloads into
media.Record before returning.

The Catalog routes each call to the provider registered for the requested
kind and records request metrics. Providers are usually wrapped with the
resilience decorators before registration, cache outermost so a hit costs
neither a rate limit token nor a breaker slot:

	var p sources.Provider = tmdb.New(cfg.Sources.TMDB)
	p = sources.NewLimited(p, cfg.Sources.TMDB.RateLimit, cfg.Sources.TMDB.Burst)
	p = sources.NewBreaker(p, sources.DefaultBreakerConfig(), logger)
	p = sources.NewCached(p, store, "memory", ttls, logger)
	catalog.Register(p, media.KindMovie, media.KindTV)
*/
package sources
