// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package sources

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/mediafeed/internal/cache"
	"github.com/tomtom215/mediafeed/internal/media"
	"github.com/tomtom215/mediafeed/internal/metrics"
)

// CacheTTLs sets how long each operation's responses are kept.
// A zero TTL disables caching for that operation.
type CacheTTLs struct {
	Search   time.Duration
	Discover time.Duration
	Trending time.Duration
}

// Cached serves repeated provider calls from a cache.Store. Backend errors
// are logged and treated as misses so a broken cache never fails a call.
// Only successful responses are stored.
type Cached struct {
	next   Provider
	store  cache.Store
	ttls   CacheTTLs
	logger zerolog.Logger
}

// NewCached wraps next with store.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewCached(next Provider, store cache.Store, ttls CacheTTLs, logger zerolog.Logger) *Cached {
	return &Cached{
		next:  next,
		store: store,
		ttls:  ttls,
		logger: logger.With().
			Str("component", "source_cache").
			Str("provider", next.Name()).
			Str("backend", store.Name()).
			Logger(),
	}
}

func (c *Cached) Name() string { return c.next.Name() }

func (c *Cached) Search(ctx context.Context, kind media.Kind, query string) ([]media.Record, error) {
	key := cache.GenerateKey(c.next.Name(), OpSearch, string(kind), query)
	return c.lookup(ctx, key, c.ttls.Search, func() ([]media.Record, error) {
		return c.next.Search(ctx, kind, query)
	})
}

func (c *Cached) DiscoverByGenre(ctx context.Context, kind media.Kind, genre string, opts DiscoverOptions) ([]media.Record, error) {
	key := cache.GenerateKey(c.next.Name(), OpDiscover, string(kind), normalizeGenre(genre), opts.MaxRating)
	return c.lookup(ctx, key, c.ttls.Discover, func() ([]media.Record, error) {
		return c.next.DiscoverByGenre(ctx, kind, genre, opts)
	})
}

func (c *Cached) Trending(ctx context.Context, kind media.Kind) ([]media.Record, error) {
	key := cache.GenerateKey(c.next.Name(), OpTrending, string(kind))
	return c.lookup(ctx, key, c.ttls.Trending, func() ([]media.Record, error) {
		return c.next.Trending(ctx, kind)
	})
}

func (c *Cached) lookup(ctx context.Context, key string, ttl time.Duration, fetch func() ([]media.Record, error)) ([]media.Record, error) {
	if ttl <= 0 {
		return fetch()
	}

	data, ok, err := c.store.Get(ctx, key)
	switch {
	case err != nil:
		metrics.RecordCacheLookup(c.store.Name(), "error")
		c.logger.Warn().Err(err).Msg("cache get failed")
	case ok:
		var records []media.Record
		if err := json.Unmarshal(data, &records); err == nil {
			metrics.RecordCacheLookup(c.store.Name(), "hit")
			return records, nil
		}
		metrics.RecordCacheLookup(c.store.Name(), "error")
		c.logger.Warn().Str("key", key).Msg("discarding undecodable cache entry")
	default:
		metrics.RecordCacheLookup(c.store.Name(), "miss")
	}

	records, err := fetch()
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(records)
	if err != nil {
		c.logger.Warn().Err(err).Msg("cache encode failed")
		return records, nil
	}
	if err := c.store.Set(ctx, key, data, ttl); err != nil {
		c.logger.Warn().Err(err).Msg("cache set failed")
	}
	return records, nil
}
