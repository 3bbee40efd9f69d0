// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package sources

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/mediafeed/internal/media"
	"github.com/tomtom215/mediafeed/internal/metrics"
)

// Catalog routes calls to the provider registered for each media kind:
// movie and tv to TMDB, book to Google Books, game to RAWG in the default
// wiring. It is safe for concurrent use.
type Catalog struct {
	mu        sync.RWMutex
	providers map[media.Kind]Provider
	logger    zerolog.Logger
}

// NewCatalog creates an empty catalog.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewCatalog(logger zerolog.Logger) *Catalog {
	return &Catalog{
		providers: make(map[media.Kind]Provider),
		logger:    logger.With().Str("component", "sources").Logger(),
	}
}

// Register routes the given kinds to p, replacing any previous provider.
func (c *Catalog) Register(p Provider, kinds ...media.Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range kinds {
		c.providers[k] = p
	}
	c.logger.Debug().Str("provider", p.Name()).Interface("kinds", kinds).Msg("provider registered")
}

// ProviderFor returns the provider serving kind, or ErrNoProvider.
func (c *Catalog) ProviderFor(kind media.Kind) (Provider, error) {
	c.mu.RLock()
	p, ok := c.providers[kind]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoProvider, kind)
	}
	return p, nil
}

// Kinds returns the kinds that have a provider, in media.AllKinds order.
func (c *Catalog) Kinds() []media.Kind {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]media.Kind, 0, len(c.providers))
	for _, k := range media.AllKinds {
		if _, ok := c.providers[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// Providers returns the distinct registered provider names, sorted.
func (c *Catalog) Providers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[string]bool)
	for _, p := range c.providers {
		seen[p.Name()] = true
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Search runs a free-text search on the provider for kind.
func (c *Catalog) Search(ctx context.Context, kind media.Kind, query string) ([]media.Record, error) {
	return c.call(ctx, kind, OpSearch, func(p Provider) ([]media.Record, error) {
		return p.Search(ctx, kind, query)
	})
}

// DiscoverByGenre lists popular records of kind in genre.
func (c *Catalog) DiscoverByGenre(ctx context.Context, kind media.Kind, genre string, opts DiscoverOptions) ([]media.Record, error) {
	return c.call(ctx, kind, OpDiscover, func(p Provider) ([]media.Record, error) {
		return p.DiscoverByGenre(ctx, kind, genre, opts)
	})
}

// Trending lists currently trending records of kind.
func (c *Catalog) Trending(ctx context.Context, kind media.Kind) ([]media.Record, error) {
	return c.call(ctx, kind, OpTrending, func(p Provider) ([]media.Record, error) {
		return p.Trending(ctx, kind)
	})
}

func (c *Catalog) call(ctx context.Context, kind media.Kind, op string, fn func(Provider) ([]media.Record, error)) ([]media.Record, error) {
	p, err := c.ProviderFor(kind)
	if err != nil {
		metrics.RecordSourceRequest("none", op, metrics.ResultFailure, 0)
		return nil, err
	}

	start := time.Now()
	records, err := fn(p)
	metrics.RecordSourceRequest(p.Name(), op, resultLabel(ctx, err), time.Since(start))
	if err != nil {
		return nil, err
	}
	return records, nil
}

// resultLabel classifies a call outcome for the source request metrics.
func resultLabel(ctx context.Context, err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return metrics.ResultTimeout
	default:
		return metrics.ResultFailure
	}
}
