// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package sources

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/mediafeed/internal/media"
	"github.com/tomtom215/mediafeed/internal/metrics"
)

// Limited wraps a Provider with a token bucket. Every call waits for a
// token or for ctx to end, whichever comes first.
type Limited struct {
	next    Provider
	limiter *rate.Limiter
}

// NewLimited limits next to rps requests per second with the given burst.
// A non-positive rps returns next unchanged.
func NewLimited(next Provider, rps float64, burst int) Provider {
	if rps <= 0 {
		return next
	}
	if burst < 1 {
		burst = 1
	}
	return &Limited{next: next, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (l *Limited) Name() string { return l.next.Name() }

func (l *Limited) Search(ctx context.Context, kind media.Kind, query string) ([]media.Record, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	return l.next.Search(ctx, kind, query)
}

func (l *Limited) DiscoverByGenre(ctx context.Context, kind media.Kind, genre string, opts DiscoverOptions) ([]media.Record, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	return l.next.DiscoverByGenre(ctx, kind, genre, opts)
}

func (l *Limited) Trending(ctx context.Context, kind media.Kind) ([]media.Record, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	return l.next.Trending(ctx, kind)
}

func (l *Limited) wait(ctx context.Context) error {
	start := time.Now()
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s rate limit wait: %w", l.next.Name(), err)
	}
	metrics.RecordRateLimitWait(l.next.Name(), time.Since(start))
	return nil
}
