// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package sources

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/mediafeed/internal/media"
)

var (
	// ErrNoProvider is returned by the Catalog for a kind with no registered provider.
	ErrNoProvider = errors.New("no provider for media kind")

	// ErrBreakerOpen is returned when a provider's circuit breaker rejects a call.
	ErrBreakerOpen = errors.New("circuit breaker open")

	// ErrUnsupportedKind is returned by an adapter asked for a kind it does not serve.
	ErrUnsupportedKind = errors.New("kind not supported by provider")
)

// Operation names used for metrics, cache keys and logs.
const (
	OpSearch   = "search"
	OpDiscover = "discover"
	OpTrending = "trending"
)

// DiscoverOptions narrows a genre discovery call.
type DiscoverOptions struct {
	// MaxRating is the highest allowed content rating (e.g. "12").
	// Empty means unrestricted. Providers without rating data ignore it.
	MaxRating string
}

// Provider is a remote metadata source serving one or more media kinds.
// Implementations must be safe for concurrent use and must return records
// that are already normalized (0-10 vote scale, source-qualified ids).
type Provider interface {
	// Name identifies the provider in metrics and logs (e.g. "tmdb").
	Name() string

	Search(ctx context.Context, kind media.Kind, query string) ([]media.Record, error)
	DiscoverByGenre(ctx context.Context, kind media.Kind, genre string, opts DiscoverOptions) ([]media.Record, error)
	Trending(ctx context.Context, kind media.Kind) ([]media.Record, error)
}

// StatusError reports a non-2xx response from a provider.
type StatusError struct {
	Provider   string
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Provider, e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Provider, e.Op, e.StatusCode, e.Body)
}

// Temporary reports whether the status is worth retrying later.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// UnsupportedKind returns an error wrapping ErrUnsupportedKind.
func UnsupportedKind(provider string, kind media.Kind) error {
	return fmt.Errorf("%s: %w: %s", provider, ErrUnsupportedKind, kind)
}
