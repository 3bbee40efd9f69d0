// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package sources

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/mediafeed/internal/media"
	"github.com/tomtom215/mediafeed/internal/metrics"
)

func TestCatalogRoutesByKind(t *testing.T) {
	tmdb := newFakeProvider("tmdb", movie("1", "Arrival"))
	books := newFakeProvider("googlebooks")
	games := newFakeProvider("rawg")

	c := NewCatalog(zerolog.Nop())
	c.Register(tmdb, media.KindMovie, media.KindTV)
	c.Register(books, media.KindBook)
	c.Register(games, media.KindGame)

	ctx := context.Background()

	got, err := c.Search(ctx, media.KindTV, "dark")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "search:tv:dark", tmdb.lastCall())

	_, err = c.DiscoverByGenre(ctx, media.KindBook, "fantasy", DiscoverOptions{MaxRating: "12"})
	require.NoError(t, err)
	assert.Equal(t, "discover:book:fantasy:12", books.lastCall())

	_, err = c.Trending(ctx, media.KindGame)
	require.NoError(t, err)
	assert.Equal(t, "trending:game", games.lastCall())

	assert.Equal(t, media.AllKinds, c.Kinds())
	assert.Equal(t, []string{"googlebooks", "rawg", "tmdb"}, c.Providers())
}

func TestCatalogNoProvider(t *testing.T) {
	c := NewCatalog(zerolog.Nop())
	c.Register(newFakeProvider("tmdb"), media.KindMovie)

	_, err := c.Search(context.Background(), media.KindGame, "zelda")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoProvider))

	assert.Equal(t, []media.Kind{media.KindMovie}, c.Kinds())
}

func TestCatalogRecordsMetrics(t *testing.T) {
	p := newFakeProvider("catalog-metrics-test")
	c := NewCatalog(zerolog.Nop())
	c.Register(p, media.KindMovie)

	_, _ = c.Trending(context.Background(), media.KindMovie)
	p.setErr(errors.New("boom"))
	_, _ = c.Trending(context.Background(), media.KindMovie)

	assert.Equal(t, 1.0, testutil.ToFloat64(
		metrics.SourceRequestsTotal.WithLabelValues("catalog-metrics-test", OpTrending, metrics.ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		metrics.SourceRequestsTotal.WithLabelValues("catalog-metrics-test", OpTrending, metrics.ResultFailure)))
}

func TestResultLabel(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, metrics.ResultSuccess, resultLabel(ctx, nil))
	assert.Equal(t, metrics.ResultFailure, resultLabel(ctx, errors.New("x")))
	assert.Equal(t, metrics.ResultTimeout, resultLabel(ctx, context.DeadlineExceeded))

	expired, cancel := context.WithTimeout(ctx, 0)
	defer cancel()
	<-expired.Done()
	assert.Equal(t, metrics.ResultTimeout, resultLabel(expired, errors.New("wrapped transport error")))
}
