// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package feed

import (
	"context"
	"fmt"

	"github.com/tomtom215/mediafeed/internal/media"
	"github.com/tomtom215/mediafeed/internal/sources"
)

// buildRestricted discovers safe-genre movies, TV and books under the
// rating ceiling and shuffles them. Games carry no rating data and are
// never consulted.
func (e *Engine) buildRestricted(ctx context.Context, b *build) []media.Item {
	maxAllowed := media.MaxRating(b.req.RestrictedRatings)
	teen := media.IsTeenRating(maxAllowed)

	genres, bookQuery, format := kidsGenres, kidsBookQuery, reasonKidsMode
	if teen {
		genres, bookQuery, format = teenGenres, teenBookQuery, reasonTeenMode
	}
	reason := genreReason(fmt.Sprintf(format, maxAllowed))
	opts := sources.DiscoverOptions{MaxRating: maxAllowed}

	var fetches []fetch
	for _, kind := range media.KindsFor(b.req.Filter) {
		switch kind {
		case media.KindMovie, media.KindTV:
			fetches = append(fetches, e.discoverFetch(kind, genres, opts, 0))
		case media.KindBook:
			fetches = append(fetches, e.discoverFetch(kind, bookQuery, opts, 0))
		}
	}

	dedup := NewDeduper()
	var items []media.Item
	for _, recs := range e.fetchAll(ctx, b, fetches) {
		items = acceptAll(items, dedup, withReason(recs, reason))
	}
	e.shuffle(items)

	if len(items) < e.cfg.RestrictedMinResults {
		b.logger.Debug().
			Str("max_rating", maxAllowed).
			Int("items", len(items)).
			Int("min_results", e.cfg.RestrictedMinResults).
			Msg("restricted feed below minimum size")
	}
	return items
}

// buildGenre discovers the genre across every kind matching the filter and
// ranks the union by quality score.
func (e *Engine) buildGenre(ctx context.Context, b *build) []media.Item {
	kinds := media.KindsFor(b.req.Filter)
	fetches := make([]fetch, 0, len(kinds))
	for _, kind := range kinds {
		fetches = append(fetches, e.discoverFetch(kind, b.req.Genre, sources.DiscoverOptions{}, 0))
	}

	reason := genreReason(fmt.Sprintf(reasonGenre, b.req.Genre))
	dedup := NewDeduper()
	var items []media.Item
	for _, recs := range e.fetchAll(ctx, b, fetches) {
		items = acceptAll(items, dedup, withReason(recs, reason))
	}
	SortByScore(items)
	return items
}
