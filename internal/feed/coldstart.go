// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package feed

import (
	"context"

	"github.com/tomtom215/mediafeed/internal/media"
)

// coldStartOrder is the order library partitions are deduplicated in.
var coldStartOrder = []media.Kind{media.KindGame, media.KindBook, media.KindTV, media.KindMovie}

// buildColdStart serves the curated library first and tops it up with
// trending content. Every local item precedes every remote one.
func (e *Engine) buildColdStart(ctx context.Context, b *build, meta *Metadata) []media.Item {
	cs := &e.cfg.ColdStart
	prefCh := e.startPreferences(ctx, b)

	var fetches []fetch
	for _, kind := range coldStartOrder {
		if !kind.Matches(b.req.Filter) {
			continue
		}
		if limit := cs.localLimit(kind); limit > 0 {
			fetches = append(fetches, e.libraryFetch(kind, limit))
		}
	}

	dedup := NewDeduper()
	var local []media.Item
	for i, recs := range e.fetchAll(ctx, b, fetches) {
		local = acceptAll(local, dedup, withReason(recs, localReason(fetches[i].kind)))
	}

	var remote []media.Item
	if len(local) < cs.TrendingThreshold {
		remote = e.coldStartTrending(ctx, b, dedup, len(local))
	}

	pref := <-prefCh
	meta.PreferenceGenres = pref.genres
	remote = acceptAll(remote, dedup, pref.items)

	return MergePartitions(local, remote)
}

// coldStartTrending adds trending movies and TV, then trending games when
// the feed is still short.
func (e *Engine) coldStartTrending(ctx context.Context, b *build, dedup *Deduper, localCount int) []media.Item {
	cs := &e.cfg.ColdStart

	var (
		fetches []fetch
		reasons []media.Reason
	)
	if media.KindMovie.Matches(b.req.Filter) && cs.TrendingMovies > 0 {
		fetches = append(fetches, e.trendingFetch(media.KindMovie, cs.TrendingMovies))
		reasons = append(reasons, popular(reasonPopularNow))
	}
	if media.KindTV.Matches(b.req.Filter) && cs.TrendingTV > 0 {
		fetches = append(fetches, e.trendingFetch(media.KindTV, cs.TrendingTV))
		reasons = append(reasons, popular(reasonTrendingTV))
	}

	var remote []media.Item
	for i, recs := range e.fetchAll(ctx, b, fetches) {
		remote = acceptAll(remote, dedup, withReason(recs, reasons[i]))
	}

	if localCount+len(remote) < cs.GameFillThreshold &&
		media.KindGame.Matches(b.req.Filter) && cs.TrendingGamesLimit > 0 {
		games := e.fetchAll(ctx, b, []fetch{e.trendingFetch(media.KindGame, cs.TrendingGamesLimit)})
		remote = acceptAll(remote, dedup, withReason(games[0], popular(reasonFeatured)))
	}
	return remote
}
