// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package feed

import (
	"context"

	"github.com/tomtom215/mediafeed/internal/media"
)

// loadSignals returns the user's qualifying signals, high ratings first,
// deduplicated by media id. A failed lookup counts as no signals.
func (e *Engine) loadSignals(ctx context.Context, b *build) []media.Signal {
	var sig media.Signals
	ok := e.guard(ctx, b, "signals", "lookup", b.req.Filter, e.cfg.LibraryTimeout, func(cctx context.Context) error {
		var err error
		sig, err = e.signals.GetUserSignals(cctx, b.req.UserID, b.req.Filter)
		return err
	})
	if !ok {
		return nil
	}
	return unionSignals(sig, b.req.Filter, e.cfg.SignalCap)
}

// unionSignals merges high ratings and likes, each capped at limit.
func unionSignals(sig media.Signals, filter media.Kind, limit int) []media.Signal {
	seen := make(map[string]struct{})
	out := make([]media.Signal, 0, len(sig.HighRatings)+len(sig.Likes))
	for _, list := range [][]media.Signal{sig.HighRatings, sig.Likes} {
		taken := 0
		for i := range list {
			s := list[i]
			if taken == limit {
				break
			}
			if !s.Qualifies() || s.MediaID == "" || !s.Kind.Matches(filter) {
				continue
			}
			taken++
			if _, dup := seen[s.MediaID]; dup {
				continue
			}
			seen[s.MediaID] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// buildSignal searches a random subset of the signals and interleaves the
// results round-robin. The preference block, when present, comes first.
func (e *Engine) buildSignal(ctx context.Context, b *build, signals []media.Signal, meta *Metadata) []media.Item {
	seeds := e.pickSeeds(signals, e.cfg.SeedCount)
	meta.Seeds = len(seeds)

	prefCh := e.startPreferences(ctx, b)

	fetches := make([]fetch, len(seeds))
	for i := range seeds {
		fetches[i] = e.searchFetch(e.seedKind(&seeds[i], b.req.Filter), seeds[i].Title, e.cfg.PerSeedCap)
	}
	results := e.fetchAll(ctx, b, fetches)
	pref := <-prefCh

	dedup := NewDeduper()
	for i := range signals {
		dedup.MarkSignal(&signals[i])
	}

	items := acceptAll(nil, dedup, pref.items)
	meta.PreferenceGenres = pref.genres

	for round := 0; round < e.cfg.PerSeedCap; round++ {
		for s := range results {
			if round >= len(results[s]) {
				continue
			}
			rec := results[s][round]
			if !rec.Kind.Matches(b.req.Filter) || !dedup.Accept(&rec) {
				continue
			}
			items = append(items, media.WithReason(rec, similarityReason(&seeds[s])))
		}
	}

	if len(items) == 0 && e.cfg.TrendingLastResort {
		items = e.trendingLastResort(ctx, b, dedup)
		meta.TrendingFallback = len(items) > 0
	}
	return items
}

// pickSeeds draws up to n signals uniformly without replacement using a
// partial Fisher-Yates shuffle.
func (e *Engine) pickSeeds(signals []media.Signal, n int) []media.Signal {
	pool := make([]media.Signal, len(signals))
	copy(pool, signals)
	if n > len(pool) {
		n = len(pool)
	}
	for i := 0; i < n; i++ {
		j := i + e.randIntn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// seedKind chooses the kind a seed is searched in: the filter when one is
// set, otherwise a weighted draw between the seed's own kind, book, game
// and movie.
func (e *Engine) seedKind(seed *media.Signal, filter media.Kind) media.Kind {
	if filter != "" {
		return filter
	}
	w := e.cfg.Weights
	choices := []struct {
		kind   media.Kind
		weight float64
	}{
		{seed.Kind, w.Own},
		{media.KindBook, w.Book},
		{media.KindGame, w.Game},
		{media.KindMovie, w.Movie},
	}
	total := w.Own + w.Book + w.Game + w.Movie
	r := e.randFloat() * total
	for _, c := range choices {
		if r < c.weight {
			return c.kind
		}
		r -= c.weight
	}
	return seed.Kind
}

// trendingLastResort fills an empty signal feed with trending content of
// the filter kind, or movies when unfiltered.
func (e *Engine) trendingLastResort(ctx context.Context, b *build, dedup *Deduper) []media.Item {
	kind := b.req.Filter
	if kind == "" {
		kind = media.KindMovie
	}
	results := e.fetchAll(ctx, b, []fetch{e.trendingFetch(kind, 0)})
	b.logger.Debug().Str("kind", string(kind)).Msg("signal feed empty, using trending")
	return acceptAll(nil, dedup, withReason(results[0], popular(reasonTrending)))
}
