// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package feed

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/mediafeed/internal/media"
	"github.com/tomtom215/mediafeed/internal/sources"
	"github.com/tomtom215/mediafeed/internal/validation"
)

// preferenceKinds are discovered per genre when no filter is set.
var preferenceKinds = []media.Kind{media.KindMovie, media.KindBook, media.KindGame}

type preferenceBlock struct {
	genres []string
	items  []media.Item
}

// startPreferences runs the preferred-genre blend in the background. The
// channel always yields exactly one block, empty when the blend is off.
func (e *Engine) startPreferences(ctx context.Context, b *build) <-chan preferenceBlock {
	ch := make(chan preferenceBlock, 1)
	if e.prefs == nil || !e.cfg.Preferences.Enabled {
		ch <- preferenceBlock{}
		return ch
	}
	go func() {
		ch <- e.preferenceBlend(ctx, b)
	}()
	return ch
}

// preferenceBlend discovers the user's top profile genres and keeps the
// best few per kind, ranked by vote average.
func (e *Engine) preferenceBlend(ctx context.Context, b *build) preferenceBlock {
	var genres []string
	ok := e.guard(ctx, b, "preferences", "lookup", b.req.Filter, e.cfg.LibraryTimeout, func(cctx context.Context) error {
		var err error
		genres, err = e.prefs.PreferredGenres(cctx, b.req.UserID)
		return err
	})
	if !ok {
		return preferenceBlock{}
	}
	genres = cleanGenres(genres, e.cfg.Preferences.MaxGenres)
	if len(genres) == 0 {
		return preferenceBlock{}
	}

	kinds := preferenceKinds
	if b.req.Filter != "" {
		kinds = []media.Kind{b.req.Filter}
	}

	var (
		fetches []fetch
		reasons []media.Reason
	)
	for _, g := range genres {
		reason := genreReason(fmt.Sprintf(reasonPrefers, g))
		for _, kind := range kinds {
			fetches = append(fetches, e.discoverFetch(kind, g, sources.DiscoverOptions{}, e.cfg.Preferences.PerKind))
			reasons = append(reasons, reason)
		}
	}

	seen := make(map[string]struct{})
	var items []media.Item
	for i, recs := range e.fetchAll(ctx, b, fetches) {
		for j := range recs {
			if _, dup := seen[recs[j].ID]; dup {
				continue
			}
			seen[recs[j].ID] = struct{}{}
			items = append(items, media.WithReason(recs[j], reasons[i]))
		}
	}
	SortByVote(items)
	return preferenceBlock{genres: genres, items: items}
}

// cleanGenres drops blank, malformed and duplicate genres and keeps at
// most limit.
func cleanGenres(genres []string, limit int) []string {
	out := make([]string, 0, limit)
	seen := make(map[string]bool)
	for _, g := range genres {
		g = strings.ToLower(strings.TrimSpace(g))
		if g == "" || seen[g] || !validation.ValidGenre(g) {
			continue
		}
		seen[g] = true
		out = append(out, g)
		if len(out) == limit {
			break
		}
	}
	return out
}
