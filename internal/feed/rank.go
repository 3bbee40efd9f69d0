// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package feed

import (
	"sort"

	"github.com/tomtom215/mediafeed/internal/media"
)

// Deduper tracks the ids and case-folded titles already present in a feed.
// The first record seen for an id or title wins. It is not safe for
// concurrent use; engines merge fan-out results after Wait.
type Deduper struct {
	ids    map[string]struct{}
	titles map[string]struct{}
}

// NewDeduper returns an empty Deduper.
func NewDeduper() *Deduper {
	return &Deduper{
		ids:    make(map[string]struct{}),
		titles: make(map[string]struct{}),
	}
}

// Seen reports whether the record's id or title was already registered.
func (d *Deduper) Seen(rec *media.Record) bool {
	if _, ok := d.ids[rec.ID]; ok {
		return true
	}
	_, ok := d.titles[rec.TitleKey()]
	return ok
}

// Mark registers a record without emitting it.
func (d *Deduper) Mark(rec *media.Record) {
	d.mark(rec.ID, rec.Title)
}

// MarkSignal registers a signal's media so it is never recommended back.
func (d *Deduper) MarkSignal(sig *media.Signal) {
	d.mark(sig.MediaID, sig.Title)
}

// Accept registers the record and reports whether it was new.
func (d *Deduper) Accept(rec *media.Record) bool {
	if d.Seen(rec) {
		return false
	}
	d.Mark(rec)
	return true
}

func (d *Deduper) mark(id, title string) {
	if id != "" {
		d.ids[id] = struct{}{}
	}
	if key := media.TitleKey(title); key != "" {
		d.titles[key] = struct{}{}
	}
}

// SortByScore stably sorts items by quality score, best first.
func SortByScore(items []media.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return media.Score(&items[i].Record) > media.Score(&items[j].Record)
	})
}

// SortByVote stably sorts items by vote average, best first.
func SortByVote(items []media.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return media.Vote(&items[i].Record) > media.Vote(&items[j].Record)
	})
}

// MergePartitions ranks each partition by score and places every local
// item before every remote one.
func MergePartitions(local, remote []media.Item) []media.Item {
	SortByScore(local)
	SortByScore(remote)
	out := make([]media.Item, 0, len(local)+len(remote))
	out = append(out, local...)
	return append(out, remote...)
}

// Truncate returns at most limit items. The result is never nil.
func Truncate(items []media.Item, limit int) []media.Item {
	if items == nil {
		return []media.Item{}
	}
	if limit >= 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
