// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package sources

import (
	"context"
	"sync"

	"github.com/tomtom215/mediafeed/internal/media"
)

// fakeProvider records calls and returns canned results.
type fakeProvider struct {
	name    string
	records []media.Record
	err     error

	mu    sync.Mutex
	calls []string
}

func newFakeProvider(name string, records ...media.Record) *fakeProvider {
	return &fakeProvider{name: name, records: records}
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Search(_ context.Context, kind media.Kind, query string) ([]media.Record, error) {
	return f.record(OpSearch + ":" + string(kind) + ":" + query)
}

func (f *fakeProvider) DiscoverByGenre(_ context.Context, kind media.Kind, genre string, opts DiscoverOptions) ([]media.Record, error) {
	return f.record(OpDiscover + ":" + string(kind) + ":" + genre + ":" + opts.MaxRating)
}

func (f *fakeProvider) Trending(_ context.Context, kind media.Kind) ([]media.Record, error) {
	return f.record(OpTrending + ":" + string(kind))
}

func (f *fakeProvider) record(call string) ([]media.Record, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	err := f.err
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.records, nil
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeProvider) lastCall() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeProvider) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func movie(id, title string) media.Record {
	return media.Record{ID: "movie-" + id, SourceID: id, Kind: media.KindMovie, Title: title, VoteAverage: media.Float(7)}
}
