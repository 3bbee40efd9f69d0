// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package feed

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/mediafeed/internal/media"
	"github.com/tomtom215/mediafeed/internal/sources"
)

var errUpstream = errors.New("upstream unavailable")

type sourceCall struct {
	op    string
	kind  media.Kind
	arg   string
	opts  sources.DiscoverOptions
	limit int
}

// fakeSources serves canned records. Search answers by query regardless of
// kind; discover and trending answer by kind.
type fakeSources struct {
	mu       sync.Mutex
	search   map[string][]media.Record
	discover map[media.Kind][]media.Record
	trending map[media.Kind][]media.Record
	fail     map[media.Kind]error
	hang     map[media.Kind]bool
	failAll  bool
	calls    []sourceCall
}

func newFakeSources() *fakeSources {
	return &fakeSources{
		search:   make(map[string][]media.Record),
		discover: make(map[media.Kind][]media.Record),
		trending: make(map[media.Kind][]media.Record),
		fail:     make(map[media.Kind]error),
		hang:     make(map[media.Kind]bool),
	}
}

func (f *fakeSources) record(c sourceCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeSources) outcome(ctx context.Context, kind media.Kind) error {
	f.mu.Lock()
	hang, err, all := f.hang[kind], f.fail[kind], f.failAll
	f.mu.Unlock()
	if hang {
		<-ctx.Done()
		return fmt.Errorf("%s: %w", kind, ctx.Err())
	}
	if all {
		return errUpstream
	}
	return err
}

func (f *fakeSources) Search(ctx context.Context, kind media.Kind, query string) ([]media.Record, error) {
	f.record(sourceCall{op: sources.OpSearch, kind: kind, arg: query})
	if err := f.outcome(ctx, kind); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return clone(f.search[query]), nil
}

func (f *fakeSources) DiscoverByGenre(ctx context.Context, kind media.Kind, genre string, opts sources.DiscoverOptions) ([]media.Record, error) {
	f.record(sourceCall{op: sources.OpDiscover, kind: kind, arg: genre, opts: opts})
	if err := f.outcome(ctx, kind); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return clone(f.discover[kind]), nil
}

func (f *fakeSources) Trending(ctx context.Context, kind media.Kind) ([]media.Record, error) {
	f.record(sourceCall{op: sources.OpTrending, kind: kind})
	if err := f.outcome(ctx, kind); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return clone(f.trending[kind]), nil
}

func (f *fakeSources) callsFor(op string) []sourceCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sourceCall
	for _, c := range f.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

type fakeLibrary struct {
	mu    sync.Mutex
	items map[media.Kind][]media.Record
	err   error
	calls []sourceCall
}

func (l *fakeLibrary) QueryLocalLibrary(_ context.Context, kind media.Kind, limit int) ([]media.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, sourceCall{op: "library", kind: kind, limit: limit})
	if l.err != nil {
		return nil, l.err
	}
	recs := clone(l.items[kind])
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

type fakeSignals struct {
	signals media.Signals
	err     error
}

func (s *fakeSignals) GetUserSignals(_ context.Context, _ string, filter media.Kind) (media.Signals, error) {
	if s.err != nil {
		return media.Signals{}, s.err
	}
	out := media.Signals{}
	for _, sig := range s.signals.HighRatings {
		if sig.Kind.Matches(filter) {
			out.HighRatings = append(out.HighRatings, sig)
		}
	}
	for _, sig := range s.signals.Likes {
		if sig.Kind.Matches(filter) {
			out.Likes = append(out.Likes, sig)
		}
	}
	return out, nil
}

type fakePrefs struct {
	genres []string
	err    error
}

func (p *fakePrefs) PreferredGenres(context.Context, string) ([]string, error) {
	return p.genres, p.err
}

func clone(recs []media.Record) []media.Record {
	if recs == nil {
		return nil
	}
	out := make([]media.Record, len(recs))
	copy(out, recs)
	return out
}

func rec(id string, kind media.Kind, title string, vote float64) media.Record {
	return media.Record{ID: id, SourceID: id, Kind: kind, Title: title, VoteAverage: media.Float(vote), Genres: []string{}}
}

func rated(id string, kind media.Kind, title string) media.Signal {
	return media.Signal{UserID: "u1", MediaID: id, Kind: kind, Title: title, Source: media.SignalRating, Stars: 5, CreatedAt: time.Now()}
}

func liked(id string, kind media.Kind, title string) media.Signal {
	return media.Signal{UserID: "u1", MediaID: id, Kind: kind, Title: title, Source: media.SignalLike, CreatedAt: time.Now()}
}

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.SourceTimeout = 200 * time.Millisecond
	cfg.LibraryTimeout = 200 * time.Millisecond
	cfg.Seed = 7
	return cfg
}

type harness struct {
	src  *fakeSources
	lib  *fakeLibrary
	sig  *fakeSignals
	pref *fakePrefs
}

func newHarness() *harness {
	return &harness{
		src:  newFakeSources(),
		lib:  &fakeLibrary{items: make(map[media.Kind][]media.Record)},
		sig:  &fakeSignals{},
		pref: &fakePrefs{},
	}
}

func (h *harness) engine(t *testing.T, cfg *Config, logger zerolog.Logger, opts ...Option) *Engine {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	opts = append([]Option{WithPreferences(h.pref), WithRand(rand.New(rand.NewSource(cfg.Seed)))}, opts...) //nolint:gosec // test randomness
	e, err := NewEngine(cfg, h.src, h.lib, h.sig, logger, opts...)
	require.NoError(t, err)
	return e
}

func ids(items []media.Item) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

func titles(items []media.Item) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].Title
	}
	return out
}
