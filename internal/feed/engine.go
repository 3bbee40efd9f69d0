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
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/mediafeed/internal/logging"
	"github.com/tomtom215/mediafeed/internal/media"
	"github.com/tomtom215/mediafeed/internal/metrics"
	"github.com/tomtom215/mediafeed/internal/sources"
	"github.com/tomtom215/mediafeed/internal/validation"
)

// Engine builds recommendation feeds. It is safe for concurrent use.
type Engine struct {
	cfg    *Config
	logger zerolog.Logger

	sources Sources
	library Library
	signals SignalStore
	prefs   PreferenceStore

	// Random source (protected by rngMu for concurrent access)
	rng   *rand.Rand
	rngMu sync.Mutex

	// Counters
	feedsByMode    [len(modeNames)]atomic.Int64
	invalidInputs  atomic.Int64
	sourceCalls    atomic.Int64
	sourceFailures atomic.Int64
	totalLatency   atomic.Int64
}

// Option customizes an Engine.
type Option func(*Engine)

// WithRand replaces the engine's random source. Tests use it for
// reproducible seed picks and shuffles.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

// WithPreferences enables the preferred-genre blend backed by p.
func WithPreferences(p PreferenceStore) Option {
	return func(e *Engine) {
		e.prefs = p
	}
}

// NewEngine creates a feed engine. A nil cfg uses DefaultConfig.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewEngine(cfg *Config, src Sources, lib Library, sig SignalStore, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid feed config: %w", err)
	}
	if src == nil || lib == nil || sig == nil {
		return nil, errors.New("feed engine needs sources, a library and a signal store")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e := &Engine{
		cfg:     cfg,
		logger:  logger.With().Str("component", "feed").Logger(),
		sources: src,
		library: lib,
		signals: sig,
		rng:     rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for recommendation shuffling
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// build carries the state of one BuildFeed call.
type build struct {
	req      Request
	logger   zerolog.Logger
	calls    atomic.Int64
	failures atomic.Int64
}

// BuildFeed builds the feed for req. Source failures degrade the feed but
// never fail the call; an error is returned only for invalid input
// (matching ErrInvalidRequest) or a cancelled context. When ctx reaches its
// deadline mid-build the stages still pending are skipped and the items
// gathered so far are served with Metadata.Partial set.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) BuildFeed(ctx context.Context, req Request) (*Feed, error) {
	start := time.Now()

	req, err := normalizeRequest(req)
	if err != nil {
		e.invalidInputs.Add(1)
		metrics.FeedInvalidRequests.Inc()
		return nil, err
	}
	if err := ctx.Err(); errors.Is(err, context.Canceled) {
		return nil, fmt.Errorf("build feed: %w", err)
	}

	b := &build{req: req, logger: e.requestLogger(ctx, req)}
	meta := Metadata{}

	var items []media.Item
	switch {
	case len(req.RestrictedRatings) > 0:
		meta.Mode = ModeRestricted
		items = e.buildRestricted(ctx, b)
	case req.Genre != "":
		meta.Mode = ModeGenre
		items = e.buildGenre(ctx, b)
	default:
		signals := e.loadSignals(ctx, b)
		if len(signals) > 0 {
			meta.Mode = ModeSignal
			items = e.buildSignal(ctx, b, signals, &meta)
		} else {
			meta.Mode = ModeColdStart
			items = e.buildColdStart(ctx, b, &meta)
		}
	}

	if err := ctx.Err(); err != nil {
		if !errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("build feed: %w", err)
		}
		meta.Partial = true
		b.logger.Warn().
			Str("mode", meta.Mode.String()).
			Int("items", len(items)).
			Msg("feed deadline reached, serving partial results")
	}

	meta.Candidates = len(items)
	items = Truncate(items, e.cfg.MaxItems)

	duration := time.Since(start)
	meta.SourceCalls = int(b.calls.Load())
	meta.SourceFailures = int(b.failures.Load())
	meta.Duration = duration
	meta.DurationMS = duration.Milliseconds()

	e.feedsByMode[meta.Mode].Add(1)
	e.totalLatency.Add(int64(duration))
	metrics.RecordFeedBuild(meta.Mode.String(), len(items), duration)

	b.logger.Debug().
		Str("mode", meta.Mode.String()).
		Int("items", len(items)).
		Int("candidates", meta.Candidates).
		Int("source_calls", meta.SourceCalls).
		Int("source_failures", meta.SourceFailures).
		Dur("duration", duration).
		Msg("feed built")

	return &Feed{Items: items, Mode: meta.Mode, Metadata: meta}, nil
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	s := Stats{
		FeedsBuilt:     make(map[string]int64, len(modeNames)),
		InvalidInputs:  e.invalidInputs.Load(),
		SourceCalls:    e.sourceCalls.Load(),
		SourceFailures: e.sourceFailures.Load(),
		TotalLatency:   time.Duration(e.totalLatency.Load()),
	}
	var total int64
	for i := range e.feedsByMode {
		n := e.feedsByMode[i].Load()
		s.FeedsBuilt[Mode(i).String()] = n
		total += n
	}
	if total > 0 {
		s.AvgLatencyMS = float64(s.TotalLatency.Milliseconds()) / float64(total)
	}
	return s
}

// Config returns the engine tunables.
func (e *Engine) Config() Config {
	return *e.cfg
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) requestLogger(ctx context.Context, req Request) zerolog.Logger {
	lc := e.logger.With().Str("user_id", req.UserID)
	if id := logging.RequestIDFromContext(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}
	if req.Filter != "" {
		lc = lc.Str("filter", string(req.Filter))
	}
	return lc.Logger()
}

// requestRules declares the request constraints for the validator.
type requestRules struct {
	UserID  string   `validate:"required,max=128"`
	Kind    string   `validate:"omitempty,mediakind"`
	Genre   string   `validate:"omitempty,genre"`
	Ratings []string `validate:"omitempty,dive,rating"`
}

var ruleFields = map[string]string{
	"UserID":  "user_id",
	"Kind":    "filter",
	"Genre":   "genre",
	"Ratings": "restricted_ratings",
}

// normalizeRequest trims the request and validates it.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func normalizeRequest(req Request) (Request, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	req.Genre = strings.TrimSpace(req.Genre)

	ratings := make([]string, 0, len(req.RestrictedRatings))
	for _, r := range req.RestrictedRatings {
		ratings = append(ratings, strings.ToUpper(strings.TrimSpace(r)))
	}
	req.RestrictedRatings = ratings

	verr := validation.ValidateStruct(&requestRules{
		UserID:  req.UserID,
		Kind:    string(req.Filter),
		Genre:   req.Genre,
		Ratings: req.RestrictedRatings,
	})
	if verr != nil {
		errs := verr.Errors()
		if len(errs) == 0 {
			return req, &InputError{Field: "request", Reason: verr.Error()}
		}
		field := errs[0].Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		name, ok := ruleFields[field]
		if !ok {
			name = field
		}
		return req, &InputError{Field: name, Reason: errs[0].Error()}
	}

	filter, err := media.ParseFilter(string(req.Filter))
	if err != nil {
		return req, &InputError{Field: "filter", Reason: err.Error()}
	}
	req.Filter = filter
	return req, nil
}

// fetch is one source call in a fan-out.
type fetch struct {
	source  string
	op      string
	kind    media.Kind
	limit   int // 0 keeps every record
	timeout time.Duration
	fn      func(ctx context.Context) ([]media.Record, error)
}

// fetchAll runs the fetches in parallel. Each result slot is written only
// by its own goroutine; failed calls leave their slot nil. Nothing is
// called once ctx is done.
func (e *Engine) fetchAll(ctx context.Context, b *build, fetches []fetch) [][]media.Record {
	results := make([][]media.Record, len(fetches))
	if err := ctx.Err(); err != nil {
		if len(fetches) > 0 {
			b.logger.Debug().
				Int("fetches", len(fetches)).
				Str("op", fetches[0].op).
				Err(err).
				Msg("skipping source stage")
		}
		return results
	}
	var wg sync.WaitGroup
	for i := range fetches {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = e.fetchOne(ctx, b, &fetches[idx])
		}(i)
	}
	wg.Wait()
	return results
}

func (e *Engine) fetchOne(ctx context.Context, b *build, f *fetch) []media.Record {
	var recs []media.Record
	ok := e.guard(ctx, b, f.source, f.op, f.kind, f.timeout, func(cctx context.Context) error {
		var err error
		recs, err = f.fn(cctx)
		return err
	})
	if !ok {
		return nil
	}
	return sanitize(recs, f.limit, b.logger)
}

// guard runs fn under its own timeout. A failure is logged and counted,
// and reported as false.
func (e *Engine) guard(ctx context.Context, b *build, source, op string, kind media.Kind, timeout time.Duration, fn func(context.Context) error) bool {
	b.calls.Add(1)
	e.sourceCalls.Add(1)

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := fn(cctx)
	if err == nil {
		return true
	}

	b.failures.Add(1)
	e.sourceFailures.Add(1)
	evt := b.logger.Warn()
	if ctx.Err() != nil {
		// The feed deadline passed; BuildFeed reports it once.
		evt = b.logger.Debug()
	}
	evt.Str("source", source).
		Str("op", op).
		Str("kind", string(kind)).
		Err(err).
		Msg("source call failed")
	return false
}

// sanitize enforces the record invariants at the engine boundary: votes
// are clamped into [0, 10] and records without id or title are dropped.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func sanitize(recs []media.Record, limit int, logger zerolog.Logger) []media.Record {
	out := make([]media.Record, 0, len(recs))
	for i := range recs {
		rec := recs[i]
		if rec.VoteAverage != nil {
			rec.VoteAverage = media.Float(media.NormalizeVote(*rec.VoteAverage, media.ScaleTen))
		}
		if rec.Metacritic != nil && (*rec.Metacritic < 0 || *rec.Metacritic > 100) {
			rec.Metacritic = nil
		}
		if err := rec.Validate(); err != nil {
			logger.Debug().Err(err).Msg("dropping invalid record")
			continue
		}
		out = append(out, rec)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// sourceName labels a remote call for logs.
func (e *Engine) sourceName(kind media.Kind) string {
	if c, ok := e.sources.(interface {
		ProviderFor(media.Kind) (sources.Provider, error)
	}); ok {
		if p, err := c.ProviderFor(kind); err == nil {
			return p.Name()
		}
	}
	return "sources"
}

func (e *Engine) searchFetch(kind media.Kind, query string, limit int) fetch {
	return fetch{
		source:  e.sourceName(kind),
		op:      sources.OpSearch,
		kind:    kind,
		limit:   limit,
		timeout: e.cfg.remoteTimeout(kind),
		fn: func(ctx context.Context) ([]media.Record, error) {
			return e.sources.Search(ctx, kind, query)
		},
	}
}

func (e *Engine) discoverFetch(kind media.Kind, genre string, opts sources.DiscoverOptions, limit int) fetch {
	return fetch{
		source:  e.sourceName(kind),
		op:      sources.OpDiscover,
		kind:    kind,
		limit:   limit,
		timeout: e.cfg.remoteTimeout(kind),
		fn: func(ctx context.Context) ([]media.Record, error) {
			return e.sources.DiscoverByGenre(ctx, kind, genre, opts)
		},
	}
}

func (e *Engine) trendingFetch(kind media.Kind, limit int) fetch {
	return fetch{
		source:  e.sourceName(kind),
		op:      sources.OpTrending,
		kind:    kind,
		limit:   limit,
		timeout: e.cfg.remoteTimeout(kind),
		fn: func(ctx context.Context) ([]media.Record, error) {
			return e.sources.Trending(ctx, kind)
		},
	}
}

func (e *Engine) libraryFetch(kind media.Kind, limit int) fetch {
	return fetch{
		source:  "library",
		op:      "query",
		kind:    kind,
		limit:   limit,
		timeout: e.cfg.LibraryTimeout,
		fn: func(ctx context.Context) ([]media.Record, error) {
			return e.library.QueryLocalLibrary(ctx, kind, limit)
		},
	}
}

// withReason attaches reason to every record.
func withReason(recs []media.Record, reason media.Reason) []media.Item {
	items := make([]media.Item, 0, len(recs))
	for i := range recs {
		items = append(items, media.WithReason(recs[i], reason))
	}
	return items
}

// acceptAll appends the items the deduper has not seen yet.
func acceptAll(dst []media.Item, d *Deduper, items []media.Item) []media.Item {
	for i := range items {
		if d.Accept(&items[i].Record) {
			dst = append(dst, items[i])
		}
	}
	return dst
}

// Random helpers. The engine's source is shared by concurrent builds.

func (e *Engine) randIntn(n int) int {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.rng.Intn(n)
}

func (e *Engine) randFloat() float64 {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.rng.Float64()
}

// shuffle is a uniform Fisher-Yates shuffle of items.
func (e *Engine) shuffle(items []media.Item) {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	for i := len(items) - 1; i > 0; i-- {
		j := e.rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
