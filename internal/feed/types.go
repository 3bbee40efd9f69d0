// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/mediafeed/internal/media"
	"github.com/tomtom215/mediafeed/internal/sources"
)

// ErrInvalidRequest is matched by every InputError.
var ErrInvalidRequest = errors.New("invalid feed request")

// InputError reports a rejected request field.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid feed request: %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidRequest.
func (e *InputError) Unwrap() error {
	return ErrInvalidRequest
}

// Sources is the remote metadata surface the engine consumes. It is
// satisfied by *sources.Catalog.
type Sources interface {
	Search(ctx context.Context, kind media.Kind, query string) ([]media.Record, error)
	DiscoverByGenre(ctx context.Context, kind media.Kind, genre string, opts sources.DiscoverOptions) ([]media.Record, error)
	Trending(ctx context.Context, kind media.Kind) ([]media.Record, error)
}

// Library serves the curated local library, best quality first.
type Library interface {
	QueryLocalLibrary(ctx context.Context, kind media.Kind, limit int) ([]media.Record, error)
}

// SignalStore returns a user's high ratings and likes.
type SignalStore interface {
	GetUserSignals(ctx context.Context, userID string, filter media.Kind) (media.Signals, error)
}

// PreferenceStore returns a user's profile genres in preference order.
type PreferenceStore interface {
	PreferredGenres(ctx context.Context, userID string) ([]string, error)
}

// Request describes one feed build.
type Request struct {
	UserID string

	// Filter restricts the feed to one kind. The zero value means all kinds.
	Filter media.Kind

	Genre string

	// RestrictedRatings is the set of allowed content ratings. A non-empty
	// set switches the engine into restricted mode.
	RestrictedRatings []string
}

// Mode identifies the strategy that produced a feed.
type Mode int

const (
	ModeColdStart Mode = iota
	ModeSignal
	ModeGenre
	ModeRestricted
)

var modeNames = [...]string{
	ModeColdStart:  "coldstart",
	ModeSignal:     "signal",
	ModeGenre:      "genre",
	ModeRestricted: "restricted",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Feed is the result of a build.
type Feed struct {
	Items    []media.Item `json:"items"`
	Mode     Mode         `json:"mode"`
	Metadata Metadata     `json:"metadata"`
}

// Metadata describes how a feed was built.
type Metadata struct {
	Mode Mode `json:"mode"`

	// Seeds is the number of signals searched in signal mode.
	Seeds int `json:"seeds"`

	// PreferenceGenres lists the profile genres blended into the feed.
	PreferenceGenres []string `json:"preference_genres,omitempty"`

	SourceCalls    int `json:"source_calls"`
	SourceFailures int `json:"source_failures"`

	// Candidates counts the deduplicated items before truncation.
	Candidates int `json:"candidates"`

	// TrendingFallback is set when the trending last resort filled an
	// otherwise empty signal feed.
	TrendingFallback bool `json:"trending_fallback,omitempty"`

	// Partial is set when the request deadline cut the build short.
	Partial bool `json:"partial,omitempty"`

	Duration   time.Duration `json:"-"`
	DurationMS int64         `json:"duration_ms"`
}

// Stats are cumulative engine counters.
type Stats struct {
	FeedsBuilt     map[string]int64 `json:"feeds_built"`
	InvalidInputs  int64            `json:"invalid_inputs"`
	SourceCalls    int64            `json:"source_calls"`
	SourceFailures int64            `json:"source_failures"`
	TotalLatency   time.Duration    `json:"-"`
	AvgLatencyMS   float64          `json:"avg_latency_ms"`
}
