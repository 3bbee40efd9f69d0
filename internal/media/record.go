// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package media

import (
	"errors"
	"fmt"
	"strings"
)

// LocalIDPrefix marks records that come from the curated local library.
const LocalIDPrefix = "db-"

// Record is the normalized representation of one piece of content from any
// source.
type Record struct {
	// ID is source-qualified and unique across sources (e.g. "movie-603",
	// "rawg-game-3498", "db-book-17").
	ID string `json:"id"`

	// SourceID is the raw identifier in the origin system.
	SourceID string `json:"source_id"`

	Kind     Kind   `json:"kind"`
	Title    string `json:"title"`
	Overview string `json:"overview"`

	PosterURL   string `json:"poster_url,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`

	// VoteAverage is always on a 0-10 scale.
	VoteAverage *float64 `json:"vote_average,omitempty"`

	// Metacritic is only set for games (0-100).
	Metacritic *int `json:"metacritic,omitempty"`

	Genres []string `json:"genres"`
}

// IsLocal reports whether the record comes from the local curated library.
func (r *Record) IsLocal() bool {
	return strings.HasPrefix(r.ID, LocalIDPrefix)
}

// TitleKey returns the case-folded title used for fuzzy identity.
func (r *Record) TitleKey() string {
	return TitleKey(r.Title)
}

// TitleKey case-folds and trims a title for fuzzy identity comparison.
func TitleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// Validate checks the record invariants that hold at the engine boundary.
func (r *Record) Validate() error {
	if r.ID == "" {
		return errors.New("record id is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("record %s: title is required", r.ID)
	}
	if !r.Kind.Valid() {
		return fmt.Errorf("record %s: %w: %q", r.ID, ErrUnknownKind, r.Kind)
	}
	if r.VoteAverage != nil && (*r.VoteAverage < 0 || *r.VoteAverage > MaxVote) {
		return fmt.Errorf("record %s: vote average %.2f outside [0, %d]", r.ID, *r.VoteAverage, MaxVote)
	}
	if r.Metacritic != nil && (*r.Metacritic < 0 || *r.Metacritic > 100) {
		return fmt.Errorf("record %s: metacritic %d outside [0, 100]", r.ID, *r.Metacritic)
	}
	return nil
}

// LocalID builds the identifier of a local-library record.
func LocalID(kind Kind, rowID int64) string {
	return fmt.Sprintf("%s%s-%d", LocalIDPrefix, kind, rowID)
}

// Float returns a pointer to v. Adapters use it to fill optional fields.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}
