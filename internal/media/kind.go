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

// ErrUnknownKind is returned when a media kind string is not recognized.
var ErrUnknownKind = errors.New("unknown media kind")

// Kind identifies the content domain of a record.
type Kind string

const (
	KindMovie Kind = "movie"
	KindTV    Kind = "tv"
	KindBook  Kind = "book"
	KindGame  Kind = "game"
)

// AllKinds lists every kind in fan-out order.
var AllKinds = []Kind{KindMovie, KindTV, KindBook, KindGame}

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindMovie, KindTV, KindBook, KindGame:
		return true
	default:
		return false
	}
}

// ParseKind parses a media kind name. Matching is case-insensitive.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// ParseFilter parses an optional kind filter. The empty string and "all"
// mean no filter and return the zero Kind.
func ParseFilter(s string) (Kind, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" || trimmed == "all" {
		return "", nil
	}
	return ParseKind(trimmed)
}

// Matches reports whether kind k passes the filter. A zero filter matches
// every kind.
func (k Kind) Matches(filter Kind) bool {
	return filter == "" || filter == k
}

// KindsFor returns the kinds selected by a filter, preserving AllKinds order.
func KindsFor(filter Kind) []Kind {
	if filter == "" {
		out := make([]Kind, len(AllKinds))
		copy(out, AllKinds)
		return out
	}
	return []Kind{filter}
}
