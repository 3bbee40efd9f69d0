// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package media

import "github.com/goccy/go-json"

// ReasonKind classifies the provenance of a recommendation.
type ReasonKind string

const (
	ReasonSimilarity ReasonKind = "similarity"
	ReasonGenre      ReasonKind = "genre"
	ReasonPace       ReasonKind = "pace"
	ReasonPopular    ReasonKind = "popular"
)

// Reason is the user-facing explanation attached to a recommended item.
// It is provenance only and never feeds back into ranking.
type Reason struct {
	Kind        ReasonKind `json:"kind"`
	SourceTitle string     `json:"source_title,omitempty"`
	Description string     `json:"description"`
}

// Item is a Record with its reason attached.
type Item struct {
	Record
	reason Reason
}

// WithReason attaches a reason to a record. The reason cannot be changed
// afterwards.
func WithReason(rec Record, reason Reason) Item {
	return Item{Record: rec, reason: reason}
}

// Reason returns the attached reason.
func (i Item) Reason() Reason {
	return i.reason
}

// MarshalJSON flattens the record and its reason into one object.
//
//nolint:gocritic // hugeParam: value receiver so both Item and *Item marshal
func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(itemJSON{Record: i.Record, Reason: i.reason})
}

// UnmarshalJSON restores an item encoded by MarshalJSON.
func (i *Item) UnmarshalJSON(data []byte) error {
	var aux itemJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	i.Record = aux.Record
	i.reason = aux.Reason
	return nil
}

type itemJSON struct {
	Record
	Reason Reason `json:"reason"`
}
