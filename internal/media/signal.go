// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package media

import "time"

// MinSeedRating is the lowest star rating that counts as a positive signal.
const MinSeedRating = 4

// SignalSource distinguishes ratings from likes.
type SignalSource string

const (
	SignalRating SignalSource = "rating"
	SignalLike   SignalSource = "like"
)

// Signal is a user action on a media item that can seed recommendations.
type Signal struct {
	UserID  string       `json:"user_id"`
	MediaID string       `json:"media_id"`
	Kind    Kind         `json:"kind"`
	Title   string       `json:"title"`
	Source  SignalSource `json:"source"`

	// Stars is the 1-5 rating. Zero for likes.
	Stars     int       `json:"stars,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Qualifies reports whether the signal is strong enough to seed
// recommendations: every like, and ratings of MinSeedRating or more.
func (s Signal) Qualifies() bool {
	if s.Source == SignalLike {
		return true
	}
	return s.Stars >= MinSeedRating
}

// Signals bundles a user's high ratings and likes, each most recent first.
type Signals struct {
	HighRatings []Signal `json:"high_ratings"`
	Likes       []Signal `json:"likes"`
}

// Empty reports whether there are no signals at all.
func (s Signals) Empty() bool {
	return len(s.HighRatings) == 0 && len(s.Likes) == 0
}
