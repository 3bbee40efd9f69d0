// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package media

import "math"

// MaxVote is the top of the normalized vote scale.
const MaxVote = 10

// Scale describes the native range of a source's rating.
type Scale int

const (
	// ScaleTen is already normalized (TMDB vote_average).
	ScaleTen Scale = 10
	// ScaleFive covers Google Books averageRating and RAWG rating.
	ScaleFive Scale = 5
	// ScaleHundred covers metacritic-style scores.
	ScaleHundred Scale = 100
)

// NormalizeVote converts v from its native scale to 0-10 and clamps the
// result. NaN becomes 0.
func NormalizeVote(v float64, scale Scale) float64 {
	if math.IsNaN(v) {
		return 0
	}
	switch scale {
	case ScaleFive:
		v *= 2
	case ScaleHundred:
		v /= 10
	}
	return math.Max(0, math.Min(MaxVote, v))
}

// VoteFromRAWG derives a 0-10 vote from RAWG fields: metacritic/10 when a
// metacritic score exists, otherwise the 0-5 user rating doubled.
func VoteFromRAWG(metacritic int, rating float64) float64 {
	if metacritic > 0 {
		return NormalizeVote(float64(metacritic), ScaleHundred)
	}
	return NormalizeVote(rating, ScaleFive)
}

// Score is the unified quality score used for ranking: metacritic when
// present, otherwise the vote average times ten, otherwise zero.
func Score(r *Record) float64 {
	if r.Metacritic != nil {
		return float64(*r.Metacritic)
	}
	if r.VoteAverage != nil {
		return *r.VoteAverage * 10
	}
	return 0
}

// Vote returns the vote average or zero.
func Vote(r *Record) float64 {
	if r.VoteAverage == nil {
		return 0
	}
	return *r.VoteAverage
}
