// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package media

import "strings"

// RatingOrder lists the content ratings from least to most restrictive
// audience age. "L" is the general-audience rating.
var RatingOrder = []string{"L", "10", "12", "14", "16", "18"}

// ValidRating reports whether r is a known content rating.
func ValidRating(r string) bool {
	return ratingRank(r) >= 0
}

// MaxRating returns the highest rating present in allowed according to
// RatingOrder, or "" when none of the values is a known rating.
func MaxRating(allowed []string) string {
	best := -1
	for _, r := range allowed {
		if rank := ratingRank(r); rank > best {
			best = rank
		}
	}
	if best < 0 {
		return ""
	}
	return RatingOrder[best]
}

// IsTeenRating reports whether r opens the teen catalog (12 and above).
func IsTeenRating(r string) bool {
	return ratingRank(r) >= ratingRank("12")
}

func ratingRank(r string) int {
	r = strings.ToUpper(strings.TrimSpace(r))
	for i, v := range RatingOrder {
		if v == r {
			return i
		}
	}
	return -1
}
