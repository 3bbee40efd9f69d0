// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package feed

import (
	"fmt"

	"github.com/tomtom215/mediafeed/internal/media"
)

// TMDB genre ids considered safe for restricted feeds.
const (
	kidsGenres = "16,10751"          // animation, family
	teenGenres = "16,10751,12,14,35" // plus adventure, fantasy, comedy

	kidsBookQuery = "children"
	teenBookQuery = "adventure"
)

// Reason descriptions.
const (
	reasonRated    = "Because you rated %s highly"
	reasonLiked    = "Because you liked %s"
	reasonGenre    = "Genre: %s"
	reasonPrefers  = "Because you like %s"
	reasonKidsMode = "Kids mode (max %s)"
	reasonTeenMode = "Teen mode (max %s)"

	reasonMasterpiece = "Masterpiece pick"
	reasonClassic     = "Literary classic"
	reasonMustWatch   = "Must-watch series"
	reasonCurated     = "Curated pick"
	reasonPopularNow  = "Popular right now"
	reasonTrendingTV  = "Trending series"
	reasonFeatured    = "Featured game"
	reasonTrending    = "Trending"
)

func popular(description string) media.Reason {
	return media.Reason{Kind: media.ReasonPopular, Description: description}
}

func genreReason(description string) media.Reason {
	return media.Reason{Kind: media.ReasonGenre, Description: description}
}

func similarityReason(seed *media.Signal) media.Reason {
	format := reasonRated
	if seed.Source == media.SignalLike {
		format = reasonLiked
	}
	return media.Reason{
		Kind:        media.ReasonSimilarity,
		SourceTitle: seed.Title,
		Description: fmt.Sprintf(format, seed.Title),
	}
}

// localReason labels a curated library pick by kind.
func localReason(kind media.Kind) media.Reason {
	switch kind {
	case media.KindGame:
		return popular(reasonMasterpiece)
	case media.KindBook:
		return popular(reasonClassic)
	case media.KindTV:
		return popular(reasonMustWatch)
	default:
		return popular(reasonCurated)
	}
}
