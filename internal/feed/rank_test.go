// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomtom215/mediafeed/internal/media"
)

func item(id, title string, vote float64) media.Item {
	return media.WithReason(rec(id, media.KindMovie, title, vote), media.Reason{Kind: media.ReasonPopular})
}

func TestDeduper(t *testing.T) {
	d := NewDeduper()

	a := rec("movie-1", media.KindMovie, "Alien", 8)
	assert.False(t, d.Seen(&a))
	assert.True(t, d.Accept(&a))
	assert.False(t, d.Accept(&a))

	sameTitle := rec("movie-2", media.KindMovie, "  ALIEN ", 7)
	assert.True(t, d.Seen(&sameTitle), "titles are compared case-folded and trimmed")

	sameID := rec("movie-1", media.KindMovie, "Aliens", 7)
	assert.False(t, d.Accept(&sameID))

	marked := rec("movie-3", media.KindMovie, "Heat", 7)
	d.Mark(&marked)
	assert.True(t, d.Seen(&marked))

	sig := media.Signal{MediaID: "book-1", Title: "Dune"}
	d.MarkSignal(&sig)
	byID := rec("book-1", media.KindBook, "Something else", 7)
	byTitle := rec("movie-4", media.KindMovie, "dune", 7)
	assert.True(t, d.Seen(&byID))
	assert.True(t, d.Seen(&byTitle))
}

func TestSortByScore_Stable(t *testing.T) {
	items := []media.Item{
		item("a", "A", 5),
		item("b", "B", 9),
		item("c", "C", 5),
		media.WithReason(media.Record{ID: "d", Kind: media.KindGame, Title: "D", Metacritic: media.Int(70)}, media.Reason{}),
		media.WithReason(media.Record{ID: "e", Kind: media.KindGame, Title: "E"}, media.Reason{}),
	}
	SortByScore(items)
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, ids(items))
}

func TestSortByVote(t *testing.T) {
	items := []media.Item{item("a", "A", 5), item("b", "B", 9), item("c", "C", 5)}
	SortByVote(items)
	assert.Equal(t, []string{"b", "a", "c"}, ids(items))
}

func TestMergePartitions(t *testing.T) {
	local := []media.Item{item("db-movie-1", "L1", 2), item("db-movie-2", "L2", 6)}
	remote := []media.Item{item("movie-1", "R1", 5), item("movie-2", "R2", 10)}

	got := MergePartitions(local, remote)
	assert.Equal(t, []string{"db-movie-2", "db-movie-1", "movie-2", "movie-1"}, ids(got))

	assert.Empty(t, MergePartitions(nil, nil))
	assert.NotNil(t, MergePartitions(nil, nil))
}

func TestTruncate(t *testing.T) {
	items := []media.Item{item("a", "A", 1), item("b", "B", 1), item("c", "C", 1)}

	assert.Len(t, Truncate(items, 2), 2)
	assert.Len(t, Truncate(items, 5), 3)
	assert.Empty(t, Truncate(items, 0))
	assert.NotNil(t, Truncate(nil, 24))
}

func TestUnionSignals(t *testing.T) {
	sig := media.Signals{
		HighRatings: []media.Signal{
			rated("movie-1", media.KindMovie, "Heat"),
			{MediaID: "movie-2", Kind: media.KindMovie, Title: "Meh", Source: media.SignalRating, Stars: 3},
			rated("book-1", media.KindBook, "Emma"),
		},
		Likes: []media.Signal{
			liked("movie-1", media.KindMovie, "Heat"),
			liked("rawg-game-1", media.KindGame, "Hades"),
		},
	}

	got := unionSignals(sig, "", 10)
	var gotIDs []string
	for _, s := range got {
		gotIDs = append(gotIDs, s.MediaID)
	}
	assert.Equal(t, []string{"movie-1", "book-1", "rawg-game-1"}, gotIDs)

	assert.Len(t, unionSignals(sig, media.KindBook, 10), 1)
	capped := unionSignals(media.Signals{HighRatings: sig.HighRatings, Likes: sig.Likes[1:]}, "", 1)
	assert.Len(t, capped, 2, "each list is capped separately")
}

func TestCleanGenres(t *testing.T) {
	got := cleanGenres([]string{" Drama", "drama", "", "sci/fi", "comedy", "horror", "war", "noir"}, 4)
	assert.Equal(t, []string{"drama", "comedy", "horror", "war"}, got)
}
