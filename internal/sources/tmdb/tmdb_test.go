// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/mediafeed/internal/config"
	"github.com/tomtom215/mediafeed/internal/media"
	"github.com/tomtom215/mediafeed/internal/sources"
)

const moviePage = `{
  "page": 1,
  "total_pages": 1,
  "total_results": 3,
  "results": [
    {"id": 603, "title": "The Matrix", "overview": "Neo", "poster_path": "/m.jpg",
     "release_date": "1999-03-30", "vote_average": 8.2, "genre_ids": [28, 878]},
    {"id": 604, "title": "", "vote_average": 5},
    {"id": 605, "title": "No Votes", "release_date": "2003"}
  ]
}`

const tvPage = `{
  "page": 1,
  "results": [
    {"id": 1399, "name": "Game of Thrones", "first_air_date": "2011-04-17",
     "vote_average": 8.4, "genre_ids": [10765, 18]}
  ]
}`

// newTestClient serves body and records the last request URL.
func newTestClient(t *testing.T, status int, body string) (*Client, *url.URL) {
	t.Helper()
	last := &url.URL{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*last = *r.URL
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	c := New(config.SourceConfig{
		BaseURL:  server.URL + "/3/",
		APIKey:   "k",
		Timeout:  5 * time.Second,
		Language: "pt-BR",
		Region:   "BR",
	})
	return c, last
}

func TestSearchMovies(t *testing.T) {
	c, last := newTestClient(t, http.StatusOK, moviePage)

	got, err := c.Search(context.Background(), media.KindMovie, "matrix")
	require.NoError(t, err)

	assert.Equal(t, "/3/search/movie", last.Path)
	q := last.Query()
	assert.Equal(t, "matrix", q.Get("query"))
	assert.Equal(t, "k", q.Get("api_key"))
	assert.Equal(t, "pt-BR", q.Get("language"))
	assert.Equal(t, "BR", q.Get("region"))

	require.Len(t, got, 2, "records without a title are dropped")
	m := got[0]
	assert.Equal(t, "movie-603", m.ID)
	assert.Equal(t, "603", m.SourceID)
	assert.Equal(t, media.KindMovie, m.Kind)
	assert.Equal(t, "The Matrix", m.Title)
	assert.Equal(t, ImageBaseURL+"/m.jpg", m.PosterURL)
	assert.Equal(t, "1999-03-30", m.ReleaseDate)
	require.NotNil(t, m.VoteAverage)
	assert.InDelta(t, 8.2, *m.VoteAverage, 1e-9)
	assert.Nil(t, m.Metacritic)
	assert.Equal(t, []string{"action", "scifi"}, m.Genres)

	assert.Nil(t, got[1].VoteAverage)
	assert.Empty(t, got[1].PosterURL)
}

func TestTrendingTV(t *testing.T) {
	c, last := newTestClient(t, http.StatusOK, tvPage)

	got, err := c.Trending(context.Background(), media.KindTV)
	require.NoError(t, err)
	assert.Equal(t, "/3/trending/tv/week", last.Path)

	require.Len(t, got, 1)
	assert.Equal(t, "tv-1399", got[0].ID)
	assert.Equal(t, "Game of Thrones", got[0].Title)
	assert.Equal(t, "2011-04-17", got[0].ReleaseDate)
}

func TestDiscoverByGenre(t *testing.T) {
	tests := []struct {
		name       string
		kind       media.Kind
		genre      string
		maxRating  string
		wantPath   string
		wantGenres string
	}{
		{"movie name", media.KindMovie, "scifi", "", "/3/discover/movie", "878"},
		{"tv name", media.KindTV, "scifi", "", "/3/discover/tv", "10765"},
		{"safe list", media.KindMovie, "16,10751,12", "12", "/3/discover/movie", "16,10751,12"},
		{"unknown tv genre", media.KindTV, "opera", "L", "/3/discover/tv", "18"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, last := newTestClient(t, http.StatusOK, `{"results":[]}`)

			got, err := c.DiscoverByGenre(context.Background(), tt.kind, tt.genre, sources.DiscoverOptions{MaxRating: tt.maxRating})
			require.NoError(t, err)
			assert.Empty(t, got)

			q := last.Query()
			assert.Equal(t, tt.wantPath, last.Path)
			assert.Equal(t, tt.wantGenres, q.Get("with_genres"))
			assert.Equal(t, "popularity.desc", q.Get("sort_by"))
			if tt.maxRating == "" {
				assert.Empty(t, q.Get("certification.lte"))
				assert.Empty(t, q.Get("certification_country"))
			} else {
				assert.Equal(t, tt.maxRating, q.Get("certification.lte"))
				assert.Equal(t, "BR", q.Get("certification_country"))
			}
		})
	}
}

func TestVoteAverageClamped(t *testing.T) {
	c, _ := newTestClient(t, http.StatusOK, `{"results":[{"id":1,"title":"Odd","vote_average":11.5}]}`)
	got, err := c.Search(context.Background(), media.KindMovie, "odd")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 10.0, *got[0].VoteAverage)
}

func TestErrors(t *testing.T) {
	c, _ := newTestClient(t, http.StatusUnauthorized, `{"status_message":"Invalid API key"}`)

	_, err := c.Search(context.Background(), media.KindMovie, "x")
	var statusErr *sources.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)

	_, err = c.Trending(context.Background(), media.KindGame)
	assert.True(t, errors.Is(err, sources.ErrUnsupportedKind))
}
