// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

// Package rawg implements the game source adapter on top of the RAWG
// Video Games Database API.
package rawg

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/mediafeed/internal/config"
	"github.com/tomtom215/mediafeed/internal/logging"
	"github.com/tomtom215/mediafeed/internal/media"
	"github.com/tomtom215/mediafeed/internal/sources"
)

// Name identifies the provider in metrics and logs.
const Name = "rawg"

const (
	searchPageSize   = 20
	discoverPageSize = 20
	trendingPageSize = 40
)

// Client is the RAWG adapter. It is safe for concurrent use.
type Client struct {
	http    *sources.Client
	baseURL string
	apiKey  string
	now     func() time.Time
}

// New creates a RAWG adapter from its source configuration.
func New(cfg config.SourceConfig) *Client {
	return &Client{
		http:    sources.NewClient(Name, cfg.Timeout),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		now:     time.Now,
	}
}

func (c *Client) Name() string { return Name }

// Search runs a free-text game search.
func (c *Client) Search(ctx context.Context, kind media.Kind, query string) ([]media.Record, error) {
	if kind != media.KindGame {
		return nil, sources.UnsupportedKind(Name, kind)
	}
	params := url.Values{}
	params.Set("search", query)
	params.Set("page_size", strconv.Itoa(searchPageSize))
	return c.games(ctx, sources.OpSearch, params)
}

// DiscoverByGenre lists the best rated games in a genre. When the genre
// listing fails for any reason other than the caller's context, the genre
// is retried as a plain search. RAWG has no rating data, so MaxRating is
// ignored.
func (c *Client) DiscoverByGenre(ctx context.Context, kind media.Kind, genre string, _ sources.DiscoverOptions) ([]media.Record, error) {
	if kind != media.KindGame {
		return nil, sources.UnsupportedKind(Name, kind)
	}
	params := url.Values{}
	params.Set("genres", sources.RAWGGenreSlug(genre))
	params.Set("ordering", "-metacritic")
	params.Set("page_size", strconv.Itoa(discoverPageSize))

	records, err := c.games(ctx, sources.OpDiscover, params)
	if err == nil {
		return records, nil
	}
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return nil, err
	}

	logging.Ctx(ctx).Warn().Err(err).Str("genre", genre).Msg("rawg genre discover failed, falling back to search")
	return c.Search(ctx, kind, genre)
}

// Trending lists the best rated games released in the last 12 months.
func (c *Client) Trending(ctx context.Context, kind media.Kind) ([]media.Record, error) {
	if kind != media.KindGame {
		return nil, sources.UnsupportedKind(Name, kind)
	}
	today := c.now().UTC()
	lastYear := today.AddDate(-1, 0, 0)

	params := url.Values{}
	params.Set("dates", lastYear.Format(time.DateOnly)+","+today.Format(time.DateOnly))
	params.Set("ordering", "-metacritic")
	params.Set("page_size", strconv.Itoa(trendingPageSize))
	return c.games(ctx, sources.OpTrending, params)
}

func (c *Client) games(ctx context.Context, op string, params url.Values) ([]media.Record, error) {
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	var page gamesResponse
	if err := c.http.GetJSON(ctx, op, c.baseURL+"/games?"+params.Encode(), &page); err != nil {
		return nil, fmt.Errorf("rawg %s: %w", op, err)
	}

	records := make([]media.Record, 0, len(page.Results))
	for i := range page.Results {
		if rec, ok := page.Results[i].toRecord(); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

type gamesResponse struct {
	Count   int    `json:"count"`
	Results []game `json:"results"`
}

type game struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	BackgroundImage string  `json:"background_image"`
	Released        string  `json:"released"`
	Rating          float64 `json:"rating"`
	Metacritic      *int    `json:"metacritic"`
	Genres          []struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"genres"`
}

func (g *game) toRecord() (media.Record, bool) {
	if strings.TrimSpace(g.Name) == "" {
		return media.Record{}, false
	}

	id := strconv.FormatInt(g.ID, 10)
	rec := media.Record{
		ID:          "rawg-game-" + id,
		SourceID:    id,
		Kind:        media.KindGame,
		Title:       g.Name,
		PosterURL:   g.BackgroundImage,
		ReleaseDate: g.Released,
		Genres:      make([]string, 0, len(g.Genres)),
	}

	metacritic := 0
	if g.Metacritic != nil && *g.Metacritic > 0 && *g.Metacritic <= 100 {
		metacritic = *g.Metacritic
		rec.Metacritic = media.Int(metacritic)
	}
	rec.VoteAverage = media.Float(media.VoteFromRAWG(metacritic, g.Rating))

	for _, genre := range g.Genres {
		if genre.Slug != "" {
			rec.Genres = append(rec.Genres, genre.Slug)
		}
	}
	return rec, true
}
