// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

// Package tmdb implements the movie and TV source adapter on top of The
// Movie Database v3 API.
package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/mediafeed/internal/config"
	"github.com/tomtom215/mediafeed/internal/media"
	"github.com/tomtom215/mediafeed/internal/sources"
)

// Name identifies the provider in metrics and logs.
const Name = "tmdb"

// ImageBaseURL prefixes poster paths.
const ImageBaseURL = "https://image.tmdb.org/t/p/w780"

// Kinds lists the media kinds served by TMDB.
var Kinds = []media.Kind{media.KindMovie, media.KindTV}

// Client is the TMDB adapter. It is safe for concurrent use.
type Client struct {
	http     *sources.Client
	baseURL  string
	apiKey   string
	language string
	region   string
}

// New creates a TMDB adapter from its source configuration.
func New(cfg config.SourceConfig) *Client {
	return &Client{
		http:     sources.NewClient(Name, cfg.Timeout),
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		language: cfg.Language,
		region:   cfg.Region,
	}
}

func (c *Client) Name() string { return Name }

// Search queries search/movie or search/tv.
func (c *Client) Search(ctx context.Context, kind media.Kind, query string) ([]media.Record, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("query", query)
	return c.list(ctx, sources.OpSearch, kind, "search/"+string(kind), params)
}

// DiscoverByGenre lists popular titles in a genre. The genre may be a name
// ("scifi"), a TMDB id or a comma-separated id list. A MaxRating restricts
// results by certification in the configured region.
func (c *Client) DiscoverByGenre(ctx context.Context, kind media.Kind, genre string, opts sources.DiscoverOptions) ([]media.Record, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("sort_by", "popularity.desc")
	if kind == media.KindTV {
		params.Set("with_genres", sources.TMDBTVGenre(genre))
	} else {
		params.Set("with_genres", sources.TMDBMovieGenre(genre))
	}
	if opts.MaxRating != "" {
		country := c.region
		if country == "" {
			country = "BR"
		}
		params.Set("certification_country", country)
		params.Set("certification.lte", opts.MaxRating)
	}
	return c.list(ctx, sources.OpDiscover, kind, "discover/"+string(kind), params)
}

// Trending lists the weekly trending titles.
func (c *Client) Trending(ctx context.Context, kind media.Kind) ([]media.Record, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	return c.list(ctx, sources.OpTrending, kind, "trending/"+string(kind)+"/week", url.Values{})
}

func (c *Client) list(ctx context.Context, op string, kind media.Kind, path string, params url.Values) ([]media.Record, error) {
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	if c.language != "" {
		params.Set("language", c.language)
	}
	if c.region != "" {
		params.Set("region", c.region)
	}

	var page pageResponse
	if err := c.http.GetJSON(ctx, op, c.baseURL+"/"+path+"?"+params.Encode(), &page); err != nil {
		return nil, fmt.Errorf("tmdb %s %s: %w", op, kind, err)
	}

	records := make([]media.Record, 0, len(page.Results))
	for i := range page.Results {
		if rec, ok := page.Results[i].toRecord(kind); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

func checkKind(kind media.Kind) error {
	if kind != media.KindMovie && kind != media.KindTV {
		return sources.UnsupportedKind(Name, kind)
	}
	return nil
}

type pageResponse struct {
	Page         int      `json:"page"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
	Results      []result `json:"results"`
}

// result covers both movie and TV payloads; TV uses name and first_air_date.
type result struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Name         string   `json:"name"`
	Overview     string   `json:"overview"`
	PosterPath   string   `json:"poster_path"`
	ReleaseDate  string   `json:"release_date"`
	FirstAirDate string   `json:"first_air_date"`
	VoteAverage  *float64 `json:"vote_average"`
	GenreIDs     []int    `json:"genre_ids"`
}

func (r *result) toRecord(kind media.Kind) (media.Record, bool) {
	title, released := r.Title, r.ReleaseDate
	if kind == media.KindTV {
		title, released = r.Name, r.FirstAirDate
	}
	if strings.TrimSpace(title) == "" {
		return media.Record{}, false
	}

	id := strconv.FormatInt(r.ID, 10)
	rec := media.Record{
		ID:          string(kind) + "-" + id,
		SourceID:    id,
		Kind:        kind,
		Title:       title,
		Overview:    r.Overview,
		ReleaseDate: released,
		Genres:      sources.TMDBGenreNames(r.GenreIDs),
	}
	if r.PosterPath != "" {
		rec.PosterURL = ImageBaseURL + r.PosterPath
	}
	if r.VoteAverage != nil {
		rec.VoteAverage = media.Float(media.NormalizeVote(*r.VoteAverage, media.ScaleTen))
	}
	return rec, true
}
