// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

// Package googlebooks implements the book source adapter on top of the
// Google Books volumes API.
//
// Volume search results are noisy, so every listing is filtered (title and
// description required) and re-ranked with a quality heuristic before the
// top results are kept:
//
//	score = 20 if the volume has cover art
//	      + averageRating * 5
//	      + 10 if the volume language matches the configured language
//	      - 15 if the description is shorter than 50 characters
package googlebooks

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/mediafeed/internal/config"
	"github.com/tomtom215/mediafeed/internal/media"
	"github.com/tomtom215/mediafeed/internal/sources"
)

// Name identifies the provider in metrics and logs.
const Name = "googlebooks"

const (
	maxResults        = 40
	keepResults       = 20
	shortDescription  = 50
	defaultTrendQuery = "subject:fiction bestseller"
)

// Client is the Google Books adapter. It is safe for concurrent use.
type Client struct {
	http          *sources.Client
	baseURL       string
	apiKey        string
	language      string
	trendingQuery string
}

// New creates a Google Books adapter from its source configuration.
func New(cfg config.SourceConfig) *Client {
	trending := cfg.TrendingQuery
	if trending == "" {
		trending = defaultTrendQuery
	}
	return &Client{
		http:          sources.NewClient(Name, cfg.Timeout),
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:        cfg.APIKey,
		language:      cfg.Language,
		trendingQuery: trending,
	}
}

func (c *Client) Name() string { return Name }

// Search runs a volumes query.
func (c *Client) Search(ctx context.Context, kind media.Kind, query string) ([]media.Record, error) {
	if kind != media.KindBook {
		return nil, sources.UnsupportedKind(Name, kind)
	}
	return c.volumes(ctx, sources.OpSearch, query)
}

// DiscoverByGenre widens the genre into OR-joined subject queries. Google
// Books has no maturity data usable here, so MaxRating is ignored.
func (c *Client) DiscoverByGenre(ctx context.Context, kind media.Kind, genre string, _ sources.DiscoverOptions) ([]media.Record, error) {
	if kind != media.KindBook {
		return nil, sources.UnsupportedKind(Name, kind)
	}
	return c.volumes(ctx, sources.OpDiscover, sources.BookGenreQuery(genre))
}

// Trending runs the configured curated query; the API has no trending feed.
func (c *Client) Trending(ctx context.Context, kind media.Kind) ([]media.Record, error) {
	if kind != media.KindBook {
		return nil, sources.UnsupportedKind(Name, kind)
	}
	return c.volumes(ctx, sources.OpTrending, c.trendingQuery)
}

func (c *Client) volumes(ctx context.Context, op, query string) ([]media.Record, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("printType", "books")
	params.Set("orderBy", "relevance")
	if c.language != "" {
		params.Set("langRestrict", c.language)
	}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	var resp volumesResponse
	if err := c.http.GetJSON(ctx, op, c.baseURL+"/volumes?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("googlebooks %s: %w", op, err)
	}
	return c.rank(resp.Items), nil
}

// rank filters junk volumes, orders the rest by the quality heuristic and
// converts the top keepResults into records.
func (c *Client) rank(items []volume) []media.Record {
	type scored struct {
		v     *volume
		score float64
	}
	candidates := make([]scored, 0, len(items))
	for i := range items {
		v := &items[i]
		if strings.TrimSpace(v.Info.Title) == "" || strings.TrimSpace(v.Info.Description) == "" {
			continue
		}
		candidates = append(candidates, scored{v: v, score: c.score(&v.Info)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > keepResults {
		candidates = candidates[:keepResults]
	}

	records := make([]media.Record, 0, len(candidates))
	for _, cand := range candidates {
		records = append(records, cand.v.toRecord())
	}
	return records
}

func (c *Client) score(info *volumeInfo) float64 {
	var s float64
	if info.ImageLinks != nil {
		s += 20
	}
	if info.AverageRating != nil {
		s += *info.AverageRating * 5
	}
	if c.language != "" && strings.HasPrefix(info.Language, c.language) {
		s += 10
	}
	if len(info.Description) < shortDescription {
		s -= 15
	}
	return s
}

type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	ID   string     `json:"id"`
	Info volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title         string      `json:"title"`
	Authors       []string    `json:"authors"`
	Description   string      `json:"description"`
	PublishedDate string      `json:"publishedDate"`
	AverageRating *float64    `json:"averageRating"`
	Language      string      `json:"language"`
	Categories    []string    `json:"categories"`
	ImageLinks    *imageLinks `json:"imageLinks"`
}

type imageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}

func (v *volume) toRecord() media.Record {
	rec := media.Record{
		ID:          "book-" + v.ID,
		SourceID:    v.ID,
		Kind:        media.KindBook,
		Title:       v.Info.Title,
		Overview:    v.Info.Description,
		ReleaseDate: v.Info.PublishedDate,
		Genres:      categories(v.Info.Categories),
	}
	if v.Info.ImageLinks != nil {
		rec.PosterURL = secureURL(v.Info.ImageLinks.Thumbnail)
	}
	if v.Info.AverageRating != nil {
		rec.VoteAverage = media.Float(media.NormalizeVote(*v.Info.AverageRating, media.ScaleFive))
	}
	return rec
}

// categories flattens "Fiction / Fantasy / Epic" style paths, deduplicated.
func categories(raw []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		for _, part := range strings.Split(c, " / ") {
			part = strings.TrimSpace(part)
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
			out = append(out, part)
		}
	}
	return out
}

func secureURL(u string) string {
	if strings.HasPrefix(u, "http:") {
		return "https:" + strings.TrimPrefix(u, "http:")
	}
	return u
}
