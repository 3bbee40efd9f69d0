// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package sources

import (
	"regexp"
	"strconv"
	"strings"
)

// Genre names accepted by the feed map onto provider-specific identifiers.
// The tables below cover the genres offered during onboarding; anything
// else falls through to the provider with minimal translation.

// tmdbMovieGenres maps genre names to TMDB movie genre ids.
var tmdbMovieGenres = map[string]string{
	"action":      "28",
	"adventure":   "12",
	"animation":   "16",
	"comedy":      "35",
	"crime":       "80",
	"documentary": "99",
	"drama":       "18",
	"family":      "10751",
	"fantasy":     "14",
	"history":     "36",
	"horror":      "27",
	"music":       "10402",
	"mystery":     "9648",
	"romance":     "10749",
	"scifi":       "878",
	"thriller":    "53",
	"war":         "10752",
	"western":     "37",
	"kids":        "10762",
	"news":        "10763",
	"reality":     "10764",
	"soap":        "10766",
	"talk":        "10767",
	"politics":    "10768",
}

// tmdbTVGenres overrides the ids that differ for TV.
var tmdbTVGenres = map[string]string{
	"action":      "10759", // Action & Adventure
	"scifi":       "10765", // Sci-Fi & Fantasy
	"drama":       "18",
	"comedy":      "35",
	"mystery":     "9648",
	"war":         "10768",
	"western":     "37",
	"animation":   "16",
	"crime":       "80",
	"documentary": "99",
	"family":      "10751",
	"kids":        "10762",
	"reality":     "10764",
}

const (
	tmdbMovieFallbackGenre = "28"
	tmdbTVFallbackGenre    = "18"
)

// numericGenreList matches "878" and "16,10751".
var numericGenreList = regexp.MustCompile(`^\d+(,\d+)*$`)

// TMDBMovieGenre resolves a genre name or numeric id list for discover/movie.
// Unknown names fall back to action.
func TMDBMovieGenre(genre string) string {
	return resolveTMDBGenre(genre, tmdbMovieGenres, tmdbMovieFallbackGenre)
}

// TMDBTVGenre resolves a genre name or numeric id list for discover/tv.
// Unknown names fall back to drama.
func TMDBTVGenre(genre string) string {
	return resolveTMDBGenre(genre, tmdbTVGenres, tmdbTVFallbackGenre)
}

func resolveTMDBGenre(genre string, table map[string]string, fallback string) string {
	g := normalizeGenre(genre)
	if id, ok := table[g]; ok {
		return id
	}
	if numericGenreList.MatchString(g) {
		return g
	}
	return fallback
}

// rawgGenreSlugs maps genre names to RAWG genre slugs where they differ.
var rawgGenreSlugs = map[string]string{
	"action":                "action",
	"adventure":             "adventure",
	"rpg":                   "role-playing-games-rpg",
	"strategy":              "strategy",
	"shooter":               "shooter",
	"casual":                "casual",
	"simulation":            "simulation",
	"puzzle":                "puzzle",
	"arcade":                "arcade",
	"platformer":            "platformer",
	"racing":                "racing",
	"massively-multiplayer": "massively-multiplayer",
	"sports":                "sports",
	"fighting":              "fighting",
	"family":                "family",
	"board-games":           "board-games",
	"educational":           "educational",
	"card":                  "card",
	"indie":                 "indie",
}

// RAWGGenreSlug returns the RAWG slug for genre. Unknown genres are passed
// through lowercased.
func RAWGGenreSlug(genre string) string {
	g := normalizeGenre(genre)
	if slug, ok := rawgGenreSlugs[g]; ok {
		return slug
	}
	return g
}

// bookSubjectQueries widens a genre into several Google Books queries.
var bookSubjectQueries = map[string][]string{
	"action":    {"subject:action", "intitle:aventura", "best seller ação"},
	"adventure": {"subject:adventure", "intitle:aventura", "épico aventura"},
	"comedy":    {"subject:humor", "intitle:comédia", "livros humor"},
	"drama":     {"subject:drama", "intitle:drama", "romance drama"},
	"scifi":     {"subject:science+fiction", "intitle:ficção científica", "sci-fi best seller"},
	"fantasy":   {"subject:fantasy", "intitle:fantasia", "alta fantasia"},
	"horror":    {"subject:horror", "intitle:terror", "horror best seller"},
	"romance":   {"subject:romance", "intitle:romance", "romance contemporâneo"},
	"history":   {"subject:history", "intitle:história", "história brasil"},
	"mystery":   {"subject:mystery", "intitle:mistério", "suspense policial"},
	"fiction":   {"subject:fiction", "literatura brasileira", "ficção moderna"},
	"biography": {"subject:biography", "biografia famosa", "autobiografia"},
}

// BookGenreQuery returns the Google Books query for genre: the mapped
// subject queries OR-joined with " | ", or the genre itself.
func BookGenreQuery(genre string) string {
	if queries, ok := bookSubjectQueries[normalizeGenre(genre)]; ok {
		return strings.Join(queries, " | ")
	}
	return strings.TrimSpace(genre)
}

func normalizeGenre(genre string) string {
	return strings.ToLower(strings.TrimSpace(genre))
}

// tmdbGenreNames is the reverse of the movie and TV tables. TV-only ids
// resolve to their closest movie genre name.
var tmdbGenreNames = func() map[int]string {
	out := make(map[int]string, len(tmdbMovieGenres)+2)
	for _, table := range []map[string]string{tmdbTVGenres, tmdbMovieGenres} {
		for name, id := range table {
			if n, err := strconv.Atoi(id); err == nil {
				out[n] = name
			}
		}
	}
	return out
}()

// TMDBGenreNames converts TMDB genre ids to genre names, skipping unknown ids.
func TMDBGenreNames(ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := tmdbGenreNames[id]; ok {
			names = append(names, name)
		}
	}
	return names
}
