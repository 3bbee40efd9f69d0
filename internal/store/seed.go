// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomtom215/mediafeed/internal/media"
)

// SeedDocument is the YAML layout accepted by SeedFromYAML:
//
//	items:
//	  - kind: game
//	    title: The Witcher 3
//	    metacritic: 93
//	    genres: [rpg]
//	signals:
//	  - user: alice
//	    media_id: movie-603
//	    kind: movie
//	    title: The Matrix
//	    rating: 5
//	  - user: alice
//	    media_id: book-abc
//	    kind: book
//	    title: Dune
//	    like: true
//	preferences:
//	  alice: [scifi, fantasy]
type SeedDocument struct {
	Items       []SeedItem          `yaml:"items"`
	Signals     []SeedSignal        `yaml:"signals"`
	Preferences map[string][]string `yaml:"preferences"`
}

// SeedItem is one curated library record.
type SeedItem struct {
	Kind        string   `yaml:"kind"`
	SourceID    string   `yaml:"source_id"`
	Title       string   `yaml:"title"`
	Overview    string   `yaml:"overview"`
	PosterURL   string   `yaml:"poster_url"`
	ReleaseDate string   `yaml:"release_date"`
	VoteAverage *float64 `yaml:"vote_average"`
	Metacritic  *int     `yaml:"metacritic"`
	Genres      []string `yaml:"genres"`
}

// SeedSignal is a rating (rating set) or a like (like: true).
type SeedSignal struct {
	User    string `yaml:"user"`
	MediaID string `yaml:"media_id"`
	Kind    string `yaml:"kind"`
	Title   string `yaml:"title"`
	Rating  int    `yaml:"rating"`
	Like    bool   `yaml:"like"`
}

// SeedStats reports what a seed run inserted.
type SeedStats struct {
	Items       int
	Ratings     int
	Likes       int
	Preferences int
}

// SeedFromFile opens path and seeds it with SeedFromYAML.
func (s *Store) SeedFromFile(ctx context.Context, path string) (SeedStats, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from operator configuration
	if err != nil {
		return SeedStats{}, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer closeWithLog(f, "seed file")
	return s.SeedFromYAML(ctx, f)
}

// SeedFromYAML loads a SeedDocument and inserts it in one transaction.
// Either everything is inserted or nothing is.
func (s *Store) SeedFromYAML(ctx context.Context, r io.Reader) (SeedStats, error) {
	var doc SeedDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return SeedStats{}, fmt.Errorf("failed to parse seed document: %w", err)
	}

	var stats SeedStats
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for i, item := range doc.Items {
			kind, err := media.ParseKind(item.Kind)
			if err != nil {
				return fmt.Errorf("items[%d]: %w", i, err)
			}
			_, err = s.addLibraryItem(ctx, tx, media.Record{
				Kind:        kind,
				SourceID:    item.SourceID,
				Title:       item.Title,
				Overview:    item.Overview,
				PosterURL:   item.PosterURL,
				ReleaseDate: item.ReleaseDate,
				VoteAverage: item.VoteAverage,
				Metacritic:  item.Metacritic,
				Genres:      item.Genres,
			})
			if err != nil {
				return fmt.Errorf("items[%d]: %w", i, err)
			}
			stats.Items++
		}

		for i, sig := range doc.Signals {
			kind, err := media.ParseKind(sig.Kind)
			if err != nil {
				return fmt.Errorf("signals[%d]: %w", i, err)
			}
			signal := media.Signal{UserID: sig.User, MediaID: sig.MediaID, Kind: kind, Title: sig.Title}
			switch {
			case sig.Like && sig.Rating != 0:
				return fmt.Errorf("signals[%d]: set either rating or like, not both", i)
			case sig.Like:
				signal.Source = media.SignalLike
				err = s.addLike(ctx, tx, signal)
				stats.Likes++
			default:
				signal.Source = media.SignalRating
				signal.Stars = sig.Rating
				err = s.addRating(ctx, tx, signal)
				stats.Ratings++
			}
			if err != nil {
				return fmt.Errorf("signals[%d]: %w", i, err)
			}
		}

		for user, genres := range doc.Preferences {
			if err := s.setPreferences(ctx, tx, user, genres); err != nil {
				return fmt.Errorf("preferences[%s]: %w", user, err)
			}
			stats.Preferences++
		}
		return nil
	})
	if err != nil {
		return SeedStats{}, err
	}

	s.logger.Info().
		Int("items", stats.Items).
		Int("ratings", stats.Ratings).
		Int("likes", stats.Likes).
		Int("preferences", stats.Preferences).
		Msg("seeded database")
	return stats, nil
}
