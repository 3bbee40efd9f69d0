// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tomtom215/mediafeed/internal/media"
)

const libraryColumns = `id, kind, source_id, title, overview, poster_url, release_date, vote_average, metacritic, genres`

// QueryLocalLibrary returns up to limit curated records of kind, best
// quality first: metacritic, else vote average times ten, else zero.
func (s *Store) QueryLocalLibrary(ctx context.Context, kind media.Kind, limit int) ([]media.Record, error) {
	if limit <= 0 {
		return []media.Record{}, nil
	}

	query := s.rebind(`SELECT ` + libraryColumns + ` FROM library_items
		WHERE kind = ?
		ORDER BY COALESCE(metacritic, vote_average * 10, 0) DESC, id ASC
		LIMIT ?`)

	rows, err := s.db.QueryContext(ctx, query, string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query local library: %w", err)
	}
	defer closeWithLog(rows, "library rows")

	records := make([]media.Record, 0, limit)
	for rows.Next() {
		rec, err := scanLibraryItem(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate local library: %w", err)
	}
	return records, nil
}

// GetLibraryItem loads a library record by its "db-<kind>-<n>" id.
func (s *Store) GetLibraryItem(ctx context.Context, id string) (media.Record, error) {
	rowID, err := parseLocalID(id)
	if err != nil {
		return media.Record{}, err
	}

	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+libraryColumns+` FROM library_items WHERE id = ?`), rowID)
	rec, err := scanLibraryItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return media.Record{}, fmt.Errorf("library item %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return media.Record{}, err
	}
	if rec.ID != id {
		return media.Record{}, fmt.Errorf("library item %s: %w", id, ErrNotFound)
	}
	return rec, nil
}

// AddLibraryItem stores a curated record and returns it with its assigned
// local id.
func (s *Store) AddLibraryItem(ctx context.Context, rec media.Record) (media.Record, error) {
	return s.addLibraryItem(ctx, s.db, rec)
}

func (s *Store) addLibraryItem(ctx context.Context, q querier, rec media.Record) (media.Record, error) {
	rec.Title = strings.TrimSpace(rec.Title)
	if rec.Title == "" {
		return media.Record{}, errors.New("library item title is required")
	}
	if !rec.Kind.Valid() {
		return media.Record{}, fmt.Errorf("library item %q: %w: %q", rec.Title, media.ErrUnknownKind, rec.Kind)
	}
	// Validate ranges with a placeholder id; the real one is assigned below.
	probe := rec
	probe.ID = media.LocalID(rec.Kind, 0)
	if err := probe.Validate(); err != nil {
		return media.Record{}, err
	}

	var vote sql.NullFloat64
	if rec.VoteAverage != nil {
		vote = sql.NullFloat64{Float64: *rec.VoteAverage, Valid: true}
	}
	var metacritic sql.NullInt64
	if rec.Metacritic != nil {
		metacritic = sql.NullInt64{Int64: int64(*rec.Metacritic), Valid: true}
	}

	var id int64
	err := q.QueryRowContext(ctx, s.rebind(`INSERT INTO library_items
		(kind, source_id, title, overview, poster_url, release_date, vote_average, metacritic, genres)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`),
		string(rec.Kind), rec.SourceID, rec.Title, rec.Overview, rec.PosterURL, rec.ReleaseDate,
		vote, metacritic, joinGenres(rec.Genres),
	).Scan(&id)
	if err != nil {
		return media.Record{}, fmt.Errorf("failed to insert library item %q: %w", rec.Title, err)
	}

	rec.ID = media.LocalID(rec.Kind, id)
	if rec.SourceID == "" {
		rec.SourceID = strconv.FormatInt(id, 10)
	}
	if rec.Genres == nil {
		rec.Genres = []string{}
	}
	return rec, nil
}

// CountLibraryItems returns the number of curated records per kind.
func (s *Store) CountLibraryItems(ctx context.Context) (map[media.Kind]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM library_items GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("failed to count library items: %w", err)
	}
	defer closeWithLog(rows, "library count rows")

	counts := make(map[media.Kind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("failed to scan library count: %w", err)
		}
		counts[media.Kind(kind)] = n
	}
	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLibraryItem(row rowScanner) (media.Record, error) {
	var (
		id         int64
		kind       string
		rec        media.Record
		vote       sql.NullFloat64
		metacritic sql.NullInt64
		genres     string
	)
	err := row.Scan(&id, &kind, &rec.SourceID, &rec.Title, &rec.Overview, &rec.PosterURL,
		&rec.ReleaseDate, &vote, &metacritic, &genres)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return media.Record{}, err
		}
		return media.Record{}, fmt.Errorf("failed to scan library item: %w", err)
	}

	rec.Kind = media.Kind(kind)
	rec.ID = media.LocalID(rec.Kind, id)
	if rec.SourceID == "" {
		rec.SourceID = strconv.FormatInt(id, 10)
	}
	if vote.Valid {
		rec.VoteAverage = media.Float(media.NormalizeVote(vote.Float64, media.ScaleTen))
	}
	if metacritic.Valid {
		rec.Metacritic = media.Int(int(metacritic.Int64))
	}
	rec.Genres = splitGenres(genres)
	return rec, nil
}

// parseLocalID extracts the row id from "db-<kind>-<n>".
func parseLocalID(id string) (int64, error) {
	if !strings.HasPrefix(id, media.LocalIDPrefix) {
		return 0, fmt.Errorf("%q is not a local library id: %w", id, ErrNotFound)
	}
	i := strings.LastIndexByte(id, '-')
	n, err := strconv.ParseInt(id[i+1:], 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%q is not a local library id: %w", id, ErrNotFound)
	}
	return n, nil
}

func joinGenres(genres []string) string {
	clean := make([]string, 0, len(genres))
	for _, g := range genres {
		g = strings.TrimSpace(strings.ReplaceAll(g, ",", " "))
		if g != "" {
			clean = append(clean, g)
		}
	}
	return strings.Join(clean, ",")
}

func splitGenres(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
