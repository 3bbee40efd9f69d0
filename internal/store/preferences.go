// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// MaxPreferences caps the stored genre preferences per user.
const MaxPreferences = 8

// PreferredGenres returns the user's profile genres in preference order.
func (s *Store) PreferredGenres(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT genre FROM user_preferences WHERE user_id = ? ORDER BY position ASC LIMIT ?`),
		userID, MaxPreferences)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer closeWithLog(rows, "preference rows")

	genres := make([]string, 0, MaxPreferences)
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// SetPreferences replaces the user's genre preferences. Genres are
// lowercased and deduplicated; only the first MaxPreferences are kept.
func (s *Store) SetPreferences(ctx context.Context, userID string, genres []string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.setPreferences(ctx, tx, userID, genres)
	})
}

func (s *Store) setPreferences(ctx context.Context, q querier, userID string, genres []string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("preferences user id is required")
	}

	if _, err := q.ExecContext(ctx, s.rebind(`DELETE FROM user_preferences WHERE user_id = ?`), userID); err != nil {
		return fmt.Errorf("failed to clear preferences: %w", err)
	}

	seen := make(map[string]bool)
	position := 0
	for _, g := range genres {
		g = strings.ToLower(strings.TrimSpace(g))
		if g == "" || seen[g] {
			continue
		}
		if position == MaxPreferences {
			break
		}
		seen[g] = true
		_, err := q.ExecContext(ctx,
			s.rebind(`INSERT INTO user_preferences (user_id, genre, position) VALUES (?, ?, ?)`),
			userID, g, position)
		if err != nil {
			return fmt.Errorf("failed to save preference %q: %w", g, err)
		}
		position++
	}
	return nil
}
