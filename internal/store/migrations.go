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
	"time"
)

// Migration represents a versioned database migration.
type Migration struct {
	Version     int    // Unique version number (monotonically increasing)
	Name        string // Human-readable migration name
	Description string
	// SQL may contain several statements separated by ";". The token
	// {{pk}} expands to the dialect's auto-increment primary key.
	SQL string
}

const schemaMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	applied_at BIGINT NOT NULL
)`

// migrations is append-only: never modify or remove a migration once
// databases exist that have applied it.
var migrations = []Migration{
	{
		Version:     1,
		Name:        "library_items",
		Description: "Curated local library",
		SQL: `
CREATE TABLE IF NOT EXISTS library_items (
	id {{pk}},
	kind TEXT NOT NULL,
	source_id TEXT NOT NULL DEFAULT '',
	title TEXT NOT NULL,
	overview TEXT NOT NULL DEFAULT '',
	poster_url TEXT NOT NULL DEFAULT '',
	release_date TEXT NOT NULL DEFAULT '',
	vote_average DOUBLE PRECISION,
	metacritic INTEGER,
	genres TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_library_items_kind ON library_items (kind)`,
	},
	{
		Version:     2,
		Name:        "user_signals",
		Description: "User ratings and likes",
		SQL: `
CREATE TABLE IF NOT EXISTS user_ratings (
	id {{pk}},
	user_id TEXT NOT NULL,
	media_id TEXT NOT NULL,
	media_kind TEXT NOT NULL,
	title TEXT NOT NULL,
	rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
	created_at BIGINT NOT NULL,
	UNIQUE (user_id, media_id)
);
CREATE INDEX IF NOT EXISTS idx_user_ratings_user ON user_ratings (user_id, created_at);
CREATE TABLE IF NOT EXISTS user_likes (
	id {{pk}},
	user_id TEXT NOT NULL,
	media_id TEXT NOT NULL,
	media_kind TEXT NOT NULL,
	title TEXT NOT NULL,
	created_at BIGINT NOT NULL,
	UNIQUE (user_id, media_id)
);
CREATE INDEX IF NOT EXISTS idx_user_likes_user ON user_likes (user_id, created_at)`,
	},
	{
		Version:     3,
		Name:        "user_preferences",
		Description: "Ordered profile genre preferences",
		SQL: `
CREATE TABLE IF NOT EXISTS user_preferences (
	user_id TEXT NOT NULL,
	genre TEXT NOT NULL,
	position INTEGER NOT NULL,
	PRIMARY KEY (user_id, genre)
)`,
	},
}

// Migrations returns all versioned migrations in order.
func Migrations() []Migration {
	out := make([]Migration, len(migrations))
	copy(out, migrations)
	return out
}

func (s *Store) expand(script string) string {
	pk := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.dialect == DialectPostgres {
		pk = "BIGSERIAL PRIMARY KEY"
	}
	return strings.ReplaceAll(script, "{{pk}}", pk)
}

// Migrate executes the migrations that have not been applied yet. It is
// idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaMigrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := s.appliedVersions(ctx)
	if err != nil {
		return err
	}

	newMigrations := 0
	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		err := s.withTx(ctx, func(tx *sql.Tx) error {
			for _, stmt := range splitStatements(s.expand(m.SQL)) {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("failed to execute migration v%d (%s): %w", m.Version, m.Name, err)
				}
			}
			_, err := tx.ExecContext(ctx,
				s.rebind(`INSERT INTO schema_migrations (version, name, description, applied_at) VALUES (?, ?, ?, ?)`),
				m.Version, m.Name, m.Description, time.Now().UnixMilli())
			if err != nil {
				return fmt.Errorf("failed to record migration v%d: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		newMigrations++
	}

	if newMigrations > 0 {
		s.logger.Info().Int("applied", newMigrations).Msg("applied database migrations")
	}
	return nil
}

// SchemaVersion returns the highest applied migration version
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

func (s *Store) appliedVersions(ctx context.Context) (map[int]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer closeWithLog(rows, "migration rows")

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

func splitStatements(script string) []string {
	parts := strings.Split(script, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
