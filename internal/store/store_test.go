// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package store

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/mediafeed/internal/config"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "mysql", DSN: "x"}, zerolog.Nop())
	require.Error(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	version, err := s.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(Migrations()), version)

	require.NoError(t, s.Migrate(ctx))
	require.NoError(t, s.Migrate(ctx))

	var applied int
	require.NoError(t, s.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, len(Migrations()), applied)
}

func TestMigrations_Ordered(t *testing.T) {
	prev := 0
	for _, m := range Migrations() {
		assert.Greater(t, m.Version, prev, "migration %s out of order", m.Name)
		prev = m.Version
	}
}

func TestExpand(t *testing.T) {
	sqlite := &Store{dialect: DialectSQLite}
	pg := &Store{dialect: DialectPostgres}

	assert.Equal(t, "id INTEGER PRIMARY KEY AUTOINCREMENT", sqlite.expand("id {{pk}}"))
	assert.Equal(t, "id BIGSERIAL PRIMARY KEY", pg.expand("id {{pk}}"))
}

func TestRebind(t *testing.T) {
	query := `SELECT a FROM t WHERE x = ? AND y = ? LIMIT ?`

	assert.Equal(t, query, rebind(DialectSQLite, query))
	assert.Equal(t, `SELECT a FROM t WHERE x = $1 AND y = $2 LIMIT $3`, rebind(DialectPostgres, query))
	assert.Equal(t, `SELECT 1`, rebind(DialectPostgres, `SELECT 1`))
}

func TestSplitStatements(t *testing.T) {
	got := splitStatements("CREATE TABLE a (x INT);\n\n CREATE INDEX i ON a (x);  ")
	assert.Equal(t, []string{"CREATE TABLE a (x INT)", "CREATE INDEX i ON a (x)"}, got)
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
	assert.Equal(t, DialectSQLite, s.Dialect())
}
