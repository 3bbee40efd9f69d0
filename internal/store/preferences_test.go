// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPreferences(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetPreferences(ctx, "u1", []string{"SciFi", " fantasy ", "scifi", "", "horror"}))

	got, err := s.PreferredGenres(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"scifi", "fantasy", "horror"}, got)

	require.NoError(t, s.SetPreferences(ctx, "u1", []string{"drama"}))
	got, err = s.PreferredGenres(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"drama"}, got)
}

func TestSetPreferences_Cap(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	genres := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	require.NoError(t, s.SetPreferences(ctx, "u1", genres))

	got, err := s.PreferredGenres(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, genres[:MaxPreferences], got)
}

func TestPreferredGenres_None(t *testing.T) {
	s := newTestStore(t)

	got, err := s.PreferredGenres(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.Error(t, s.SetPreferences(context.Background(), " ", []string{"a"}))
}
