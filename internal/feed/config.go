// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package feed

import (
	"fmt"
	"time"

	"github.com/tomtom215/mediafeed/internal/config"
	"github.com/tomtom215/mediafeed/internal/media"
)

// Config holds the engine tunables.
type Config struct {
	// MaxItems caps every feed.
	MaxItems int

	// SeedCount is the number of signals searched per signal-mode feed.
	SeedCount int

	// PerSeedCap limits the results taken from each seed's search.
	PerSeedCap int

	// SignalCap limits the high ratings and the likes considered, each.
	SignalCap int

	// RestrictedMinResults is the size below which a restricted feed is
	// reported as thin. The feed is returned as is.
	RestrictedMinResults int

	// Seed seeds the engine's random source. Zero seeds from the clock.
	Seed int64

	// SourceTimeout bounds each remote source call.
	SourceTimeout time.Duration

	// KindTimeouts are the per-source call timeouts by kind. SourceTimeout
	// still caps them; kinds without an entry use SourceTimeout.
	KindTimeouts map[media.Kind]time.Duration

	// LibraryTimeout bounds each local store call.
	LibraryTimeout time.Duration

	// TrendingLastResort fills an empty signal feed with trending content.
	TrendingLastResort bool

	Weights     KindWeights
	ColdStart   ColdStartConfig
	Preferences PreferencesConfig
}

// KindWeights controls which kind a seed is searched in when no filter is
// set. Own is the weight of the seed's own kind.
type KindWeights struct {
	Own   float64
	Book  float64
	Game  float64
	Movie float64
}

// ColdStartConfig sizes the cold-start partitions.
type ColdStartConfig struct {
	// Local library caps per kind. Zero skips the kind.
	LocalGames  int
	LocalBooks  int
	LocalTV     int
	LocalMovies int

	// TrendingThreshold is the local count below which trending is added.
	TrendingThreshold int
	TrendingMovies    int
	TrendingTV        int

	// GameFillThreshold is the running total below which trending games
	// are added.
	GameFillThreshold  int
	TrendingGamesLimit int
}

// PreferencesConfig controls the preferred-genre blend.
type PreferencesConfig struct {
	Enabled   bool
	MaxGenres int
	PerKind   int
}

// DefaultConfig returns the stock tunables.
func DefaultConfig() *Config {
	return &Config{
		MaxItems:             24,
		SeedCount:            5,
		PerSeedCap:           10,
		SignalCap:            10,
		RestrictedMinResults: 6,
		SourceTimeout:        12 * time.Second,
		LibraryTimeout:       5 * time.Second,
		TrendingLastResort:   true,
		Weights:              KindWeights{Own: 0.4, Book: 0.2, Game: 0.2, Movie: 0.2},
		ColdStart: ColdStartConfig{
			LocalGames:         20,
			LocalBooks:         10,
			LocalTV:            10,
			TrendingThreshold:  20,
			TrendingMovies:     10,
			TrendingTV:         5,
			GameFillThreshold:  15,
			TrendingGamesLimit: 10,
		},
		Preferences: PreferencesConfig{Enabled: true, MaxGenres: 4, PerKind: 3},
	}
}

// ConfigFromSettings converts the loaded application settings.
func ConfigFromSettings(fc config.FeedConfig) *Config { //nolint:gocritic // hugeParam: read once at startup
	return &Config{
		MaxItems:             fc.MaxItems,
		SeedCount:            fc.SeedCount,
		PerSeedCap:           fc.PerSeedCap,
		SignalCap:            fc.SignalCap,
		RestrictedMinResults: fc.RestrictedMinResults,
		Seed:                 fc.RandomSeed,
		SourceTimeout:        fc.Timeout,
		LibraryTimeout:       fc.LibraryTimeout,
		TrendingLastResort:   fc.TrendingLastResort,
		Weights: KindWeights{
			Own:   fc.Weights.Own,
			Book:  fc.Weights.Book,
			Game:  fc.Weights.Game,
			Movie: fc.Weights.Movie,
		},
		ColdStart: ColdStartConfig{
			LocalGames:         fc.ColdStart.LocalGames,
			LocalBooks:         fc.ColdStart.LocalBooks,
			LocalTV:            fc.ColdStart.LocalTV,
			LocalMovies:        fc.ColdStart.LocalMovies,
			TrendingThreshold:  fc.ColdStart.TrendingThreshold,
			TrendingMovies:     fc.ColdStart.TrendingMovies,
			TrendingTV:         fc.ColdStart.TrendingTV,
			GameFillThreshold:  fc.ColdStart.GameFillThreshold,
			TrendingGamesLimit: fc.ColdStart.TrendingGamesLimit,
		},
		Preferences: PreferencesConfig{
			Enabled:   fc.Preferences.Enabled,
			MaxGenres: fc.Preferences.MaxGenres,
			PerKind:   fc.Preferences.PerKind,
		},
	}
}

// Validate checks the tunables.
func (c *Config) Validate() error {
	if c.MaxItems < 1 {
		return fmt.Errorf("max items must be at least 1, got %d", c.MaxItems)
	}
	if c.SeedCount < 1 || c.PerSeedCap < 1 || c.SignalCap < 1 {
		return fmt.Errorf("seed count, per-seed cap and signal cap must be at least 1")
	}
	if c.SourceTimeout <= 0 || c.LibraryTimeout <= 0 {
		return fmt.Errorf("source and library timeouts must be positive")
	}
	w := c.Weights
	if w.Own < 0 || w.Book < 0 || w.Game < 0 || w.Movie < 0 {
		return fmt.Errorf("kind weights must not be negative")
	}
	if w.Own+w.Book+w.Game+w.Movie == 0 {
		return fmt.Errorf("at least one kind weight must be positive")
	}
	if c.Preferences.Enabled && (c.Preferences.MaxGenres < 1 || c.Preferences.PerKind < 1) {
		return fmt.Errorf("preference blend needs max genres and per-kind limits of at least 1")
	}
	return nil
}

// remoteTimeout returns the call timeout for a remote source of kind.
func (c *Config) remoteTimeout(kind media.Kind) time.Duration {
	if d, ok := c.KindTimeouts[kind]; ok && d > 0 && d < c.SourceTimeout {
		return d
	}
	return c.SourceTimeout
}

// localLimit returns the cold-start library cap for kind.
func (c *ColdStartConfig) localLimit(kind media.Kind) int {
	switch kind {
	case media.KindGame:
		return c.LocalGames
	case media.KindBook:
		return c.LocalBooks
	case media.KindTV:
		return c.LocalTV
	case media.KindMovie:
		return c.LocalMovies
	default:
		return 0
	}
}
