// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//
//  1. Metadata sources: TMDB (movies, tv), RAWG (games), Google Books (books)
//  2. Infrastructure: Database (local library and signals), Cache, Server
//  3. Feed: Engine caps, kind weights, timeouts and toggles
//  4. Security and Logging
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
	Database DatabaseConfig `koanf:"database"`
	Cache    CacheConfig    `koanf:"cache"`
	Sources  SourcesConfig  `koanf:"sources"`
	Feed     FeedConfig     `koanf:"feed"`
	Security SecurityConfig `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// DatabaseConfig configures the SQL store holding the curated library,
// user signals and profile genre preferences.
type DatabaseConfig struct {
	// Driver is "sqlite" (default) or "postgres".
	Driver string `koanf:"driver"`

	// DSN is a file path or ":memory:" for sqlite and a connection URL for postgres.
	DSN string `koanf:"dsn"`

	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`

	// SeedFile is an optional YAML document loaded at startup.
	SeedFile string `koanf:"seed_file"`
}

// CacheConfig selects the response cache backend used by the source decorators.
type CacheConfig struct {
	// Backend is one of memory, badger, redis or none.
	Backend string `koanf:"backend"`

	SearchTTL       time.Duration `koanf:"search_ttl"`
	DiscoverTTL     time.Duration `koanf:"discover_ttl"`
	TrendingTTL     time.Duration `koanf:"trending_ttl"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`

	Badger BadgerCacheConfig `koanf:"badger"`
	Redis  RedisCacheConfig  `koanf:"redis"`
}

// BadgerCacheConfig configures the BadgerDB cache backend.
type BadgerCacheConfig struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`
}

// RedisCacheConfig configures the Redis cache backend.
type RedisCacheConfig struct {
	Addr      string `koanf:"addr"`
	Password  string `koanf:"password"`
	DB        int    `koanf:"db"`
	KeyPrefix string `koanf:"key_prefix"`
}

// SourcesConfig groups the remote metadata providers.
type SourcesConfig struct {
	TMDB        SourceConfig `koanf:"tmdb"`
	RAWG        SourceConfig `koanf:"rawg"`
	GoogleBooks SourceConfig `koanf:"googlebooks"`
}

// SourceConfig configures one remote metadata provider. Language, Region and
// TrendingQuery apply only to the providers that support them.
type SourceConfig struct {
	Enabled bool          `koanf:"enabled"`
	BaseURL string        `koanf:"base_url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`

	// RateLimit is the sustained request rate per second; 0 disables limiting.
	RateLimit float64 `koanf:"rate_limit"`
	Burst     int     `koanf:"burst"`

	Language      string `koanf:"language"`
	Region        string `koanf:"region"`
	TrendingQuery string `koanf:"trending_query"`
}

// FeedConfig tunes the aggregation engine.
type FeedConfig struct {
	MaxItems             int           `koanf:"max_items"`
	SeedCount            int           `koanf:"seed_count"`
	PerSeedCap           int           `koanf:"per_seed_cap"`
	SignalCap            int           `koanf:"signal_cap"`
	RestrictedMinResults int           `koanf:"restricted_min_results"`
	RandomSeed           int64         `koanf:"random_seed"`
	Timeout              time.Duration `koanf:"timeout"`
	LibraryTimeout       time.Duration `koanf:"library_timeout"`
	TrendingLastResort   bool          `koanf:"trending_last_resort"`

	Weights     KindWeightsConfig `koanf:"weights"`
	ColdStart   ColdStartConfig   `koanf:"cold_start"`
	Preferences PreferencesConfig `koanf:"preferences"`
}

// KindWeightsConfig holds the weighted-random search-kind choice for
// unfiltered signal seeds. Weights are relative and need not sum to 1.
type KindWeightsConfig struct {
	Own   float64 `koanf:"own"`
	Book  float64 `koanf:"book"`
	Game  float64 `koanf:"game"`
	Movie float64 `koanf:"movie"`
}

// ColdStartConfig holds the cold-start caps and thresholds.
type ColdStartConfig struct {
	LocalGames         int `koanf:"local_games"`
	LocalBooks         int `koanf:"local_books"`
	LocalTV            int `koanf:"local_tv"`
	LocalMovies        int `koanf:"local_movies"`
	TrendingThreshold  int `koanf:"trending_threshold"`
	TrendingMovies     int `koanf:"trending_movies"`
	TrendingTV         int `koanf:"trending_tv"`
	GameFillThreshold  int `koanf:"game_fill_threshold"`
	TrendingGamesLimit int `koanf:"trending_games"`
}

// PreferencesConfig controls the preferred-genre blend.
type PreferencesConfig struct {
	Enabled   bool `koanf:"enabled"`
	MaxGenres int  `koanf:"max_genres"`
	PerKind   int  `koanf:"per_kind"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load loads configuration from all sources. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Default returns the built-in defaults without reading files or the
// environment. Callers that need a fully layered config use Load.
func Default() *Config {
	return defaultConfig()
}
