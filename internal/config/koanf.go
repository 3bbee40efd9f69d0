// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/mediafeed/config.yaml",
	"/etc/mediafeed/config.yml",
}

// ConfigPathEnvVar is the environment variable for a custom config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all default values set.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Database: DatabaseConfig{
			Driver:          "sqlite",
			DSN:             "/data/mediafeed.db",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Cache: CacheConfig{
			Backend:         "memory",
			SearchTTL:       30 * time.Minute,
			DiscoverTTL:     time.Hour,
			TrendingTTL:     3 * time.Hour,
			CleanupInterval: 5 * time.Minute,
			Badger: BadgerCacheConfig{
				Path: "/data/cache",
			},
			Redis: RedisCacheConfig{
				Addr:      "localhost:6379",
				KeyPrefix: "mediafeed:",
			},
		},
		Sources: SourcesConfig{
			TMDB: SourceConfig{
				Enabled:   true,
				BaseURL:   "https://api.themoviedb.org/3",
				Timeout:   10 * time.Second,
				RateLimit: 40,
				Burst:     20,
				Language:  "pt-BR",
				Region:    "BR",
			},
			RAWG: SourceConfig{
				Enabled:   true,
				BaseURL:   "https://api.rawg.io/api",
				Timeout:   10 * time.Second,
				RateLimit: 5,
				Burst:     5,
			},
			GoogleBooks: SourceConfig{
				Enabled:       true,
				BaseURL:       "https://www.googleapis.com/books/v1",
				Timeout:       30 * time.Second,
				RateLimit:     10,
				Burst:         10,
				Language:      "pt",
				TrendingQuery: "subject:fiction bestseller",
			},
		},
		Feed: FeedConfig{
			MaxItems:             24,
			SeedCount:            5,
			PerSeedCap:           10,
			SignalCap:            10,
			RestrictedMinResults: 6,
			RandomSeed:           0, // 0 seeds from the clock
			Timeout:              12 * time.Second,
			LibraryTimeout:       5 * time.Second,
			TrendingLastResort:   true,
			Weights: KindWeightsConfig{
				Own:   0.4,
				Book:  0.2,
				Game:  0.2,
				Movie: 0.2,
			},
			ColdStart: ColdStartConfig{
				LocalGames:         20,
				LocalBooks:         10,
				LocalTV:            10,
				LocalMovies:        0,
				TrendingThreshold:  20,
				TrendingMovies:     10,
				TrendingTV:         5,
				GameFillThreshold:  15,
				TrendingGamesLimit: 10,
			},
			Preferences: PreferencesConfig{
				Enabled:   true,
				MaxGenres: 4,
				PerKind:   3,
			},
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables
	// TMDB_API_KEY -> sources.tmdb.api_key
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file found, or "" if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths are parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Database
	"database_driver":            "database.driver",
	"database_dsn":               "database.dsn",
	"database_max_open_conns":    "database.max_open_conns",
	"database_max_idle_conns":    "database.max_idle_conns",
	"database_conn_max_lifetime": "database.conn_max_lifetime",
	"database_seed_file":         "database.seed_file",

	// Cache
	"cache_backend":          "cache.backend",
	"cache_search_ttl":       "cache.search_ttl",
	"cache_discover_ttl":     "cache.discover_ttl",
	"cache_trending_ttl":     "cache.trending_ttl",
	"cache_cleanup_interval": "cache.cleanup_interval",
	"cache_badger_path":      "cache.badger.path",
	"cache_badger_in_memory": "cache.badger.in_memory",
	"redis_addr":             "cache.redis.addr",
	"redis_password":         "cache.redis.password",
	"redis_db":               "cache.redis.db",
	"redis_key_prefix":       "cache.redis.key_prefix",

	// TMDB
	"tmdb_enabled":    "sources.tmdb.enabled",
	"tmdb_base_url":   "sources.tmdb.base_url",
	"tmdb_api_key":    "sources.tmdb.api_key",
	"tmdb_timeout":    "sources.tmdb.timeout",
	"tmdb_rate_limit": "sources.tmdb.rate_limit",
	"tmdb_burst":      "sources.tmdb.burst",
	"tmdb_language":   "sources.tmdb.language",
	"tmdb_region":     "sources.tmdb.region",

	// RAWG
	"rawg_enabled":    "sources.rawg.enabled",
	"rawg_base_url":   "sources.rawg.base_url",
	"rawg_api_key":    "sources.rawg.api_key",
	"rawg_timeout":    "sources.rawg.timeout",
	"rawg_rate_limit": "sources.rawg.rate_limit",
	"rawg_burst":      "sources.rawg.burst",

	// Google Books
	"google_books_enabled":        "sources.googlebooks.enabled",
	"google_books_base_url":       "sources.googlebooks.base_url",
	"google_books_api_key":        "sources.googlebooks.api_key",
	"google_books_timeout":        "sources.googlebooks.timeout",
	"google_books_rate_limit":     "sources.googlebooks.rate_limit",
	"google_books_burst":          "sources.googlebooks.burst",
	"google_books_language":       "sources.googlebooks.language",
	"google_books_trending_query": "sources.googlebooks.trending_query",

	// Feed engine
	"feed_max_items":              "feed.max_items",
	"feed_seed_count":             "feed.seed_count",
	"feed_per_seed_cap":           "feed.per_seed_cap",
	"feed_signal_cap":             "feed.signal_cap",
	"feed_restricted_min_results": "feed.restricted_min_results",
	"feed_random_seed":            "feed.random_seed",
	"feed_timeout":                "feed.timeout",
	"feed_library_timeout":        "feed.library_timeout",
	"feed_trending_last_resort":   "feed.trending_last_resort",
	"feed_weight_own":             "feed.weights.own",
	"feed_weight_book":            "feed.weights.book",
	"feed_weight_game":            "feed.weights.game",
	"feed_weight_movie":           "feed.weights.movie",
	"feed_preferences_enabled":    "feed.preferences.enabled",
	"feed_preferences_max_genres": "feed.preferences.max_genres",
	"feed_preferences_per_kind":   "feed.preferences.per_kind",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped keys return "" so unrelated environment variables are skipped.
//
// Examples:
//   - TMDB_API_KEY -> sources.tmdb.api_key
//   - GOOGLE_BOOKS_API_KEY -> sources.googlebooks.api_key
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
