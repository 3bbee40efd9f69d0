// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package config

import (
	"fmt"
	"net/url"
	"time"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

var validDrivers = map[string]bool{
	"sqlite":   true,
	"postgres": true,
}

var validCacheBackends = map[string]bool{
	"memory": true,
	"badger": true,
	"redis":  true,
	"none":   true,
}

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateSources(); err != nil {
		return err
	}
	if err := c.validateFeed(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if !validDrivers[c.Database.Driver] {
		return fmt.Errorf("DATABASE_DRIVER must be one of: sqlite, postgres")
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	return nil
}

func (c *Config) validateCache() error {
	if !validCacheBackends[c.Cache.Backend] {
		return fmt.Errorf("CACHE_BACKEND must be one of: memory, badger, redis, none")
	}
	switch c.Cache.Backend {
	case "badger":
		if !c.Cache.Badger.InMemory && c.Cache.Badger.Path == "" {
			return fmt.Errorf("CACHE_BADGER_PATH is required unless CACHE_BADGER_IN_MEMORY=true")
		}
	case "redis":
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required when CACHE_BACKEND=redis")
		}
	}
	return nil
}

// validateSources checks enabled providers. API keys are optional because
// some deployments proxy the providers; a missing key surfaces as an
// adapter failure at request time.
func (c *Config) validateSources() error {
	sources := []struct {
		env string
		cfg SourceConfig
	}{
		{"TMDB", c.Sources.TMDB},
		{"RAWG", c.Sources.RAWG},
		{"GOOGLE_BOOKS", c.Sources.GoogleBooks},
	}
	for _, s := range sources {
		if !s.cfg.Enabled {
			continue
		}
		if err := validateHTTPURL(s.cfg.BaseURL, s.env+"_BASE_URL"); err != nil {
			return err
		}
		if s.cfg.Timeout <= 0 {
			return fmt.Errorf("%s_TIMEOUT must be positive", s.env)
		}
		if s.cfg.RateLimit < 0 {
			return fmt.Errorf("%s_RATE_LIMIT must not be negative", s.env)
		}
		if s.cfg.RateLimit > 0 && s.cfg.Burst < 1 {
			return fmt.Errorf("%s_BURST must be at least 1 when rate limiting is enabled", s.env)
		}
	}
	return nil
}

func (c *Config) validateFeed() error {
	f := c.Feed
	if f.MaxItems < 1 {
		return fmt.Errorf("FEED_MAX_ITEMS must be at least 1")
	}
	if f.SeedCount < 1 {
		return fmt.Errorf("FEED_SEED_COUNT must be at least 1")
	}
	if f.PerSeedCap < 1 || f.SignalCap < 1 {
		return fmt.Errorf("FEED_PER_SEED_CAP and FEED_SIGNAL_CAP must be at least 1")
	}
	if f.Timeout <= 0 || f.LibraryTimeout <= 0 {
		return fmt.Errorf("FEED_TIMEOUT and FEED_LIBRARY_TIMEOUT must be positive")
	}
	// Cold start and signal feeds chain a library call and two remote stages.
	if budget := f.LibraryTimeout + 2*f.Timeout; budget >= c.Server.Timeout {
		return fmt.Errorf("FEED_LIBRARY_TIMEOUT + 2*FEED_TIMEOUT (%s) must be below HTTP_TIMEOUT (%s)",
			budget, c.Server.Timeout)
	}
	w := f.Weights
	if w.Own < 0 || w.Book < 0 || w.Game < 0 || w.Movie < 0 {
		return fmt.Errorf("feed weights must not be negative")
	}
	if w.Own+w.Book+w.Game+w.Movie == 0 {
		return fmt.Errorf("at least one feed weight must be positive")
	}
	cs := f.ColdStart
	if cs.LocalGames < 0 || cs.LocalBooks < 0 || cs.LocalTV < 0 || cs.LocalMovies < 0 ||
		cs.TrendingMovies < 0 || cs.TrendingTV < 0 || cs.TrendingGamesLimit < 0 {
		return fmt.Errorf("cold start limits must not be negative")
	}
	if f.Preferences.Enabled && (f.Preferences.MaxGenres < 1 || f.Preferences.PerKind < 1) {
		return fmt.Errorf("FEED_PREFERENCES_MAX_GENRES and FEED_PREFERENCES_PER_KIND must be at least 1")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.hasWildcardCORS() && c.IsProduction() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production. " +
			"Set specific origins: CORS_ORIGINS=https://yourdomain.com")
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow < time.Second {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s")
	}
	return nil
}

func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateHTTPURL validates that a URL is an absolute http or https URL.
// Unlike a plain server address, a path is allowed (e.g. https://api.themoviedb.org/3).
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}
	return nil
}
