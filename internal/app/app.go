// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/mediafeed/internal/api"
	"github.com/tomtom215/mediafeed/internal/cache"
	"github.com/tomtom215/mediafeed/internal/config"
	"github.com/tomtom215/mediafeed/internal/feed"
	"github.com/tomtom215/mediafeed/internal/media"
	"github.com/tomtom215/mediafeed/internal/sources"
	"github.com/tomtom215/mediafeed/internal/sources/googlebooks"
	"github.com/tomtom215/mediafeed/internal/sources/rawg"
	"github.com/tomtom215/mediafeed/internal/sources/tmdb"
	"github.com/tomtom215/mediafeed/internal/store"
	"github.com/tomtom215/mediafeed/internal/supervisor"
	"github.com/tomtom215/mediafeed/internal/supervisor/services"
)

const idleTimeout = 60 * time.Second

// App owns every long-lived component of a running mediafeed instance.
type App struct {
	cfg    *config.Config
	logger zerolog.Logger // base logger handed to components
	log    zerolog.Logger

	Store   *store.Store
	Cache   cache.Store
	Catalog *sources.Catalog
	Engine  *feed.Engine
}

// Option customizes New.
type Option func(*options)

type options struct {
	providers map[string]sources.Provider
	engine    []feed.Option
}

// WithProvider replaces the adapter built for the source called name
// (tmdb.Name, rawg.Name or googlebooks.Name). The replacement still gets
// the limiter, breaker and cache decorators.
func WithProvider(name string, p sources.Provider) Option {
	return func(o *options) {
		o.providers[name] = p
	}
}

// WithEngineOptions passes extra options to feed.NewEngine.
func WithEngineOptions(opts ...feed.Option) Option {
	return func(o *options) {
		o.engine = append(o.engine, opts...)
	}
}

// New opens the database and cache, seeds the library when a seed file is
// configured and builds the feed engine over the decorated source catalog.
// On error every component opened so far is closed.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	o := &options{providers: make(map[string]sources.Provider)}
	for _, opt := range opts {
		opt(o)
	}

	a := &App{cfg: cfg, logger: logger, log: logger.With().Str("component", "app").Logger()}

	db, err := store.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	a.Store = db
	a.log.Info().Str("driver", cfg.Database.Driver).Msg("database ready")

	if cfg.Database.SeedFile != "" {
		stats, err := db.SeedFromFile(ctx, cfg.Database.SeedFile)
		if err != nil {
			a.closeQuietly()
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}
		a.log.Info().
			Str("file", cfg.Database.SeedFile).
			Int("items", stats.Items).
			Int("ratings", stats.Ratings).
			Int("likes", stats.Likes).
			Msg("database seeded")
	}

	respCache, err := cache.Open(ctx, cfg.Cache, logger)
	if err != nil {
		a.closeQuietly()
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	a.Cache = respCache

	a.Catalog = buildCatalog(cfg, respCache, o.providers, logger)

	engineOpts := append([]feed.Option{}, o.engine...)
	if cfg.Feed.Preferences.Enabled {
		engineOpts = append(engineOpts, feed.WithPreferences(db))
	}
	feedCfg := feed.ConfigFromSettings(cfg.Feed)
	feedCfg.KindTimeouts = map[media.Kind]time.Duration{
		media.KindMovie: cfg.Sources.TMDB.Timeout,
		media.KindTV:    cfg.Sources.TMDB.Timeout,
		media.KindBook:  cfg.Sources.GoogleBooks.Timeout,
		media.KindGame:  cfg.Sources.RAWG.Timeout,
	}
	engine, err := feed.NewEngine(feedCfg, a.Catalog, db, db, logger, engineOpts...)
	if err != nil {
		a.closeQuietly()
		return nil, fmt.Errorf("failed to create feed engine: %w", err)
	}
	a.Engine = engine

	a.log.Info().
		Strs("providers", a.Catalog.Providers()).
		Str("cache", respCache.Name()).
		Msg("feed engine ready")
	return a, nil
}

// buildCatalog registers every enabled source wrapped as
// Cached(Breaker(Limited(adapter))).
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func buildCatalog(cfg *config.Config, respCache cache.Store, overrides map[string]sources.Provider, logger zerolog.Logger) *sources.Catalog {
	catalog := sources.NewCatalog(logger)
	ttls := sources.CacheTTLs{
		Search:   cfg.Cache.SearchTTL,
		Discover: cfg.Cache.DiscoverTTL,
		Trending: cfg.Cache.TrendingTTL,
	}
	breakerCfg := sources.DefaultBreakerConfig()

	register := func(name string, sc config.SourceConfig, build func() sources.Provider, kinds ...media.Kind) {
		if !sc.Enabled {
			logger.Info().Str("provider", name).Msg("source disabled")
			return
		}
		adapter, ok := overrides[name]
		if !ok {
			adapter = build()
		}
		limited := sources.NewLimited(adapter, sc.RateLimit, sc.Burst)
		breaker := sources.NewBreaker(limited, breakerCfg, logger)
		catalog.Register(sources.NewCached(breaker, respCache, ttls, logger), kinds...)
	}

	register(tmdb.Name, cfg.Sources.TMDB, func() sources.Provider { return tmdb.New(cfg.Sources.TMDB) },
		media.KindMovie, media.KindTV)
	register(googlebooks.Name, cfg.Sources.GoogleBooks, func() sources.Provider { return googlebooks.New(cfg.Sources.GoogleBooks) },
		media.KindBook)
	register(rawg.Name, cfg.Sources.RAWG, func() sources.Provider { return rawg.New(cfg.Sources.RAWG) },
		media.KindGame)

	return catalog
}

// Handler returns the HTTP API with its full middleware stack.
func (a *App) Handler() http.Handler {
	handler := api.NewHandler(a.Engine, a.Store, a.Store, api.HandlerConfig{
		RequestTimeout: a.cfg.Server.Timeout,
	})
	mw := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(a.cfg.Security))
	return api.NewRouter(handler, mw, a.logger).SetupChi()
}

// Server returns an http.Server for Handler bound to the configured address.
func (a *App) Server() *http.Server {
	// The write deadline leaves room for the error envelope after a
	// request timeout.
	return &http.Server{
		Addr:              net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.Port)),
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       a.cfg.Server.Timeout,
		WriteTimeout:      a.cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       idleTimeout,
	}
}

// Tree builds the supervisor tree: the HTTP server in the api layer and,
// for the badger cache, value log garbage collection in the maintenance
// layer.
func (a *App) Tree(logger *slog.Logger) (*supervisor.SupervisorTree, error) {
	tree, err := supervisor.NewSupervisorTree(logger, supervisor.TreeConfig{
		ShutdownTimeout: a.cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create supervisor tree: %w", err)
	}

	tree.AddAPIService(services.NewHTTPServerService(a.Server(), a.cfg.Server.ShutdownTimeout, a.logger))

	if gc, ok := a.Cache.(services.GarbageCollector); ok {
		tree.AddMaintenanceService(services.NewCacheGCService(gc, a.cfg.Cache.CleanupInterval, a.logger))
		a.log.Info().Dur("interval", a.cfg.Cache.CleanupInterval).Msg("cache garbage collection scheduled")
	}
	return tree, nil
}

// Close releases the cache and the database.
func (a *App) Close() error {
	var errs []error
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("cache: %w", err))
		}
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (a *App) closeQuietly() {
	if err := a.Close(); err != nil {
		a.log.Warn().Err(err).Msg("error closing partially started app")
	}
}
