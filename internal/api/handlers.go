// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package api

import (
	"context"
	"time"

	"github.com/tomtom215/mediafeed/internal/feed"
	"github.com/tomtom215/mediafeed/internal/media"
)

// FeedService builds feeds. *feed.Engine satisfies it.
type FeedService interface {
	BuildFeed(ctx context.Context, req feed.Request) (*feed.Feed, error)
	Stats() feed.Stats
}

// Pinger reports database reachability. *store.Store satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// LibraryCounter reports local library size per kind.
type LibraryCounter interface {
	CountLibraryItems(ctx context.Context) (map[media.Kind]int, error)
}

// HandlerConfig holds handler tunables.
type HandlerConfig struct {
	// RequestTimeout bounds a whole feed build, on top of the per-source
	// timeouts the engine applies.
	RequestTimeout time.Duration

	// ReadyTimeout bounds the readiness database ping.
	ReadyTimeout time.Duration
}

// DefaultHandlerConfig returns the handler defaults.
func DefaultHandlerConfig() HandlerConfig {
	return HandlerConfig{
		RequestTimeout: 30 * time.Second,
		ReadyTimeout:   2 * time.Second,
	}
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_feed.go: feed and stats endpoints
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	feeds     FeedService
	db        Pinger
	library   LibraryCounter
	config    HandlerConfig
	startTime time.Time
}

// NewHandler creates the API handler. library may be nil, in which case
// the stats endpoint omits library counts.
func NewHandler(feeds FeedService, db Pinger, library LibraryCounter, cfg HandlerConfig) *Handler {
	defaults := DefaultHandlerConfig()
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaults.RequestTimeout
	}
	if cfg.ReadyTimeout <= 0 {
		cfg.ReadyTimeout = defaults.ReadyTimeout
	}
	return &Handler{
		feeds:     feeds,
		db:        db,
		library:   library,
		config:    cfg,
		startTime: time.Now(),
	}
}
