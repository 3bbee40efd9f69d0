// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/mediafeed/internal/config"
)

// Backend names.
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Store is a byte-oriented key/value cache with per-entry TTL.
type Store interface {
	// Get returns the value and true on a hit, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Name is the backend name used as a metrics label.
	Name() string
	Close() error
}

// Open creates the backend selected by cfg.Backend.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func Open(ctx context.Context, cfg config.CacheConfig, logger zerolog.Logger) (Store, error) {
	log := logger.With().Str("component", "cache").Str("backend", cfg.Backend).Logger()

	switch cfg.Backend {
	case BackendMemory, "":
		log.Info().Dur("cleanup_interval", cfg.CleanupInterval).Msg("using in-memory response cache")
		return NewMemory(cfg.CleanupInterval), nil
	case BackendBadger:
		store, err := NewBadger(cfg.Badger.Path, cfg.Badger.InMemory)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.Badger.Path).Bool("in_memory", cfg.Badger.InMemory).Msg("using badger response cache")
		return store, nil
	case BackendRedis:
		store, err := NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis response cache")
		return store, nil
	case BackendNone:
		log.Info().Msg("response cache disabled")
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// GenerateKey creates a compact cache key from a namespace and its parts.
// Parts are joined with "|" and hashed, so arbitrary user input is safe.
func GenerateKey(namespace string, parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return namespace + ":" + hex.EncodeToString(hash[:16])
}

// Noop is a Store that never holds anything.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Noop) Name() string                                             { return BackendNone }
func (Noop) Close() error                                             { return nil }
