// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// GarbageCollector reclaims storage. *cache.Badger satisfies it.
type GarbageCollector interface {
	RunGC() (int, error)
}

// CacheGCService runs a GarbageCollector on a fixed interval.
// GC errors are logged and retried on the next tick; they never crash
// the service.
type CacheGCService struct {
	gc       GarbageCollector
	interval time.Duration
	logger   zerolog.Logger
	name     string

	runs      atomic.Int64
	rewritten atomic.Int64
}

// NewCacheGCService creates the service. A non-positive interval defaults
// to 10 minutes.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewCacheGCService(gc GarbageCollector, interval time.Duration, logger zerolog.Logger) *CacheGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &CacheGCService{
		gc:       gc,
		interval: interval,
		logger:   logger.With().Str("component", "cache-gc").Logger(),
		name:     "cache-gc",
	}
}

// Serve implements suture.Service.
func (s *CacheGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runOnce()
		}
	}
}

func (s *CacheGCService) runOnce() {
	start := time.Now()
	n, err := s.gc.RunGC()
	s.runs.Add(1)
	s.rewritten.Add(int64(n))
	if err != nil {
		s.logger.Warn().Err(err).Msg("cache garbage collection failed")
		return
	}
	s.logger.Debug().
		Int("rewritten", n).
		Dur("duration", time.Since(start)).
		Msg("cache garbage collection finished")
}

// Runs returns how many GC passes have completed.
func (s *CacheGCService) Runs() int64 {
	return s.runs.Load()
}

// Rewritten returns the total number of files rewritten across passes.
func (s *CacheGCService) Rewritten() int64 {
	return s.rewritten.Load()
}

// String implements fmt.Stringer; suture uses it in log events.
func (s *CacheGCService) String() string {
	return s.name
}
