// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package sources

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/mediafeed/internal/media"
	"github.com/tomtom215/mediafeed/internal/metrics"
)

// BreakerConfig tunes a provider circuit breaker.
type BreakerConfig struct {
	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32
	// Interval resets the closed-state counts. Zero never resets.
	Interval time.Duration
	// Timeout is how long the circuit stays open before going half-open.
	Timeout time.Duration
	// MinRequests is the minimum sample before the failure ratio is evaluated.
	MinRequests uint32
	// FailureRatio trips the breaker when reached.
	FailureRatio float64
}

// DefaultBreakerConfig opens after at least 10 requests with a failure
// rate of 60% or more and retries after 2 minutes.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      2 * time.Minute,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// Breaker wraps a Provider with a circuit breaker. Calls rejected by an
// open breaker return an error wrapping ErrBreakerOpen.
//
// The breaker uses real time for its interval and timeout; tests that need
// a quick recovery set a short Timeout.
type Breaker struct {
	next   Provider
	cb     *gobreaker.CircuitBreaker[[]media.Record]
	name   string
	logger zerolog.Logger
}

// NewBreaker creates a circuit breaker named "<provider>-api" around next.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewBreaker(next Provider, cfg BreakerConfig, logger zerolog.Logger) *Breaker {
	name := next.Name() + "-api"
	log := logger.With().Str("component", "circuit_breaker").Str("breaker", name).Logger()

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]media.Record](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.FailureRatio
			if shouldTrip {
				log.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("opening circuit")
			}
			return shouldTrip
		},

		// A caller that gave up is not a provider fault.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			log.Info().Str("from", fromStr).Str("to", toStr).Msg("circuit breaker state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &Breaker{next: next, cb: cb, name: name, logger: log}
}

// Name returns the wrapped provider's name.
func (b *Breaker) Name() string { return b.next.Name() }

// State returns the current breaker state as "closed", "half-open" or "open".
func (b *Breaker) State() string { return stateToString(b.cb.State()) }

func (b *Breaker) Search(ctx context.Context, kind media.Kind, query string) ([]media.Record, error) {
	return b.execute(func() ([]media.Record, error) {
		return b.next.Search(ctx, kind, query)
	})
}

func (b *Breaker) DiscoverByGenre(ctx context.Context, kind media.Kind, genre string, opts DiscoverOptions) ([]media.Record, error) {
	return b.execute(func() ([]media.Record, error) {
		return b.next.DiscoverByGenre(ctx, kind, genre, opts)
	})
}

func (b *Breaker) Trending(ctx context.Context, kind media.Kind) ([]media.Record, error) {
	return b.execute(func() ([]media.Record, error) {
		return b.next.Trending(ctx, kind)
	})
}

func (b *Breaker) execute(fn func() ([]media.Record, error)) ([]media.Record, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			b.logger.Debug().Err(err).Msg("request rejected")
			return nil, fmt.Errorf("%s: %w: %w", b.name, ErrBreakerOpen, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(b.cb.Counts().ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return result, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
