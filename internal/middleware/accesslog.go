// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/mediafeed/internal/logging"
)

// AccessLog writes one log line per request and stores a request-scoped
// logger in the context for handlers to use via logging.Ctx.
// Must run after RequestID so the ids are present.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func AccessLog(logger zerolog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapper := newStatusRecorder(w)

			ctx := logging.ContextWithLogger(r.Context(), logger)
			reqLogger := logging.CtxWith(ctx).Logger()

			next(wrapper, r.WithContext(ctx))

			event := reqLogger.Info()
			switch {
			case wrapper.statusCode >= http.StatusInternalServerError:
				event = reqLogger.Error()
			case wrapper.statusCode >= http.StatusBadRequest:
				event = reqLogger.Warn()
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", RoutePattern(r)).
				Int("status", wrapper.statusCode).
				Int("bytes", wrapper.bytes).
				Dur("duration", time.Since(start)).
				Str("remote_addr", r.RemoteAddr).
				Msg("http request")
		}
	}
}
