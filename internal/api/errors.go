// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/mediafeed/internal/feed"
	"github.com/tomtom215/mediafeed/internal/logging"
)

// writeFeedError maps an engine error onto the response envelope:
// invalid input is 400, an expired deadline 504, a cancelled request 503,
// anything else 500.
func writeFeedError(rw *ResponseWriter, err error) {
	var inputErr *feed.InputError
	switch {
	case errors.As(err, &inputErr):
		rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeValidation, inputErr.Error(), map[string]interface{}{
			"field":  inputErr.Field,
			"reason": inputErr.Reason,
		})
	case errors.Is(err, feed.ErrInvalidRequest):
		rw.Error(http.StatusBadRequest, ErrCodeValidation, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		logging.Ctx(rw.r.Context()).Warn().Err(err).Msg("feed build timed out")
		rw.GatewayTimeout("Feed build timed out")
	case errors.Is(err, context.Canceled):
		rw.ServiceUnavailable("Request cancelled")
	default:
		logging.Ctx(rw.r.Context()).Error().Err(err).Msg("feed build failed")
		rw.InternalError("Failed to build feed")
	}
}
