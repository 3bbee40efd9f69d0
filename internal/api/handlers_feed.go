// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/mediafeed/internal/feed"
	"github.com/tomtom215/mediafeed/internal/logging"
	"github.com/tomtom215/mediafeed/internal/media"
	"github.com/tomtom215/mediafeed/internal/metrics"
	"github.com/tomtom215/mediafeed/internal/validation"
)

// feedQuery is the validated form of a feed request.
type feedQuery struct {
	UserID  string   `validate:"required,max=128"`
	Kind    string   `validate:"omitempty,mediakind"`
	Genre   string   `validate:"omitempty,genre"`
	Ratings []string `validate:"omitempty,max=6,dive,rating"`
}

// StatsResponse is the payload of GET /api/v1/stats.
type StatsResponse struct {
	Engine  feed.Stats         `json:"engine"`
	Library map[media.Kind]int `json:"library,omitempty"`
}

// Feed handles GET /api/v1/feed/{userID}
//
// Query parameters:
//   - kind: movie, tv, book, game or all (default all)
//   - genre: genre name or TMDB genre id; switches to genre mode
//   - ratings: comma-separated content ratings; switches to restricted mode
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	q := parseFeedQuery(r)
	if verr := validation.ValidateStruct(&q); verr != nil {
		metrics.FeedInvalidRequests.Inc()
		rw.ValidationError(verr.ToAPIError())
		return
	}

	// Validated above; ParseFilter cannot fail here.
	filter, _ := media.ParseFilter(q.Kind) //nolint:errcheck

	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	result, err := h.feeds.BuildFeed(ctx, feed.Request{
		UserID:            q.UserID,
		Filter:            filter,
		Genre:             q.Genre,
		RestrictedRatings: q.Ratings,
	})
	if err != nil {
		writeFeedError(rw, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("user_id", q.UserID).
		Str("mode", result.Mode.String()).
		Int("items", len(result.Items)).
		Msg("feed served")

	rw.Success(result)
}

// Stats handles GET /api/v1/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	resp := StatsResponse{Engine: h.feeds.Stats()}

	if h.library != nil {
		counts, err := h.library.CountLibraryItems(r.Context())
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("library count failed")
		} else {
			resp.Library = counts
		}
	}

	rw.Success(resp)
}

func parseFeedQuery(r *http.Request) feedQuery {
	query := r.URL.Query()
	return feedQuery{
		UserID:  strings.TrimSpace(chi.URLParam(r, "userID")),
		Kind:    strings.TrimSpace(query.Get("kind")),
		Genre:   strings.TrimSpace(query.Get("genre")),
		Ratings: splitRatings(query.Get("ratings")),
	}
}

// splitRatings splits "L,10,12" into its parts. Empty parts are dropped and
// "l" is accepted for "L".
func splitRatings(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
