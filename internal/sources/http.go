// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/mediafeed/internal/logging"
)

// maxErrorBodySize limits how much of an error response body is kept.
const maxErrorBodySize = 4 * 1024

// Client performs GET requests against a provider API and decodes the JSON
// payload. HTTP 429 responses are retried with exponential backoff,
// honouring Retry-After when present.
type Client struct {
	provider       string
	http           *http.Client
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewClient creates a Client with its own http.Client and request timeout.
func NewClient(provider string, timeout time.Duration) *Client {
	return &Client{
		provider:       provider,
		http:           &http.Client{Timeout: timeout},
		maxRetries:     2,
		retryBaseDelay: 500 * time.Millisecond,
	}
}

// SetRetry overrides the 429 retry policy. A negative maxRetries is treated as 0.
func (c *Client) SetRetry(maxRetries int, baseDelay time.Duration) {
	if maxRetries < 0 {
		maxRetries = 0
	}
	c.maxRetries = maxRetries
	c.retryBaseDelay = baseDelay
}

// GetJSON fetches reqURL and decodes the body into out. Non-2xx responses
// return a *StatusError.
func (c *Client) GetJSON(ctx context.Context, op, reqURL string, out interface{}) error {
	logging.Ctx(ctx).Debug().
		Str("provider", c.provider).
		Str("op", op).
		Str("url", logging.RedactURL(reqURL)).
		Msg("source request")

	resp, err := c.doRequestWithRateLimit(ctx, op, reqURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Provider:   c.provider,
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       readBodyForError(resp.Body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", c.provider, op, err)
	}
	return nil
}

func (c *Client) doRequestWithRateLimit(ctx context.Context, op, reqURL string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("%s %s: create request: %w", c.provider, op, err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s %s: request failed: %w", c.provider, op, err)
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt >= c.maxRetries {
			return resp, nil
		}

		_ = resp.Body.Close()

		// 500ms, 1s, 2s ...
		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds >= 0 {
				delay = time.Duration(seconds) * time.Second
			}
		}

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}
}

// readBodyForError reads at most maxErrorBodySize bytes of an error body.
func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(failed to read response body)"
	}
	return string(body)
}
