// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/mediafeed/internal/logging"
)

func TestAccessLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"ok", http.StatusOK, "info"},
		{"client error", http.StatusBadRequest, "warn"},
		{"server error", http.StatusBadGateway, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := logging.NewTestLogger(&buf)

			var handlerSawID string
			handler := func(w http.ResponseWriter, r *http.Request) {
				handlerSawID = logging.RequestIDFromContext(r.Context())
				logging.Ctx(r.Context()).Info().Msg("inside handler")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("body"))
			}

			chain := RequestID(AccessLog(logger)(handler))
			req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
			req.Header.Set(RequestIDHeader, "req-abc")
			rec := httptest.NewRecorder()
			chain(rec, req)

			if handlerSawID != "req-abc" {
				t.Errorf("handler request ID = %q, want req-abc", handlerSawID)
			}

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			if len(lines) != 2 {
				t.Fatalf("log lines = %d, want 2: %s", len(lines), buf.String())
			}

			var inner map[string]interface{}
			if err := json.Unmarshal([]byte(lines[0]), &inner); err != nil {
				t.Fatalf("decode handler line: %v", err)
			}
			if inner["request_id"] != "req-abc" {
				t.Errorf("handler line request_id = %v, want req-abc", inner["request_id"])
			}

			var entry map[string]interface{}
			if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
				t.Fatalf("decode access line: %v", err)
			}
			if entry["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %s", entry["level"], tt.wantLevel)
			}
			if entry["message"] != "http request" {
				t.Errorf("message = %v", entry["message"])
			}
			if entry["status"] != float64(tt.status) {
				t.Errorf("status = %v, want %d", entry["status"], tt.status)
			}
			if entry["bytes"] != float64(4) {
				t.Errorf("bytes = %v, want 4", entry["bytes"])
			}
			if entry["request_id"] != "req-abc" {
				t.Errorf("request_id = %v, want req-abc", entry["request_id"])
			}
			if entry["path"] != "/api/v1/health/live" {
				t.Errorf("path = %v", entry["path"])
			}
		})
	}
}
