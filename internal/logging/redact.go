// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package logging

import (
	"net/url"
	"strings"
)

// sensitiveParams are query parameters that carry source API credentials.
var sensitiveParams = map[string]bool{
	"api_key":      true,
	"apikey":       true,
	"key":          true,
	"access_token": true,
	"token":        true,
}

// RedactToken masks a credential, showing only the first and last 4
// characters. Short values are fully masked.
func RedactToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// RedactURL masks credential query parameters so request URLs can be logged.
// Unparseable input is fully masked.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "***"
	}
	q := u.Query()
	changed := false
	for name, values := range q {
		if !sensitiveParams[strings.ToLower(name)] {
			continue
		}
		for i := range values {
			values[i] = RedactToken(values[i])
		}
		changed = true
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}
