// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

// Package media defines the normalized records that flow through the feed
// engine: media records from every source, user signals, and the reasons
// attached to recommended items.
//
// All vote averages are on a 0-10 scale once they enter this package. Source
// adapters use the Normalize helpers to convert 0-5 and 0-100 scales before
// building a Record.
package media
