// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

/*
Package cache provides the byte-oriented response cache backends used by the
source decorators.

Every backend implements Store:

	type Store interface {
	    Get(ctx context.Context, key string) ([]byte, bool, error)
	    Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	    Name() string
	    Close() error
	}

Backends:
  - Memory: map with per-entry expiry, lazy expiration on Get and a
    background cleanup loop. Tracks hits, misses and evictions.
  - Badger: BadgerDB entries written with WithTTL, on disk or in memory.
  - Redis: go-redis SET with expiration, keys namespaced by a prefix.
  - Noop: never stores anything; used when caching is disabled.

Open selects a backend from configuration. A miss is (nil, false, nil); an
error means the backend itself failed and callers should treat it as a miss.
*/
package cache
