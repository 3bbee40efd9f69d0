// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

/*
Package services provides suture.Service wrappers for mediafeed components.

Each wrapper implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

and translates a component lifecycle into it: blocking ListenAndServe for
the HTTP server, a ticker loop for cache garbage collection. Serve returns
when the context is cancelled; any other return is treated by suture as a
crash and the service is restarted with backoff.

Available services:

  - HTTPServerService: wraps *http.Server with graceful shutdown
  - CacheGCService: periodically reclaims space in the badger cache
*/
package services
