// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

/*
Package app assembles a running mediafeed instance from its configuration.

New opens the database (applying migrations and the optional seed file),
opens the response cache and registers every enabled source in the
catalog behind three decorators:

	Cached(Breaker(Limited(adapter)))

The rate limiter sits closest to the provider so cache hits never consume
tokens, and the breaker only sees real upstream calls.

Handler, Server and Tree expose the HTTP API and the supervisor tree used
by cmd/server; cmd/feedctl uses the engine and store directly.
*/
package app
