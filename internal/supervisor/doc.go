// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

/*
Package supervisor provides process supervision for the mediafeed server using
suture v4.

The tree separates background maintenance from request serving so a
crashing maintenance loop never takes the API down:

	RootSupervisor ("mediafeed")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheGCService (badger cache backend only)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. Cancelling the
context passed to Serve shuts the tree down, giving each service
TreeConfig.ShutdownTimeout to stop.

Supervisor events (service panics, restarts, backoff) are logged through
sutureslog. Pass logging.NewSlogLogger() to route them into zerolog:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err = tree.Serve(ctx)
*/
package supervisor
