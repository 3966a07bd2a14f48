// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

/*
Package supervisor provides process supervision for Forkfeed using suture v4.

Long-running services are grouped into three layers so a failure in one
restarts only that layer:

	RootSupervisor ("forkfeed")
	├── DataSupervisor ("data-layer")
	│   ├── badger value-log GC (storage.driver=badger)
	│   ├── cache janitor (cache.driver=memory)
	│   └── suggestion warmer (recommend.warm_interval > 0)
	├── MessagingSupervisor ("messaging-layer")
	│   └── notification router (events.enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Supervisor events (start, stop, panic, backoff) are logged through
sutureslog into the zerolog-backed slog handler from the logging package.

Usage in main.go:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(badgerstore.NewGCService(db, cfg.Storage.BadgerGCInterval))
	tree.AddMessagingService(notifier)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

Services implement suture.Service and fmt.Stringer so events name them.
*/
package supervisor
