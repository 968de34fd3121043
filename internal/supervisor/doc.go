// Shelfmark - Story to EPUB Conversion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

/*
Package supervisor runs Shelfmark's long-lived services under a suture v4
supervisor tree.

The tree has a single child layer today:

	shelfmark (root)
	└── api-layer
	    └── http-server

A service that returns an error is restarted with suture's failure
accounting (threshold, decay, backoff). Canceling the context passed to
Serve stops every service, waiting at most ShutdownTimeout for each.

Supervisor events are logged through log/slog via sutureslog; main wires
the slog logger to zerolog with logging.NewSlogLogger.

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	return tree.Serve(ctx)
*/
package supervisor
