// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

/*
Package supervisor runs the long-lived parts of a Pawshop client under a
suture v4 supervisor tree.

# Tree

	pawshop
	├── client-layer
	│   └── session-restore   (one shot; restarted only on failure)
	├── messaging-layer
	│   └── websocket-hub     (attached to the store while running)
	└── api-layer
	    └── view-host         (HTTP server)

Each layer counts failures on its own, so a crashing hub does not take the
HTTP listener down with it. Supervisor events are logged through the
zerolog-backed slog handler from the logging package via sutureslog.

# Usage

	host, err := supervisor.NewViewHost(a, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	return host.Serve(ctx)

The client passed to NewViewHost must not be started: restoring the
session is the first thing the tree does.

# Services

A service returns nil or suture.ErrDoNotRestart when it is finished,
ctx.Err() when asked to stop, and any other error to be restarted.
See the services subpackage for the wrappers.

# Shutdown

Canceling the context stops every layer. Services that miss
TreeConfig.ShutdownTimeout are listed by UnstoppedServiceReport.
*/
package supervisor
