// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

/*
Package app is the composition root of the client.

New opens the durable session store and builds, in order: the session
store, the API gateway (reading its bearer credential from the session),
the service clients, the state store, the route table, the casbin
enforcer and the guard, and the screen registry.

# Navigation

Navigate evaluates the guard for a path and renders the shell and screen
from the current state without dispatching anything. Mount additionally
dispatches the screen's fetches; Open follows redirects and waits for the
data. The view host and the terminal both go through these.

# Expired credentials

The gateway reports a 401 as gateway.ErrAuthExpired and never touches the
session. Every failed store call and every direct service call made here
funnels into one handler which, on that error, expires the session (only
the first observer clears anything), resets the state and emits a forced
navigation to /login to every OnNavigate listener. The caller still sees
its error.

# Actions

Dispatch runs named actions (checkout, product and expense writes, order
status, profile, error dismissal). Decoding, role checks, form validation
and the checkout stock rules all happen before any network call.
*/
package app
