// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

/*
Package api is the local view host: a chi router a browser renderer talks
to. It owns no business data; every request is answered from the client
in internal/app.

Endpoints:

	GET  /view/*            guard decision plus shell, navigation and screen
	POST /mount/*           dispatch the screen's fetches (?wait=true blocks)
	GET  /actions           action names
	POST /actions/{name}    dispatch an action (?wait=true blocks)
	GET  /session           current principal, shell and home location
	POST /session/login     sign in; returns where to go next
	POST /session/register  create a customer account and sign in
	POST /session/logout    sign out and wipe the state
	GET  /ws                state and navigation push (internal/websocket)
	GET  /metrics           Prometheus metrics
	GET  /healthz           liveness

Responses use the APIResponse envelope. A guard redirect is not an HTTP
redirect: the page carries "redirect" and the renderer navigates itself,
which keeps the remembered "from" location on the client side.

Errors map to statuses as follows: form validation 400 VALIDATION_FAILED
with per-field messages, stock rules 409, missing session 401, wrong role
403, and gateway failures by kind (401 for an expired credential, the
server's 4xx for a rejection, 503 when unreachable, 504 on timeout, 502
otherwise).
*/
package api
