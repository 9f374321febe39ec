// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

/*
Package websocket pushes application state changes and forced navigations
to connected renderers.

A renderer subscribes by opening /ws on the view host. It then receives:

  - state: {"type":"state","data":{"version":N,"slices":{...}}} after every
    reduction, coalesced so that only the newest state is sent when several
    reductions land between two hub iterations. A newly connected renderer
    gets the current state immediately.
  - navigate: {"type":"navigate","data":"/login"} when the client forces a
    navigation, for example after the session expired.
  - pong: in reply to a {"type":"ping"} message.

Components:

  - Hub: owns the client set and runs under supervision (RunWithContext)
  - Client: one connection with its read and write goroutines
  - Attach: subscribes a hub to the state store and the navigator

Slow renderers whose send buffer fills up are disconnected rather than
allowed to hold back the others; they reconnect and receive the current
state.
*/
package websocket
