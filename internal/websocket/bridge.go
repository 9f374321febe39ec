// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package websocket

import (
	"github.com/tomtom215/pawshop/internal/store"
)

// StateSource is satisfied by *store.Store.
type StateSource interface {
	State() store.State
	Subscribe(fn func(store.State)) func()
}

// NavigationSource is satisfied by *app.App.
type NavigationSource interface {
	OnNavigate(fn func(path string)) func()
}

// Attach forwards every store change and forced navigation to the hub's
// clients. The returned function detaches both subscriptions.
func Attach(h *Hub, states StateSource, nav NavigationSource) func() {
	h.BroadcastState(states.State())
	unsubState := states.Subscribe(h.BroadcastState)

	unsubNav := func() {}
	if nav != nil {
		unsubNav = nav.OnNavigate(h.BroadcastNavigate)
	}

	return func() {
		unsubState()
		unsubNav()
	}
}
