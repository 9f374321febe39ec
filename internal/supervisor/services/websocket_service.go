// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package services

import (
	"context"
)

// ContextHub is a hub loop that stops with its context.
type ContextHub interface {
	RunWithContext(ctx context.Context) error
}

// WebSocketHubService runs the hub. attach, when set, is called on every
// start and the function it returns on every stop, so a restarted hub is
// subscribed exactly once.
type WebSocketHubService struct {
	hub    ContextHub
	attach func() func()
	name   string
}

// NewWebSocketHubService wraps hub. attach may be nil.
func NewWebSocketHubService(hub ContextHub, attach func() func()) *WebSocketHubService {
	return &WebSocketHubService{
		hub:    hub,
		attach: attach,
		name:   "websocket-hub",
	}
}

// Serve implements suture.Service.
func (w *WebSocketHubService) Serve(ctx context.Context) error {
	if w.attach != nil {
		detach := w.attach()
		defer detach()
	}
	return w.hub.RunWithContext(ctx)
}

func (w *WebSocketHubService) String() string {
	return w.name
}
