// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package supervisor

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/pawshop/internal/api"
	"github.com/tomtom215/pawshop/internal/app"
	"github.com/tomtom215/pawshop/internal/logging"
	"github.com/tomtom215/pawshop/internal/supervisor/services"
	ws "github.com/tomtom215/pawshop/internal/websocket"
)

// ViewHost is a client wired into a supervisor tree with its hub and
// HTTP server.
type ViewHost struct {
	*SupervisorTree
	Hub    *ws.Hub
	Server *http.Server
}

// NewViewHost builds the tree for a. The session is restored by the
// client layer once the tree is served, so a must not be started yet.
func NewViewHost(a *app.App, config TreeConfig) (*ViewHost, error) {
	srvCfg := a.Config().Server
	if srvCfg.ShutdownTimeout > 0 {
		config.ShutdownTimeout = srvCfg.ShutdownTimeout
	}

	tree, err := NewSupervisorTree(logging.NewSlogLogger(), config)
	if err != nil {
		return nil, err
	}

	hub := ws.NewHub()
	server := &http.Server{
		Addr:              net.JoinHostPort(srvCfg.Host, strconv.Itoa(srvCfg.Port)),
		Handler:           api.NewRouter(a, hub).SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	tree.AddClientService(services.NewSessionRestoreService(a))
	tree.AddMessagingService(services.NewWebSocketHubService(hub, func() func() {
		return ws.Attach(hub, a.Store, a)
	}))
	tree.AddAPIService(services.NewHTTPServerService(server, tree.Config().ShutdownTimeout))

	return &ViewHost{SupervisorTree: tree, Hub: hub, Server: server}, nil
}
