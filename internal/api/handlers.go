// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/pawshop/internal/app"
	"github.com/tomtom215/pawshop/internal/authz"
	"github.com/tomtom215/pawshop/internal/logging"
	ws "github.com/tomtom215/pawshop/internal/websocket"
)

// Handler serves the view host endpoints over one client.
type Handler struct {
	app      *app.App
	wsHub    *ws.Hub
	upgrader websocket.Upgrader
}

// NewHandler creates the handlers. hub may be nil, in which case /ws
// answers 503.
func NewHandler(a *app.App, hub *ws.Hub, mw *ChiMiddleware) *Handler {
	h := &Handler{app: a, wsHub: hub}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  4096,
		HandshakeTimeout: 10 * time.Second,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
				return false
			}
			if !mw.AllowsOrigin(origin) {
				logging.Warn().Str("origin", origin).Msg("WebSocket connection rejected from unauthorized origin")
				return false
			}
			return true
		},
	}
	return h
}

// target rebuilds the client-side location from the wildcard segment and
// the query, minus the view host's own parameters.
func target(r *http.Request) string {
	path := "/" + chi.URLParam(r, "*")
	q := r.URL.Query()
	q.Del("wait")
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func waitRequested(r *http.Request) bool {
	wait, err := strconv.ParseBool(r.URL.Query().Get("wait"))
	return err == nil && wait
}

// View evaluates the guard for a location and returns either the redirect
// or the shell, navigation and screen rendered from the current state.
// It dispatches nothing.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, h.app.Navigate(r.Context(), target(r)))
}

// Mount dispatches the screen's fetches. It sits behind the guard
// middleware, so a denied location never starts a call.
func (h *Handler) Mount(w http.ResponseWriter, r *http.Request) {
	page, err := h.app.Mount(r.Context(), target(r), waitRequested(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	WriteSuccess(w, r, page)
}

// denyMount answers a mount the guard refused with the same page a view
// request would get, so the renderer follows the redirect.
func (h *Handler) denyMount(w http.ResponseWriter, r *http.Request, d authz.Decision) {
	logging.Ctx(r.Context()).Debug().
		Str("outcome", d.Outcome.String()).
		Str("location", d.Location).
		Msg("Mount refused by guard")
	WriteSuccess(w, r, h.app.Navigate(r.Context(), target(r)))
}

// Health reports liveness plus the two things a renderer waits on.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	clients := 0
	if h.wsHub != nil {
		clients = h.wsHub.GetClientCount()
	}
	WriteSuccess(w, r, map[string]any{
		"status":            "ok",
		"session_restored":  h.app.Sessions.Restored(),
		"websocket_clients": clients,
	})
}

// WebSocket upgrades the connection and registers it with the hub.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		NewResponseWriter(w, r).ServiceUnavailable("WebSocket service unavailable")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register <- client
	client.Start()
}
