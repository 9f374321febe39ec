// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/pawshop/internal/app"
	"github.com/tomtom215/pawshop/internal/authz"
	ws "github.com/tomtom215/pawshop/internal/websocket"
)

// Router wires the view host routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	guard         *authz.Middleware
}

// NewRouter creates the router over a client. hub may be nil.
func NewRouter(a *app.App, hub *ws.Hub) *Router {
	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = a.Config().Server.CORSOrigins
	mw := NewChiMiddleware(cfg)

	return &Router{
		handler:       NewHandler(a, hub, mw),
		chiMiddleware: mw,
		guard:         authz.NewMiddleware(a.Guard(), a.Sessions),
	}
}

// SetupChi configures all routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler

	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global, so OPTIONS preflight is answered
	r.Use(RequestMetrics())

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws", h.WebSocket)

	r.Group(func(r chi.Router) {
		r.Use(APISecurityHeaders())

		// Navigation: guard decision plus the rendered view model.
		r.Get("/view", h.View)
		r.Get("/view/*", h.View)

		// Mounting dispatches fetches, so the guard runs first.
		r.Route("/mount", func(r chi.Router) {
			r.Use(router.guard.Guard(h.denyMount))
			r.Post("/", h.Mount)
			r.Post("/*", h.Mount)
		})

		r.Get("/actions", h.ListActions)
		r.Post("/actions/{name}", h.Dispatch)

		r.Route("/session", func(r chi.Router) {
			r.Get("/", h.Session)
			r.Post("/login", h.Login)
			r.Post("/register", h.Register)
			r.Post("/logout", h.Logout)
		})
	})

	return r
}
