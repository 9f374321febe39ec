// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package authz

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/pawshop/internal/session"
)

// SnapshotSource yields the current session snapshot.
type SnapshotSource interface {
	Snapshot() session.Snapshot
}

type decisionKey struct{}

// DecisionFromContext returns the decision the middleware stored.
func DecisionFromContext(ctx context.Context) (Decision, bool) {
	d, ok := ctx.Value(decisionKey{}).(Decision)
	return d, ok
}

// Middleware runs the guard in front of view handlers.
type Middleware struct {
	guard    *Guard
	sessions SnapshotSource
}

// NewMiddleware creates the guard middleware.
func NewMiddleware(guard *Guard, sessions SnapshotSource) *Middleware {
	return &Middleware{guard: guard, sessions: sessions}
}

// Guard decides the navigation named by the route's wildcard segment and
// stores the decision in the request context. Only OutcomeRender reaches
// next; every other outcome is answered by deny.
func (m *Middleware) Guard(deny func(w http.ResponseWriter, r *http.Request, d Decision)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := "/" + chi.URLParam(r, "*")
			d := m.guard.Decide(m.sessions.Snapshot(), path)
			ctx := context.WithValue(r.Context(), decisionKey{}, d)
			if d.Outcome != OutcomeRender {
				deny(w, r.WithContext(ctx), d)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
