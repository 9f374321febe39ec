// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package authz

import (
	"fmt"

	"github.com/tomtom215/pawshop/internal/logging"
	"github.com/tomtom215/pawshop/internal/metrics"
	"github.com/tomtom215/pawshop/internal/models"
	"github.com/tomtom215/pawshop/internal/routes"
	"github.com/tomtom215/pawshop/internal/session"
)

// Outcome is the result of evaluating a navigation.
type Outcome int

const (
	// OutcomeLoading means the session has not been restored yet. Render a
	// neutral placeholder and do not redirect.
	OutcomeLoading Outcome = iota
	// OutcomeRedirectLogin means no principal; Decision.From remembers the
	// requested location.
	OutcomeRedirectLogin
	// OutcomeUnauthorized means the principal's role is not allowed.
	OutcomeUnauthorized
	// OutcomeRender means the route may be shown.
	OutcomeRender
	// OutcomeRedirect is an unconditional redirect: unknown paths and the
	// dashboard's role dispatch.
	OutcomeRedirect
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLoading:
		return "loading"
	case OutcomeRedirectLogin:
		return "redirect_login"
	case OutcomeUnauthorized:
		return "unauthorized"
	case OutcomeRender:
		return "render"
	case OutcomeRedirect:
		return "redirect"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Decision is what the guard decided for one navigation.
type Decision struct {
	Outcome Outcome
	// Match is set for OutcomeRender and, where a route matched, the redirects.
	Match routes.Match
	// Location is the redirect target for every redirect outcome.
	Location string
	// From is the originally requested path for OutcomeRedirectLogin.
	From string
}

// Redirect reports whether the decision navigates elsewhere.
func (d Decision) Redirect() bool {
	switch d.Outcome {
	case OutcomeRedirectLogin, OutcomeUnauthorized, OutcomeRedirect:
		return true
	}
	return false
}

// Guard decides render-vs-redirect from the session and the route table.
type Guard struct {
	table    *routes.Table
	enforcer *Enforcer
}

// NewGuard creates a guard.
func NewGuard(table *routes.Table, enforcer *Enforcer) *Guard {
	return &Guard{table: table, enforcer: enforcer}
}

// Table returns the route table the guard evaluates against.
func (g *Guard) Table() *routes.Table {
	return g.table
}

// Decide evaluates a navigation to path.
func (g *Guard) Decide(snap session.Snapshot, path string) Decision {
	d := g.decide(snap, path)
	metrics.RecordGuardDecision(d.Outcome.String())
	if d.Redirect() {
		logging.Debug().
			Str("path", path).
			Str("outcome", d.Outcome.String()).
			Str("location", d.Location).
			Msg("Navigation redirected")
	}
	return d
}

func (g *Guard) decide(snap session.Snapshot, path string) Decision {
	m, ok := g.table.Match(path)
	if !ok {
		return Decision{Outcome: OutcomeRedirect, Location: routes.PathHome}
	}
	if m.Route.Public() {
		return Decision{Outcome: OutcomeRender, Match: m}
	}
	if !snap.Restored {
		return Decision{Outcome: OutcomeLoading, Match: m}
	}
	if snap.Principal == nil {
		return Decision{Outcome: OutcomeRedirectLogin, Match: m, Location: routes.PathLogin, From: routes.CleanTarget(path)}
	}

	role := snap.Principal.Role
	if !g.permits(m, role) {
		return Decision{Outcome: OutcomeUnauthorized, Match: m, Location: routes.PathUnauthorized}
	}

	if m.Route.Name == routes.Dashboard {
		return Decision{Outcome: OutcomeRedirect, Match: m, Location: HomeFor(role)}
	}
	return Decision{Outcome: OutcomeRender, Match: m}
}

// permits consults the casbin policy, or the route's declared roles when
// no enforcer is configured. An enforcement error denies.
func (g *Guard) permits(m routes.Match, role models.Role) bool {
	if !role.Valid() {
		return false
	}
	if g.enforcer == nil {
		return m.Route.Roles.Contains(role)
	}
	ok, err := g.enforcer.Allowed(role, m.Path)
	if err != nil {
		logging.Error().Err(err).Str("path", m.Path).Msg("Authorization error")
		return false
	}
	return ok
}

// HomeFor is the dashboard's role dispatch target.
func HomeFor(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return routes.PathAdmin
	case models.RoleStaff:
		return routes.PathStaff
	case models.RoleCustomer:
		return routes.PathHome
	default:
		return routes.PathUnauthorized
	}
}

// LoginTarget is where a successful login returns to: the remembered
// location when there is one, the dashboard otherwise.
func LoginTarget(from string) string {
	if p := routes.Clean(from); from == "" || p == routes.PathLogin || p == "/register" {
		return routes.PathDashboard
	}
	return routes.CleanTarget(from)
}
