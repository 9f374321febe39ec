// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

/*
Package authz is the route guard.

Every navigation is evaluated against the session snapshot and the route
table:

	unknown path            -> OutcomeRedirect to "/"
	public route            -> OutcomeRender
	session not restored    -> OutcomeLoading (no redirect)
	no principal            -> OutcomeRedirectLogin, From = requested path
	role not allowed        -> OutcomeUnauthorized
	/dashboard              -> OutcomeRedirect to the role's home
	otherwise               -> OutcomeRender

The role check is a Casbin enforcement. The model is a flat ACL with no
role hierarchy:

	[request_definition]
	r = sub, obj, act

	[policy_definition]
	p = sub, obj, act

	[policy_effect]
	e = some(where (p.eft == allow))

	[matchers]
	m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && r.act == p.act

The policy is generated from the route table, one line per allowed role:

	p, admin, /admin/edit-product/:id, view
	p, customer, /order-history, view
	p, staff, /staff, view
	p, admin, /staff, view

A policy file (authz.policy_path) replaces the generated policy; the route
table still decides which routes are public.

Usage:

	enforcer, err := authz.NewEnforcer(authz.EnforcerConfig{CacheEnabled: true}, table)
	guard := authz.NewGuard(table, enforcer)
	d := guard.Decide(sessions.Snapshot(), "/admin")
*/
package authz
