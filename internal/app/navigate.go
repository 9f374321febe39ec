// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package app

import (
	"context"
	"errors"
	"net/url"

	"github.com/tomtom215/pawshop/internal/authz"
	"github.com/tomtom215/pawshop/internal/models"
	"github.com/tomtom215/pawshop/internal/routes"
	"github.com/tomtom215/pawshop/internal/session"
	"github.com/tomtom215/pawshop/internal/store"
	"github.com/tomtom215/pawshop/internal/view"
)

// maxRedirects bounds Open's redirect chain.
const maxRedirects = 5

// ErrRedirectLoop is returned by Open when redirects do not settle.
var ErrRedirectLoop = errors.New("too many redirects")

// Page is the result of one navigation.
type Page struct {
	Path     string           `json:"path"`
	Outcome  string           `json:"outcome"`
	Redirect string           `json:"redirect,omitempty"`
	From     string           `json:"from,omitempty"`
	Via      []string         `json:"via,omitempty"`
	Shell    *view.ShellView  `json:"shell,omitempty"`
	Screen   *view.ScreenView `json:"screen,omitempty"`

	route  string
	params view.Params
}

// Rendered reports whether the page shows a screen.
func (p Page) Rendered() bool {
	return p.Screen != nil
}

// Navigate evaluates the guard for target and renders the screen from the
// current state. It dispatches nothing.
func (a *App) Navigate(ctx context.Context, target string) Page {
	snap := a.Sessions.Snapshot()
	d := a.guard.Decide(snap, target)
	page := Page{Path: routes.Clean(target), Outcome: d.Outcome.String()}

	switch d.Outcome {
	case authz.OutcomeLoading:
		return page
	case authz.OutcomeRedirectLogin:
		a.rememberFrom(d.From)
		page.From = d.From
		page.Redirect = d.Location + "?" + url.Values{"from": {d.From}}.Encode()
		return page
	case authz.OutcomeUnauthorized, authz.OutcomeRedirect:
		page.Redirect = d.Location
		return page
	case authz.OutcomeRender:
	}

	page.route = d.Match.Route.Name
	page.params = view.Params{Route: d.Match.Params, Query: queryOf(target), Principal: snap.Principal}
	a.render(&page, d.Match.Route, snap)
	return page
}

func (a *App) render(page *Page, route *routes.Route, snap session.Snapshot) {
	sv := view.NewShellView(route.Shell, page.Path, snap.Principal)
	screen := a.screens.Render(page.route, a.Store.State(), page.params)
	page.Shell = &sv
	page.Screen = &screen
}

// Mount navigates to target and, when the screen renders, dispatches its
// fetches. With wait set it blocks until they resolve and re-renders;
// fetch failures are already part of the rendered screen.
func (a *App) Mount(ctx context.Context, target string, wait bool) (Page, error) {
	page := a.Navigate(ctx, target)
	if !page.Rendered() {
		return page, nil
	}
	pending := a.screens.Mount(ctx, page.route, a.Store, page.params)
	if !wait {
		return page, nil
	}
	if err := store.WaitAll(ctx, pending...); err != nil && ctx.Err() != nil {
		return page, ctx.Err()
	}
	// The session may have expired while the fetches ran.
	return a.Navigate(ctx, target), nil
}

// Open follows redirects from target, then mounts the screen it lands on
// and waits for its data.
func (a *App) Open(ctx context.Context, target string) (Page, error) {
	var via []string
	for range maxRedirects {
		page, err := a.Mount(ctx, target, true)
		if err != nil {
			return page, err
		}
		if page.Redirect == "" {
			page.Via = via
			return page, nil
		}
		via = append(via, page.Path)
		target = page.Redirect
	}
	return Page{Path: target, Via: via}, ErrRedirectLoop
}

// Retry re-runs the mount of the screen at target; it is what an error
// banner's retry button does.
func (a *App) Retry(ctx context.Context, target string) (Page, error) {
	page := a.Navigate(ctx, target)
	for _, key := range page.retryKeys() {
		a.Store.DismissError(key)
	}
	return a.Mount(ctx, target, true)
}

func (p Page) retryKeys() []store.Key {
	if p.Screen == nil {
		return nil
	}
	return p.Screen.Retry
}

func queryOf(target string) models.Query {
	u, err := url.Parse(target)
	if err != nil || u.RawQuery == "" {
		return nil
	}
	q := models.Query{}
	for k, v := range u.Query() {
		if len(v) > 0 {
			q[k] = v[0]
		}
	}
	return q
}
