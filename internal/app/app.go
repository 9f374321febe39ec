// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/tomtom215/pawshop/internal/authz"
	"github.com/tomtom215/pawshop/internal/config"
	"github.com/tomtom215/pawshop/internal/gateway"
	"github.com/tomtom215/pawshop/internal/kvstore"
	"github.com/tomtom215/pawshop/internal/logging"
	"github.com/tomtom215/pawshop/internal/routes"
	"github.com/tomtom215/pawshop/internal/session"
	"github.com/tomtom215/pawshop/internal/shopapi"
	"github.com/tomtom215/pawshop/internal/store"
	"github.com/tomtom215/pawshop/internal/view"
)

// Option customizes New.
type Option func(*options)

type options struct {
	kv         kvstore.KV
	httpClient *http.Client
}

// WithKV uses kv instead of opening the configured badger store. The
// caller keeps ownership; Close does not close it.
func WithKV(kv kvstore.KV) Option {
	return func(o *options) { o.kv = kv }
}

// WithHTTPClient replaces the gateway's HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// App wires the client together. It is safe for concurrent use.
type App struct {
	cfg *config.Config

	kv      kvstore.KV
	ownsKV  bool
	gw      *gateway.Client
	api     *shopapi.Services
	table   *routes.Table
	guard   *authz.Guard
	screens *view.Registry

	// Sessions is the single writer of the principal.
	Sessions *session.Store
	// Store is the application state.
	Store *store.Store

	navMu   sync.Mutex
	navSubs map[int]func(string)
	navNext int
	from    string
}

// New builds the client from cfg. It does not restore the session; call
// Start before the first guarded navigation.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{cfg: cfg, kv: o.kv, navSubs: make(map[int]func(string))}
	if a.kv == nil {
		kv, err := kvstore.Open(cfg.KVStore())
		if err != nil {
			return nil, fmt.Errorf("open session store: %w", err)
		}
		a.kv = kv
		a.ownsKV = true
	}
	a.Sessions = session.New(a.kv, cfg.Session.TTL)

	gwCfg := cfg.Gateway()
	gwCfg.HTTPClient = o.httpClient
	gw, err := gateway.New(gwCfg, a.Sessions)
	if err != nil {
		a.closeKV()
		return nil, fmt.Errorf("create gateway: %w", err)
	}
	a.gw = gw
	a.api = shopapi.NewServices(gw)
	a.Store = store.New(store.FromServices(a.api), store.WithErrorHook(a.handleError))

	a.table = routes.Default()
	enforcer, err := authz.NewEnforcer(cfg.Enforcer(), a.table)
	if err != nil {
		a.closeKV()
		return nil, fmt.Errorf("create enforcer: %w", err)
	}
	a.guard = authz.NewGuard(a.table, enforcer)
	a.screens = view.NewRegistry(a.table)

	logging.Ctx(ctx).Info().
		Str("api", gw.BaseURL()).
		Int("routes", len(a.table.Routes())).
		Msg("Client initialized")
	return a, nil
}

// Start restores the session. A malformed stored session is discarded and
// logged; only a canceled context is returned as an error.
func (a *App) Start(ctx context.Context) error {
	if err := a.Sessions.Restore(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logging.Ctx(ctx).Warn().Err(err).Msg("Stored session discarded")
	}
	return nil
}

// Close waits for in-flight fetches and closes the durable store.
func (a *App) Close() error {
	a.Store.Drain()
	return a.closeKV()
}

func (a *App) closeKV() error {
	if !a.ownsKV {
		return nil
	}
	return a.kv.Close()
}

// Guard returns the route guard.
func (a *App) Guard() *authz.Guard { return a.guard }

// Screens returns the screen registry.
func (a *App) Screens() *view.Registry { return a.screens }

// Config returns the configuration the client was built with.
func (a *App) Config() *config.Config { return a.cfg }

// OnNavigate registers fn to be called with every forced navigation (the
// login redirect after logout or an expired session). The returned
// function unregisters it.
func (a *App) OnNavigate(fn func(path string)) func() {
	a.navMu.Lock()
	id := a.navNext
	a.navNext++
	a.navSubs[id] = fn
	a.navMu.Unlock()

	return func() {
		a.navMu.Lock()
		delete(a.navSubs, id)
		a.navMu.Unlock()
	}
}

func (a *App) navigate(ctx context.Context, path string) {
	a.navMu.Lock()
	fns := make([]func(string), 0, len(a.navSubs))
	for _, fn := range a.navSubs {
		fns = append(fns, fn)
	}
	a.navMu.Unlock()

	logging.Ctx(ctx).Debug().Str("path", path).Msg("Forced navigation")
	for _, fn := range fns {
		fn(path)
	}
}

// handleError is the store's error hook and the funnel for direct service
// calls. An expired credential tears the session down once, however many
// calls observe the 401.
func (a *App) handleError(ctx context.Context, err error) {
	if !errors.Is(err, gateway.ErrAuthExpired) {
		return
	}
	cleared, expireErr := a.Sessions.Expire(ctx)
	if expireErr != nil {
		logging.Ctx(ctx).Error().Err(expireErr).Msg("Failed to clear expired session")
	}
	if !cleared {
		return
	}
	a.Store.Reset()
	a.navigate(ctx, routes.PathLogin)
}

// check routes a direct call's error through handleError and returns it.
func (a *App) check(ctx context.Context, err error) error {
	if err != nil {
		a.handleError(ctx, err)
	}
	return err
}
