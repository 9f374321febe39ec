// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package view

import (
	"context"

	"github.com/tomtom215/pawshop/internal/models"
	"github.com/tomtom215/pawshop/internal/routes"
	"github.com/tomtom215/pawshop/internal/store"
)

// Status is the render state of a screen.
type Status string

const (
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusEmpty   Status = "empty"
	StatusReady   Status = "ready"
)

// Params is what a screen is mounted and rendered with.
type Params struct {
	Route     map[string]string `json:"route,omitempty"`
	Query     models.Query      `json:"query,omitempty"`
	Principal *models.Principal `json:"-"`
}

// ID returns the :id route parameter.
func (p Params) ID() string {
	return p.Route["id"]
}

// ScreenView is a rendered screen. Error is the dismissible banner; it may
// be set while Status is ready when a refetch failed over data already shown.
type ScreenView struct {
	Name   string           `json:"name"`
	Title  string           `json:"title"`
	Status Status           `json:"status"`
	Error  *store.ErrorInfo `json:"error,omitempty"`
	Retry  []store.Key      `json:"retry,omitempty"`
	Data   any              `json:"data,omitempty"`
}

// MountFunc dispatches a screen's fetches.
type MountFunc func(ctx context.Context, s *store.Store, p Params) []*store.Pending

// RenderFunc derives a screen's view model from state.
type RenderFunc func(st store.State, p Params) ScreenView

// Screen is one content screen.
type Screen struct {
	Name   string
	Mount  MountFunc
	Render RenderFunc
}

// Registry maps route names to screens.
type Registry struct {
	table   *routes.Table
	screens map[string]Screen
}

// NewRegistry builds the registry for every route in table.
func NewRegistry(table *routes.Table) *Registry {
	r := &Registry{table: table, screens: make(map[string]Screen)}
	for _, s := range []Screen{
		static(routes.Login, loginForm),
		static(routes.Register, registerForm),
		static(routes.Unauthorized, nil),
		static(routes.Dashboard, nil),
		static(routes.Contact, contactInfo),
		homeScreen(),
		productsScreen(),
		productDetailScreen(),
		orderHistoryScreen(),
		accountScreen(),
		adminHomeScreen(),
		adminInventoryScreen(),
		adminExportScreen(),
		adminRevenueScreen(),
		adminProductsScreen(),
		adminAddProductScreen(),
		adminExpenseReportScreen(),
		adminCostsScreen(),
		adminEditProductScreen(),
		adminProductScreen(),
		staffScreen(),
	} {
		r.screens[s.Name] = s
	}
	return r
}

// Lookup returns the screen for a route name.
func (r *Registry) Lookup(name string) (Screen, bool) {
	s, ok := r.screens[name]
	return s, ok
}

// Mount dispatches the named screen's fetches. Unknown or static screens
// dispatch nothing.
func (r *Registry) Mount(ctx context.Context, name string, s *store.Store, p Params) []*store.Pending {
	screen, ok := r.screens[name]
	if !ok || screen.Mount == nil {
		return nil
	}
	return screen.Mount(ctx, s, p)
}

// Render renders the named screen and fills in its title.
func (r *Registry) Render(name string, st store.State, p Params) ScreenView {
	screen, ok := r.screens[name]
	if !ok {
		return ScreenView{Name: name, Status: StatusEmpty}
	}
	v := screen.Render(st, p)
	v.Name = name
	if route, ok := r.table.ByName(name); ok {
		v.Title = route.Title
	}
	return v
}

// probe is the type-agnostic status of one slice.
type probe struct {
	key     store.Key
	loading bool
	loaded  bool
	empty   bool
	err     *store.ErrorInfo
}

func probeOf[T any](key store.Key, s store.Slice[T], empty bool) probe {
	return probe{key: key, loading: s.Loading, loaded: s.Loaded, empty: empty, err: s.Error}
}

// settle derives the screen status from its slices. An error with nothing
// loaded is an error screen. An error over loaded data is a banner. The
// first probe decides emptiness.
func settle(data any, probes ...probe) ScreenView {
	v := ScreenView{Status: StatusReady, Data: data}
	for _, p := range probes {
		if p.err != nil {
			if v.Error == nil {
				v.Error = p.err
			}
			v.Retry = append(v.Retry, p.key)
			if !p.loaded {
				v.Status = StatusError
			}
		}
	}
	if v.Status == StatusError {
		return v
	}
	for _, p := range probes {
		if !p.loaded {
			v.Status = StatusLoading
			return v
		}
	}
	if len(probes) > 0 && probes[0].empty {
		v.Status = StatusEmpty
	}
	return v
}

func static(name string, data func(Params) any) Screen {
	return Screen{
		Name: name,
		Render: func(_ store.State, p Params) ScreenView {
			v := ScreenView{Status: StatusReady}
			if data != nil {
				v.Data = data(p)
			}
			return v
		},
	}
}

// reportQuery copies the date-range parameters a report screen forwards.
func reportQuery(q models.Query) models.Query {
	out := models.Query{}
	for _, k := range []string{models.QueryStartDate, models.QueryEndDate, models.QueryPeriod} {
		if v, ok := q[k]; ok && v != "" {
			out.Set(k, v)
		}
	}
	return out
}
