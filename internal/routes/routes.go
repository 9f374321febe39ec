// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

// Package routes is the client-side route table: every navigable path, the
// shell it renders in and the roles allowed to see it.
//
// Patterns use the ":name" parameter syntax and are matched with casbin's
// KeyMatch2, the same matcher the route guard's policy uses.
package routes

import (
	"net/url"
	"path"
	"strings"

	"github.com/casbin/casbin/v2/util"

	"github.com/tomtom215/pawshop/internal/models"
)

// Shell is the navigation frame a route renders in.
type Shell string

const (
	ShellNone  Shell = "none"
	ShellMain  Shell = "main"
	ShellStaff Shell = "staff"
	ShellAdmin Shell = "admin"
)

// Route names.
const (
	Login         = "login"
	Register      = "register"
	Unauthorized  = "unauthorized"
	Dashboard     = "dashboard"
	Home          = "home"
	Products      = "products"
	ProductDetail = "product-detail"
	OrderHistory  = "order-history"
	Account       = "account"
	Contact       = "contact"

	AdminHome      = "admin"
	AdminInventory = "admin-inventory"
	AdminExport    = "admin-export"
	AdminRevenue   = "admin-revenue"
	AdminProducts  = "admin-list-products"
	AdminAddProd   = "admin-add-products"
	AdminExpenses  = "admin-expense-report"
	AdminCosts     = "admin-costs"
	AdminEditProd  = "admin-edit-product"
	AdminProduct   = "admin-product"

	StaffHome = "staff"
)

// Well-known paths.
const (
	PathLogin        = "/login"
	PathUnauthorized = "/unauthorized"
	PathDashboard    = "/dashboard"
	PathHome         = "/"
	PathAdmin        = "/admin"
	PathStaff        = "/staff"
)

// Route is one entry of the table.
type Route struct {
	Name    string
	Pattern string
	Title   string
	Shell   Shell
	// Roles lists who may see the route. Nil means public.
	Roles models.Roles
}

// Public reports whether the route needs no principal.
func (r *Route) Public() bool {
	return r.Roles == nil
}

// Match is a resolved navigation.
type Match struct {
	Route  *Route
	Path   string
	Params map[string]string
}

// Param returns the named path parameter.
func (m Match) Param(name string) string {
	return m.Params[name]
}

var (
	anyRole   = models.Roles{models.RoleCustomer, models.RoleStaff, models.RoleAdmin}
	adminOnly = models.Roles{models.RoleAdmin}
)

// Table is an ordered route list. The first matching entry wins.
type Table struct {
	routes []*Route
	byName map[string]*Route
}

// NewTable builds a table from routes.
func NewTable(routes []*Route) *Table {
	t := &Table{routes: routes, byName: make(map[string]*Route, len(routes))}
	for _, r := range routes {
		t.byName[r.Name] = r
	}
	return t
}

// Default returns the storefront and back-office route table.
func Default() *Table {
	return NewTable([]*Route{
		{Name: Login, Pattern: PathLogin, Title: "Sign in", Shell: ShellNone},
		{Name: Register, Pattern: "/register", Title: "Create account", Shell: ShellNone},
		{Name: Unauthorized, Pattern: PathUnauthorized, Title: "Not allowed", Shell: ShellNone},
		{Name: Dashboard, Pattern: PathDashboard, Title: "Dashboard", Shell: ShellNone, Roles: anyRole},

		{Name: Home, Pattern: PathHome, Title: "Home", Shell: ShellMain},
		{Name: Products, Pattern: "/products", Title: "Products", Shell: ShellMain},
		{Name: ProductDetail, Pattern: "/product/:id", Title: "Product", Shell: ShellMain},
		{Name: OrderHistory, Pattern: "/order-history", Title: "My orders", Shell: ShellMain, Roles: models.Roles{models.RoleCustomer}},
		{Name: Account, Pattern: "/account", Title: "Account", Shell: ShellMain, Roles: anyRole},
		{Name: Contact, Pattern: "/contact", Title: "Contact", Shell: ShellMain},

		{Name: AdminHome, Pattern: PathAdmin, Title: "Overview", Shell: ShellAdmin, Roles: adminOnly},
		{Name: AdminInventory, Pattern: "/admin/inventory", Title: "Inventory", Shell: ShellAdmin, Roles: adminOnly},
		{Name: AdminExport, Pattern: "/admin/export", Title: "Exports", Shell: ShellAdmin, Roles: adminOnly},
		{Name: AdminRevenue, Pattern: "/admin/revenue", Title: "Revenue", Shell: ShellAdmin, Roles: adminOnly},
		{Name: AdminProducts, Pattern: "/admin/list-products", Title: "Products", Shell: ShellAdmin, Roles: adminOnly},
		{Name: AdminAddProd, Pattern: "/admin/add-products", Title: "Add product", Shell: ShellAdmin, Roles: adminOnly},
		{Name: AdminExpenses, Pattern: "/admin/expense-report", Title: "Expense report", Shell: ShellAdmin, Roles: adminOnly},
		{Name: AdminCosts, Pattern: "/admin/costs-mana", Title: "Costs", Shell: ShellAdmin, Roles: adminOnly},
		{Name: AdminEditProd, Pattern: "/admin/edit-product/:id", Title: "Edit product", Shell: ShellAdmin, Roles: adminOnly},
		{Name: AdminProduct, Pattern: "/admin/product/:id", Title: "Product", Shell: ShellAdmin, Roles: adminOnly},

		{Name: StaffHome, Pattern: PathStaff, Title: "Orders", Shell: ShellStaff, Roles: models.Roles{models.RoleStaff, models.RoleAdmin}},
	})
}

// Routes returns the table in match order.
func (t *Table) Routes() []*Route {
	return t.routes
}

// ByName returns the named route.
func (t *Table) ByName(name string) (*Route, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// Match resolves p to a route. It reports false for paths no route
// declares; callers redirect those home.
func (t *Table) Match(p string) (Match, bool) {
	clean := Clean(p)
	for _, r := range t.routes {
		if !util.KeyMatch2(clean, r.Pattern) {
			continue
		}
		m := Match{Route: r, Path: clean}
		for _, name := range paramNames(r.Pattern) {
			if m.Params == nil {
				m.Params = make(map[string]string)
			}
			value := util.KeyGet2(clean, r.Pattern, name)
			if unescaped, err := url.PathUnescape(value); err == nil {
				value = unescaped
			}
			m.Params[name] = value
		}
		return m, true
	}
	return Match{}, false
}

// Clean normalizes a navigation path: query and fragment dropped, leading
// slash added, trailing slash removed.
func Clean(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return PathHome
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// CleanTarget is Clean that keeps the query string. The fragment is dropped.
func CleanTarget(p string) string {
	if i := strings.IndexByte(p, '#'); i >= 0 {
		p = p[:i]
	}
	query := ""
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p, query = p[:i], p[i:]
	}
	if query == "?" {
		query = ""
	}
	return Clean(p) + query
}

// Build fills a pattern's parameters.
func Build(pattern string, params map[string]string) string {
	parts := strings.Split(pattern, "/")
	for i, part := range parts {
		if strings.HasPrefix(part, ":") {
			parts[i] = url.PathEscape(params[part[1:]])
		}
	}
	return strings.Join(parts, "/")
}

func paramNames(pattern string) []string {
	var names []string
	for _, part := range strings.Split(pattern, "/") {
		if strings.HasPrefix(part, ":") {
			names = append(names, part[1:])
		}
	}
	return names
}
