// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package view

import (
	"github.com/tomtom215/pawshop/internal/models"
	"github.com/tomtom215/pawshop/internal/routes"
)

// NavLink is one navigation entry.
type NavLink struct {
	Label  string `json:"label"`
	Path   string `json:"path"`
	Active bool   `json:"active"`
}

// Nav is the shell's navigation. Desktop (sidebar) and Mobile (slide-over)
// are two renderings of the same link list.
type Nav struct {
	Desktop []NavLink `json:"desktop"`
	Mobile  []NavLink `json:"mobile"`
}

// ShellView is the frame around a screen.
type ShellView struct {
	Shell      routes.Shell `json:"shell"`
	Nav        Nav          `json:"nav"`
	User       string       `json:"user,omitempty"`
	Role       string       `json:"role,omitempty"`
	LogoutPath string       `json:"logoutPath,omitempty"`
}

var (
	navTable = routes.Default()

	mainLinks = []NavLink{
		{Label: "Home", Path: "/"},
		{Label: "Products", Path: "/products"},
		{Label: "My orders", Path: "/order-history"},
		{Label: "Account", Path: "/account"},
		{Label: "Contact", Path: "/contact"},
	}
	staffLinks = []NavLink{
		{Label: "Orders", Path: "/staff"},
		{Label: "Account", Path: "/account"},
	}
	adminLinks = []NavLink{
		{Label: "Overview", Path: "/admin"},
		{Label: "Inventory", Path: "/admin/inventory"},
		{Label: "Exports", Path: "/admin/export"},
		{Label: "Revenue", Path: "/admin/revenue"},
		{Label: "Products", Path: "/admin/list-products"},
		{Label: "Add product", Path: "/admin/add-products"},
		{Label: "Expense report", Path: "/admin/expense-report"},
		{Label: "Costs", Path: "/admin/costs-mana"},
		{Label: "Orders", Path: "/staff"},
	}
)

// ShellForRole is the shell a role lands in.
func ShellForRole(r models.Role) routes.Shell {
	switch r {
	case models.RoleAdmin:
		return routes.ShellAdmin
	case models.RoleStaff:
		return routes.ShellStaff
	case models.RoleCustomer:
		return routes.ShellMain
	default:
		return routes.ShellMain
	}
}

// NavLinks returns the shell's link list with current marked active.
// Links the principal may not open are left out.
func NavLinks(shell routes.Shell, current string, p *models.Principal) []NavLink {
	var src []NavLink
	switch shell {
	case routes.ShellMain:
		src = mainLinks
	case routes.ShellStaff:
		src = staffLinks
	case routes.ShellAdmin:
		src = adminLinks
	case routes.ShellNone:
		return nil
	}

	out := make([]NavLink, 0, len(src))
	for _, link := range src {
		if m, ok := navTable.Match(link.Path); ok && !m.Route.Public() {
			if p == nil || !m.Route.Roles.Contains(p.Role) {
				continue
			}
		}
		link.Active = link.Path == current
		out = append(out, link)
	}
	return out
}

// NewShellView builds the frame for a screen at current.
func NewShellView(shell routes.Shell, current string, p *models.Principal) ShellView {
	links := NavLinks(shell, current, p)
	v := ShellView{
		Shell: shell,
		Nav: Nav{
			Desktop: links,
			Mobile:  append([]NavLink(nil), links...),
		},
	}
	if p != nil {
		v.User = p.Name
		v.Role = RoleLabel(p.Role)
		v.LogoutPath = "/session/logout"
	}
	return v
}
