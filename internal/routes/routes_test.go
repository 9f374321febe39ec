// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package routes

import (
	"testing"

	"github.com/tomtom215/pawshop/internal/models"
)

func TestMatch(t *testing.T) {
	table := Default()

	tests := []struct {
		path      string
		wantName  string
		wantID    string
		wantFound bool
	}{
		{"/", Home, "", true},
		{"", Home, "", true},
		{"/products", Products, "", true},
		{"/products/", Products, "", true},
		{"/products?category=dog", Products, "", true},
		{"/product/p-42", ProductDetail, "p-42", true},
		{"/product/a%20b", ProductDetail, "a b", true},
		{"/admin", AdminHome, "", true},
		{"/admin/costs-mana", AdminCosts, "", true},
		{"/admin/edit-product/9", AdminEditProd, "9", true},
		{"/admin/product/9", AdminProduct, "9", true},
		{"/staff", StaffHome, "", true},
		{"/dashboard", Dashboard, "", true},
		{"/product", "", "", false},
		{"/product/1/extra", "", "", false},
		{"/nowhere", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			m, ok := table.Match(tt.path)
			if ok != tt.wantFound {
				t.Fatalf("Match(%q) found = %v, want %v", tt.path, ok, tt.wantFound)
			}
			if !ok {
				return
			}
			if m.Route.Name != tt.wantName {
				t.Errorf("route = %s, want %s", m.Route.Name, tt.wantName)
			}
			if got := m.Param("id"); got != tt.wantID {
				t.Errorf("id = %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestDefaultTableRoles(t *testing.T) {
	table := Default()

	for _, r := range table.Routes() {
		if r.Shell == ShellAdmin && (len(r.Roles) != 1 || r.Roles[0] != models.RoleAdmin) {
			t.Errorf("%s: admin shell route roles = %v", r.Name, r.Roles)
		}
	}

	history, _ := table.ByName(OrderHistory)
	if history.Roles.Contains(models.RoleStaff) || !history.Roles.Contains(models.RoleCustomer) {
		t.Errorf("order history roles = %v", history.Roles)
	}

	for _, name := range []string{Login, Register, Unauthorized, Home, Products, ProductDetail, Contact} {
		r, ok := table.ByName(name)
		if !ok || !r.Public() {
			t.Errorf("%s should be public", name)
		}
	}
}

func TestBuild(t *testing.T) {
	got := Build("/admin/edit-product/:id", map[string]string{"id": "a/b"})
	if got != "/admin/edit-product/a%2Fb" {
		t.Errorf("Build = %q", got)
	}
}

func TestCleanTarget(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/admin/list-products?page=3", "/admin/list-products?page=3"},
		{"admin//inventory/?from=a#frag", "/admin/inventory?from=a"},
		{"/products?", "/products"},
		{"?page=2", "/?page=2"},
		{"", "/"},
	}
	for _, tt := range tests {
		if got := CleanTarget(tt.in); got != tt.want {
			t.Errorf("CleanTarget(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
