// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package view

import (
	"reflect"
	"testing"

	"github.com/tomtom215/pawshop/internal/models"
	"github.com/tomtom215/pawshop/internal/routes"
)

func TestShellForRole(t *testing.T) {
	tests := []struct {
		role models.Role
		want routes.Shell
	}{
		{models.RoleAdmin, routes.ShellAdmin},
		{models.RoleStaff, routes.ShellStaff},
		{models.RoleCustomer, routes.ShellMain},
	}
	for _, tt := range tests {
		if got := ShellForRole(tt.role); got != tt.want {
			t.Errorf("ShellForRole(%s) = %s, want %s", tt.role, got, tt.want)
		}
	}
}

func TestShellViewRendersOneListTwice(t *testing.T) {
	admin := &models.Principal{ID: "1", Name: "An", Role: models.RoleAdmin}
	v := NewShellView(routes.ShellAdmin, "/admin/revenue", admin)
	if !reflect.DeepEqual(v.Nav.Desktop, v.Nav.Mobile) {
		t.Errorf("desktop and mobile differ:\n%v\n%v", v.Nav.Desktop, v.Nav.Mobile)
	}
	active := 0
	for _, l := range v.Nav.Desktop {
		if l.Active {
			active++
			if l.Path != "/admin/revenue" {
				t.Errorf("active link = %s", l.Path)
			}
		}
	}
	if active != 1 {
		t.Errorf("%d active links, want 1", active)
	}
	if v.LogoutPath == "" || v.User != "An" {
		t.Errorf("shell = %+v", v)
	}
}

func TestNavLinksHideForbiddenRoutes(t *testing.T) {
	has := func(links []NavLink, p string) bool {
		for _, l := range links {
			if l.Path == p {
				return true
			}
		}
		return false
	}

	guest := NavLinks(routes.ShellMain, "/", nil)
	if has(guest, "/order-history") || has(guest, "/account") {
		t.Errorf("guest sees restricted links: %v", guest)
	}
	if !has(guest, "/products") {
		t.Errorf("guest misses public links: %v", guest)
	}

	customer := NavLinks(routes.ShellMain, "/", &models.Principal{ID: "c", Role: models.RoleCustomer})
	if !has(customer, "/order-history") || !has(customer, "/account") {
		t.Errorf("customer misses links: %v", customer)
	}

	staff := NavLinks(routes.ShellMain, "/", &models.Principal{ID: "s", Role: models.RoleStaff})
	if has(staff, "/order-history") {
		t.Errorf("staff sees customer-only link: %v", staff)
	}

	if NavLinks(routes.ShellNone, "/login", nil) != nil {
		t.Error("bare shell has links")
	}
}
