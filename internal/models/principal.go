// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

// Package models defines the shapes exchanged with the Pawshop REST API and
// held in the session and application state stores.
//
// Everything except Principal is a transient cache of server-owned data.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Role is the closed set of roles a principal can hold.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// ErrUnknownRole is returned by ParseRole for anything outside the closed set.
var ErrUnknownRole = errors.New("unknown role")

// AllRoles lists every role in display order.
func AllRoles() []Role {
	return []Role{RoleCustomer, RoleStaff, RoleAdmin}
}

// ParseRole converts a wire value to a Role. Matching is exact.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleStaff, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Valid reports whether r is one of the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleStaff, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) String() string { return string(r) }

// Roles is a declared role set, as attached to a route.
type Roles []Role

// Contains reports exact membership of r.
func (rs Roles) Contains(r Role) bool {
	for _, candidate := range rs {
		if candidate == r {
			return true
		}
	}
	return false
}

func (rs Roles) String() string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = string(r)
	}
	return strings.Join(parts, ",")
}

// Principal is the authenticated identity held for the current session.
type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  Role   `json:"role"`
}

// ErrInvalidPrincipal is returned when a principal lacks an id or a known role.
var ErrInvalidPrincipal = errors.New("invalid principal")

// Validate checks that the principal is well-formed.
func (p Principal) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidPrincipal)
	}
	if !p.Role.Valid() {
		return fmt.Errorf("%w: role %q", ErrInvalidPrincipal, p.Role)
	}
	return nil
}

// AuthResult is the body returned by login and registration.
type AuthResult struct {
	Token string    `json:"token"`
	User  Principal `json:"user"`
}
