// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package shopapi

import (
	"context"
	"net/http"

	"github.com/tomtom215/pawshop/internal/models"
)

// LoginRequest is the login form.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// RegisterRequest is the registration form.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,min=8,max=15"`
}

// ProfileUpdate is the account screen form.
type ProfileUpdate struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,min=8,max=15"`
	Address string `json:"address,omitempty" validate:"max=300"`
}

// AuthClient wraps /auth/*.
type AuthClient struct {
	gw Doer
}

// Login exchanges credentials for a bearer token and principal.
func (c *AuthClient) Login(ctx context.Context, req LoginRequest) (models.AuthResult, error) {
	return send[models.AuthResult](ctx, c.gw, http.MethodPost, "/auth/login", req)
}

// Register creates a customer account and signs it in.
func (c *AuthClient) Register(ctx context.Context, req RegisterRequest) (models.AuthResult, error) {
	return send[models.AuthResult](ctx, c.gw, http.MethodPost, "/auth/register", req)
}

// Profile returns the principal the credential belongs to.
func (c *AuthClient) Profile(ctx context.Context) (models.Principal, error) {
	return get[models.Principal](ctx, c.gw, "/auth/profile", nil)
}

// UpdateProfile changes the caller's own profile.
func (c *AuthClient) UpdateProfile(ctx context.Context, req ProfileUpdate) (models.Principal, error) {
	return send[models.Principal](ctx, c.gw, http.MethodPut, "/auth/profile", req)
}
