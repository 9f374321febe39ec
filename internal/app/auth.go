// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/pawshop/internal/authz"
	"github.com/tomtom215/pawshop/internal/logging"
	"github.com/tomtom215/pawshop/internal/models"
	"github.com/tomtom215/pawshop/internal/routes"
	"github.com/tomtom215/pawshop/internal/shopapi"
	"github.com/tomtom215/pawshop/internal/validation"
)

// Login signs in and returns where to go next: from, else the location
// remembered by the last login redirect, else the dashboard. Form errors
// are returned before any network call.
func (a *App) Login(ctx context.Context, req shopapi.LoginRequest, from string) (string, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validation.Check(req); err != nil {
		return "", err
	}
	res, err := a.api.Auth.Login(ctx, req)
	if err != nil {
		return "", a.check(ctx, err)
	}
	return a.signIn(ctx, res, from)
}

// Register creates a customer account and signs it in.
func (a *App) Register(ctx context.Context, req shopapi.RegisterRequest, from string) (string, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Check(req); err != nil {
		return "", err
	}
	res, err := a.api.Auth.Register(ctx, req)
	if err != nil {
		return "", a.check(ctx, err)
	}
	return a.signIn(ctx, res, from)
}

func (a *App) signIn(ctx context.Context, res models.AuthResult, from string) (string, error) {
	if err := a.Sessions.Persist(ctx, res.Token, res.User); err != nil {
		return "", fmt.Errorf("persist session: %w", err)
	}
	if err := a.Sessions.Login(res.User); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	// State cached for a previous principal must not leak into this one.
	a.Store.Reset()

	if from == "" {
		from = a.takeFrom()
	}
	target := authz.LoginTarget(from)
	logging.Ctx(ctx).Info().Str("role", res.User.Role.String()).Str("target", target).Msg("Signed in")
	return target, nil
}

// Logout clears the session and the state, then navigates to the login screen.
func (a *App) Logout(ctx context.Context) error {
	err := a.Sessions.Logout(ctx)
	a.Store.Reset()
	a.navigate(ctx, routes.PathLogin)
	return err
}

// Whoami returns the current principal.
func (a *App) Whoami() (models.Principal, bool) {
	return a.Sessions.Principal()
}

func (a *App) rememberFrom(from string) {
	a.navMu.Lock()
	a.from = from
	a.navMu.Unlock()
}

func (a *App) takeFrom() string {
	a.navMu.Lock()
	defer a.navMu.Unlock()
	from := a.from
	a.from = ""
	return from
}
