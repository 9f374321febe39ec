// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package api

import (
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pawshop/internal/authz"
	"github.com/tomtom215/pawshop/internal/gateway"
	"github.com/tomtom215/pawshop/internal/models"
	"github.com/tomtom215/pawshop/internal/routes"
	"github.com/tomtom215/pawshop/internal/shopapi"
	"github.com/tomtom215/pawshop/internal/view"
)

const maxFormBytes = 64 << 10

// SessionView describes the signed-in principal to the renderer.
type SessionView struct {
	Restored  bool              `json:"restored"`
	Principal *models.Principal `json:"principal"`
	Shell     routes.Shell      `json:"shell,omitempty"`
	Home      string            `json:"home,omitempty"`
}

// SignInResult is returned by login and register.
type SignInResult struct {
	Redirect string      `json:"redirect"`
	Session  SessionView `json:"session"`
}

type loginBody struct {
	shopapi.LoginRequest
	From string `json:"from"`
}

type registerBody struct {
	shopapi.RegisterRequest
	From string `json:"from"`
}

func (h *Handler) sessionView() SessionView {
	snap := h.app.Sessions.Snapshot()
	sv := SessionView{Restored: snap.Restored, Principal: snap.Principal}
	if snap.Principal != nil {
		sv.Shell = view.ShellForRole(snap.Principal.Role)
		sv.Home = authz.HomeFor(snap.Principal.Role)
	}
	return sv
}

// decodeForm reads a small JSON body into v.
func decodeForm(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxFormBytes))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

// respondSignInError reports a 401 from the sign-in call as bad
// credentials, not as an expired session.
func respondSignInError(w http.ResponseWriter, r *http.Request, err error) {
	if gateway.KindOf(err) == gateway.KindAuthExpired {
		WriteError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, gateway.MessageOf(err))
		return
	}
	respondError(w, r, err)
}

// Session returns the current principal.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, h.sessionView())
}

// Login signs in. Form errors come back as VALIDATION_FAILED without a
// network call; a rejected credential carries the server's message.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if err := decodeForm(r, &body); err != nil {
		NewResponseWriter(w, r).BadRequest("Invalid login form")
		return
	}
	redirect, err := h.app.Login(r.Context(), body.LoginRequest, body.From)
	if err != nil {
		respondSignInError(w, r, err)
		return
	}
	WriteSuccess(w, r, SignInResult{Redirect: redirect, Session: h.sessionView()})
}

// Register creates a customer account and signs it in.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body registerBody
	if err := decodeForm(r, &body); err != nil {
		NewResponseWriter(w, r).BadRequest("Invalid registration form")
		return
	}
	redirect, err := h.app.Register(r.Context(), body.RegisterRequest, body.From)
	if err != nil {
		respondSignInError(w, r, err)
		return
	}
	WriteSuccess(w, r, SignInResult{Redirect: redirect, Session: h.sessionView()})
}

// Logout signs out and wipes the state.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Logout(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	WriteSuccess(w, r, SignInResult{Redirect: routes.PathLogin, Session: h.sessionView()})
}
