// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/pawshop/internal/app"
	"github.com/tomtom215/pawshop/internal/shopapi"
)

const (
	maxActionBytes = 1 << 20
	maxImageBytes  = 10 << 20

	// actionRetry re-mounts the screen at a location after dismissing its
	// errors; it is what an error banner's retry button sends.
	actionRetry = "retry"
)

// ActionResult reports a dispatched action. Done is false when the caller
// did not wait; the outcome then arrives as a state change.
type ActionResult struct {
	Action string    `json:"action"`
	Done   bool      `json:"done"`
	Value  any       `json:"value,omitempty"`
	Page   *app.Page `json:"page,omitempty"`
}

type retryBody struct {
	Path string `json:"path"`
}

// ListActions returns the action names a renderer may dispatch.
func (h *Handler) ListActions(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, append(app.Actions(), actionRetry))
}

// Dispatch starts the named action. The body is the action's JSON form,
// or a multipart form with the JSON in "body" and an optional "image"
// file for product create and update.
func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == actionRetry {
		h.retry(w, r)
		return
	}

	req, err := readAction(r, name)
	if err != nil {
		respondError(w, r, err)
		return
	}

	pending, err := h.app.Dispatch(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !waitRequested(r) {
		NewResponseWriter(w, r).Accepted(ActionResult{Action: pending.Action})
		return
	}
	if err := pending.Wait(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	WriteSuccess(w, r, ActionResult{Action: pending.Action, Done: true, Value: pending.Value()})
}

func (h *Handler) retry(w http.ResponseWriter, r *http.Request) {
	var body retryBody
	if err := decodeForm(r, &body); err != nil || body.Path == "" {
		NewResponseWriter(w, r).BadRequest("retry needs the location to reload")
		return
	}
	page, err := h.app.Retry(r.Context(), body.Path)
	if err != nil {
		respondError(w, r, err)
		return
	}
	WriteSuccess(w, r, ActionResult{Action: actionRetry, Done: true, Page: &page})
}

// readAction builds the action request from either body encoding. The
// image is read into memory: the upload outlives the request.
func readAction(r *http.Request, name string) (app.ActionRequest, error) {
	req := app.ActionRequest{Name: name}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if !strings.HasPrefix(mediaType, "multipart/") {
		body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxActionBytes))
		if err != nil {
			return req, fmt.Errorf("%w: %v", app.ErrBadRequest, err)
		}
		req.Body = body
		return req, nil
	}

	r.Body = http.MaxBytesReader(nil, r.Body, maxImageBytes+maxActionBytes)
	if err := r.ParseMultipartForm(maxActionBytes); err != nil {
		return req, fmt.Errorf("%w: %v", app.ErrBadRequest, err)
	}
	req.Body = []byte(r.FormValue("body"))

	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return req, nil
	case err != nil:
		return req, fmt.Errorf("%w: %v", app.ErrBadRequest, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		return req, fmt.Errorf("%w: %v", app.ErrBadRequest, err)
	}
	if len(data) > maxImageBytes {
		return req, fmt.Errorf("%w: image larger than %d bytes", app.ErrBadRequest, maxImageBytes)
	}
	req.Image = &shopapi.Upload{Filename: header.Filename, Content: bytes.NewReader(data)}
	return req, nil
}
