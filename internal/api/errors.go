// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/pawshop/internal/app"
	"github.com/tomtom215/pawshop/internal/gateway"
	"github.com/tomtom215/pawshop/internal/logging"
	"github.com/tomtom215/pawshop/internal/validation"
	"github.com/tomtom215/pawshop/internal/view"
)

// respondError maps err to a status and error code. Messages are the ones
// the user sees: validation and stock messages as is, gateway failures by
// the server's message or the per-kind fallback.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)

	var verr *validation.RequestValidationError
	var gerr *gateway.Error
	switch {
	case errors.As(err, &verr):
		rw.ValidationError("Please correct the highlighted fields", verr.FieldMessages())
	case errors.Is(err, view.ErrOutOfStock), errors.Is(err, view.ErrInsufficientStock),
		errors.Is(err, view.ErrInvalidQuantity):
		rw.Error(http.StatusConflict, ErrCodeStock, err.Error())
	case errors.Is(err, app.ErrUnknownAction):
		rw.NotFound(err.Error())
	case errors.Is(err, app.ErrBadRequest):
		rw.BadRequest(err.Error())
	case errors.Is(err, app.ErrLoginRequired):
		rw.Error(http.StatusUnauthorized, ErrCodeUnauthorized, "Please sign in to continue")
	case errors.Is(err, app.ErrForbidden):
		rw.Error(http.StatusForbidden, ErrCodeForbidden, "You do not have access to this action")
	case errors.As(err, &gerr):
		status, code := gatewayStatus(gerr)
		rw.Error(status, code, gateway.MessageOf(err))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		rw.Error(http.StatusGatewayTimeout, ErrCodeUpstreamTimeout, "The request timed out")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Unhandled view host error")
		rw.Error(http.StatusInternalServerError, ErrCodeInternalError, "Something went wrong, please try again")
	}
}

func gatewayStatus(err *gateway.Error) (int, string) {
	switch err.Kind {
	case gateway.KindAuthExpired:
		return http.StatusUnauthorized, ErrCodeSessionExpired
	case gateway.KindRejected:
		if err.Status >= 400 && err.Status < 500 {
			return err.Status, ErrCodeRejected
		}
		return http.StatusBadRequest, ErrCodeRejected
	case gateway.KindTimeout:
		return http.StatusGatewayTimeout, ErrCodeUpstreamTimeout
	case gateway.KindNetwork, gateway.KindUnavailable:
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable
	default:
		return http.StatusBadGateway, ErrCodeUpstreamFailed
	}
}
