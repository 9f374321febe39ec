// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

// Package validation checks forms locally before anything is dispatched.
//
// It wraps go-playground/validator with a singleton instance, reports
// fields by their JSON names and translates failures into messages that
// can be shown inline next to the form field.
//
// A form that fails validation never reaches the network:
//
//	req := shopapi.LoginRequest{Email: email, Password: password}
//	if err := validation.ValidateStruct(&req); err != nil {
//	    return err // *RequestValidationError, one entry per field
//	}
//	result, err := services.Auth.Login(ctx, req)
//
// Custom tags: role, category (open lowercase slug) and order_status.
package validation
