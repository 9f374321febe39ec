// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

// Package shopapi provides typed clients for the Pawshop REST API, one
// method per endpoint. The clients hold no business logic: they assemble
// the path and payload, call the gateway, and return the decoded body or
// the gateway's error unchanged.
package shopapi

import (
	"context"
	"net/url"

	"github.com/tomtom215/pawshop/internal/gateway"
	"github.com/tomtom215/pawshop/internal/models"
)

// Doer is the subset of the gateway the clients use.
type Doer interface {
	Do(ctx context.Context, req gateway.Request, out any) error
}

var _ Doer = (*gateway.Client)(nil)

// Services bundles every domain client over one gateway.
type Services struct {
	Auth      *AuthClient
	Products  *ProductsClient
	Orders    *OrdersClient
	Inventory *InventoryClient
	Reports   *ReportsClient
	Expenses  *ExpensesClient
}

// NewServices builds all clients over gw.
func NewServices(gw Doer) *Services {
	return &Services{
		Auth:      &AuthClient{gw: gw},
		Products:  &ProductsClient{gw: gw},
		Orders:    &OrdersClient{gw: gw},
		Inventory: &InventoryClient{gw: gw},
		Reports:   &ReportsClient{gw: gw},
		Expenses:  &ExpensesClient{gw: gw},
	}
}

// idPath joins a collection path and an escaped id, with optional suffix.
func idPath(base, id string, suffix ...string) string {
	p := base + "/" + url.PathEscape(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

func get[T any](ctx context.Context, gw Doer, path string, q models.Query) (T, error) {
	var out T
	err := gw.Do(ctx, gateway.Request{Method: "GET", Path: path, Query: q}, &out)
	return out, err
}

func send[T any](ctx context.Context, gw Doer, method, path string, body any) (T, error) {
	var out T
	err := gw.Do(ctx, gateway.Request{Method: method, Path: path, Body: body}, &out)
	return out, err
}
