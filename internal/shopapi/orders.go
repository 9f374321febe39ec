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

const ordersPath = "/api/orders"

// OrdersClient wraps /api/orders*.
type OrdersClient struct {
	gw Doer
}

// Checkout places a direct order.
func (c *OrdersClient) Checkout(ctx context.Context, req models.CheckoutRequest) (models.Order, error) {
	return send[models.Order](ctx, c.gw, http.MethodPost, ordersPath, req)
}

// Mine returns the caller's own orders.
func (c *OrdersClient) Mine(ctx context.Context, q models.Query) ([]models.Order, error) {
	return get[[]models.Order](ctx, c.gw, ordersPath+"/my-orders", q)
}

// List returns all orders (staff and admin).
func (c *OrdersClient) List(ctx context.Context, q models.Query) ([]models.Order, error) {
	return get[[]models.Order](ctx, c.gw, ordersPath, q)
}

// Get returns one order.
func (c *OrdersClient) Get(ctx context.Context, id string) (models.Order, error) {
	return get[models.Order](ctx, c.gw, idPath(ordersPath, id), nil)
}

// UpdateStatus moves an order to status.
func (c *OrdersClient) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error) {
	return send[models.Order](ctx, c.gw, http.MethodPatch, idPath(ordersPath, id, "status"), models.StatusUpdate{Status: status})
}
