// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package shopapi

import (
	"context"

	"github.com/tomtom215/pawshop/internal/models"
)

// InventoryClient wraps /api/inventory*.
type InventoryClient struct {
	gw Doer
}

// Inventory returns the stock report.
func (c *InventoryClient) Inventory(ctx context.Context, q models.Query) (models.Report, error) {
	return get[models.Report](ctx, c.gw, "/api/inventory", q)
}

// Export returns the export (goods issued) report.
func (c *InventoryClient) Export(ctx context.Context, q models.Query) (models.Report, error) {
	return get[models.Report](ctx, c.gw, "/api/inventory/export", q)
}

// ReportsClient wraps /api/reports*.
type ReportsClient struct {
	gw Doer
}

// Dashboard returns the admin dashboard aggregates.
func (c *ReportsClient) Dashboard(ctx context.Context, q models.Query) (models.Report, error) {
	return get[models.Report](ctx, c.gw, "/api/reports/dashboard", q)
}

// Revenue returns the revenue report.
func (c *ReportsClient) Revenue(ctx context.Context, q models.Query) (models.Report, error) {
	return get[models.Report](ctx, c.gw, "/api/reports/revenue", q)
}

// Expense returns the expense report.
func (c *ReportsClient) Expense(ctx context.Context, q models.Query) (models.Report, error) {
	return get[models.Report](ctx, c.gw, "/api/reports/expenses", q)
}
