// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package shopapi

import (
	"context"
	"net/http"

	"github.com/tomtom215/pawshop/internal/gateway"
	"github.com/tomtom215/pawshop/internal/models"
)

const expensesPath = "/api/expenses"

// ExpensesClient wraps /api/expenses*. Active and hidden expenses come
// from separate endpoints.
type ExpensesClient struct {
	gw Doer
}

// List returns active expenses.
func (c *ExpensesClient) List(ctx context.Context, q models.Query) ([]models.Expense, error) {
	return get[[]models.Expense](ctx, c.gw, expensesPath, q)
}

// Hidden returns soft-hidden expenses.
func (c *ExpensesClient) Hidden(ctx context.Context, q models.Query) ([]models.Expense, error) {
	return get[[]models.Expense](ctx, c.gw, expensesPath+"/hidden", q)
}

// Get returns one expense.
func (c *ExpensesClient) Get(ctx context.Context, id string) (models.Expense, error) {
	return get[models.Expense](ctx, c.gw, idPath(expensesPath, id), nil)
}

// Create records an expense.
func (c *ExpensesClient) Create(ctx context.Context, in models.ExpenseInput) (models.Expense, error) {
	return send[models.Expense](ctx, c.gw, http.MethodPost, expensesPath, in)
}

// Update replaces an expense.
func (c *ExpensesClient) Update(ctx context.Context, id string, in models.ExpenseInput) (models.Expense, error) {
	return send[models.Expense](ctx, c.gw, http.MethodPut, idPath(expensesPath, id), in)
}

// Delete removes an expense permanently.
func (c *ExpensesClient) Delete(ctx context.Context, id string) error {
	return c.gw.Do(ctx, gateway.Request{Method: http.MethodDelete, Path: idPath(expensesPath, id)}, nil)
}

// Hide soft-hides an expense.
func (c *ExpensesClient) Hide(ctx context.Context, id string) (models.Expense, error) {
	return send[models.Expense](ctx, c.gw, http.MethodPatch, idPath(expensesPath, id, "hide"), nil)
}

// Restore reinstates a hidden expense.
func (c *ExpensesClient) Restore(ctx context.Context, id string) (models.Expense, error) {
	return send[models.Expense](ctx, c.gw, http.MethodPatch, idPath(expensesPath, id, "restore"), nil)
}
