// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package store

import (
	"context"

	"github.com/tomtom215/pawshop/internal/models"
	"github.com/tomtom215/pawshop/internal/shopapi"
)

// ProductsAPI is the product service the store calls.
type ProductsAPI interface {
	List(ctx context.Context, q models.Query) (models.ProductPage, error)
	Featured(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (models.Product, error)
	Create(ctx context.Context, in shopapi.ProductInput) (models.Product, error)
	Update(ctx context.Context, id string, in shopapi.ProductInput) (models.Product, error)
	Delete(ctx context.Context, id string) error
	Hidden(ctx context.Context) ([]models.Product, error)
	Hide(ctx context.Context, id string) (models.Product, error)
	Restore(ctx context.Context, id string) (models.Product, error)
}

// OrdersAPI is the order service the store calls.
type OrdersAPI interface {
	Checkout(ctx context.Context, req models.CheckoutRequest) (models.Order, error)
	Mine(ctx context.Context, q models.Query) ([]models.Order, error)
	List(ctx context.Context, q models.Query) ([]models.Order, error)
	Get(ctx context.Context, id string) (models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error)
}

// InventoryAPI is the inventory service the store calls.
type InventoryAPI interface {
	Inventory(ctx context.Context, q models.Query) (models.Report, error)
	Export(ctx context.Context, q models.Query) (models.Report, error)
}

// ReportsAPI is the report service the store calls.
type ReportsAPI interface {
	Dashboard(ctx context.Context, q models.Query) (models.Report, error)
	Revenue(ctx context.Context, q models.Query) (models.Report, error)
	Expense(ctx context.Context, q models.Query) (models.Report, error)
}

// ExpensesAPI is the expense service the store calls.
type ExpensesAPI interface {
	List(ctx context.Context, q models.Query) ([]models.Expense, error)
	Hidden(ctx context.Context, q models.Query) ([]models.Expense, error)
	Get(ctx context.Context, id string) (models.Expense, error)
	Create(ctx context.Context, in models.ExpenseInput) (models.Expense, error)
	Update(ctx context.Context, id string, in models.ExpenseInput) (models.Expense, error)
	Delete(ctx context.Context, id string) error
	Hide(ctx context.Context, id string) (models.Expense, error)
	Restore(ctx context.Context, id string) (models.Expense, error)
}

// AccountAPI is the profile part of the auth service.
type AccountAPI interface {
	Profile(ctx context.Context) (models.Principal, error)
	UpdateProfile(ctx context.Context, req shopapi.ProfileUpdate) (models.Principal, error)
}

// API groups the services the action creators call.
type API struct {
	Products  ProductsAPI
	Orders    OrdersAPI
	Inventory InventoryAPI
	Reports   ReportsAPI
	Expenses  ExpensesAPI
	Account   AccountAPI
}

// FromServices adapts the concrete service clients.
func FromServices(s *shopapi.Services) API {
	return API{
		Products:  s.Products,
		Orders:    s.Orders,
		Inventory: s.Inventory,
		Reports:   s.Reports,
		Expenses:  s.Expenses,
		Account:   s.Auth,
	}
}
