// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package store

import "github.com/tomtom215/pawshop/internal/models"

// Action is anything the reducer understands.
type Action interface {
	// Name identifies the action in logs and metrics.
	Name() string
}

// FetchStarted marks a fetch for Key as in flight with sequence Seq.
type FetchStarted struct {
	Key Key
	Seq uint64
}

// FetchSucceeded replaces Key's data with Payload, unless Seq is stale.
type FetchSucceeded struct {
	Key     Key
	Seq     uint64
	Payload any
}

// FetchFailed records Err on Key, keeping its data, unless Seq is stale.
type FetchFailed struct {
	Key Key
	Seq uint64
	Err ErrorInfo
}

// MutationFailed records Err on the slice a write was aimed at.
type MutationFailed struct {
	Key Key
	Err ErrorInfo
}

// ErrorDismissed clears the error banner on Key.
type ErrorDismissed struct {
	Key Key
}

// ProductCreated appends a product to the list.
// Precondition: no product with the same id is cached. Delta: +1.
type ProductCreated struct {
	Product models.Product
}

// ProductUpdated replaces a cached product wherever it appears.
// Precondition: the id is cached. Delta: 0.
type ProductUpdated struct {
	Product models.Product
}

// ProductDeleted removes a product from every cached collection.
// Precondition: the id is cached. Delta: -1.
type ProductDeleted struct {
	ID string
}

// ProductHidden moves a product from the list to the hidden collection.
// Delta: list -1, hidden +1 when the hidden collection is loaded.
type ProductHidden struct {
	Product models.Product
}

// ProductRestored removes a product from the hidden collection. It
// reappears in the list on the next list fetch. Delta: hidden -1.
type ProductRestored struct {
	Product models.Product
}

// OrderPlaced prepends a new order to the caller's orders. Delta: +1.
type OrderPlaced struct {
	Order models.Order
}

// OrderStatusChanged replaces a cached order. Delta: 0.
type OrderStatusChanged struct {
	Order models.Order
}

// ExpenseCreated appends to the active collection.
// Precondition: id not cached. Delta: +1.
type ExpenseCreated struct {
	Expense models.Expense
}

// ExpenseUpdated replaces a cached expense in either collection. Delta: 0.
type ExpenseUpdated struct {
	Expense models.Expense
}

// ExpenseDeleted removes an expense from both collections. Delta: -1.
type ExpenseDeleted struct {
	ID string
}

// ExpenseHidden moves an expense from the active to the hidden collection.
type ExpenseHidden struct {
	Expense models.Expense
}

// ExpenseRestored moves an expense from the hidden to the active collection.
type ExpenseRestored struct {
	Expense models.Expense
}

// ProfileUpdated replaces the cached profile.
type ProfileUpdated struct {
	Principal models.Principal
}

// Reset empties every slice. Dispatched on logout and session expiry.
type Reset struct{}

func (FetchStarted) Name() string       { return "fetch/started" }
func (FetchSucceeded) Name() string     { return "fetch/succeeded" }
func (FetchFailed) Name() string        { return "fetch/failed" }
func (MutationFailed) Name() string     { return "mutation/failed" }
func (ErrorDismissed) Name() string     { return "error/dismissed" }
func (ProductCreated) Name() string     { return "products/created" }
func (ProductUpdated) Name() string     { return "products/updated" }
func (ProductDeleted) Name() string     { return "products/deleted" }
func (ProductHidden) Name() string      { return "products/hidden" }
func (ProductRestored) Name() string    { return "products/restored" }
func (OrderPlaced) Name() string        { return "orders/placed" }
func (OrderStatusChanged) Name() string { return "orders/status-changed" }
func (ExpenseCreated) Name() string     { return "expenses/created" }
func (ExpenseUpdated) Name() string     { return "expenses/updated" }
func (ExpenseDeleted) Name() string     { return "expenses/deleted" }
func (ExpenseHidden) Name() string      { return "expenses/hidden" }
func (ExpenseRestored) Name() string    { return "expenses/restored" }
func (ProfileUpdated) Name() string     { return "account/profile-updated" }
func (Reset) Name() string              { return "reset" }
