// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package store

import (
	"github.com/tomtom215/pawshop/internal/models"
)

// Key names one slice of the state.
type Key string

const (
	KeyProducts       Key = "products.list"
	KeyFeatured       Key = "products.featured"
	KeyHiddenProducts Key = "products.hidden"
	KeyProductDetail  Key = "products.detail"
	KeyMyOrders       Key = "orders.mine"
	KeyAllOrders      Key = "orders.all"
	KeyOrderDetail    Key = "orders.detail"
	KeyDashboard      Key = "reports.dashboard"
	KeyInventory      Key = "reports.inventory"
	KeyExport         Key = "reports.export"
	KeyRevenue        Key = "reports.revenue"
	KeyExpenseReport  Key = "reports.expense"
	KeyExpenses       Key = "expenses.active"
	KeyHiddenExpenses Key = "expenses.hidden"
	KeyExpenseDetail  Key = "expenses.detail"
	KeyProfile        Key = "account.profile"
)

// Keys lists every slice key.
func Keys() []Key {
	return []Key{
		KeyProducts, KeyFeatured, KeyHiddenProducts, KeyProductDetail,
		KeyMyOrders, KeyAllOrders, KeyOrderDetail,
		KeyDashboard, KeyInventory, KeyExport, KeyRevenue, KeyExpenseReport,
		KeyExpenses, KeyHiddenExpenses, KeyExpenseDetail,
		KeyProfile,
	}
}

// ErrorInfo is what a failed call leaves in a slice.
type ErrorInfo struct {
	Kind    string `json:"kind"`
	Status  int    `json:"status,omitempty"`
	Message string `json:"message"`
}

// Slice is one region of the state: the last data received plus the
// loading and error flags of the calls that feed it.
//
// issued and applied are the per-slice request sequence numbers. A
// resolution at or below applied is stale and ignored.
type Slice[T any] struct {
	Data    T          `json:"data"`
	Loading bool       `json:"loading"`
	Error   *ErrorInfo `json:"error"`
	Loaded  bool       `json:"loaded"`

	issued  uint64
	applied uint64
}

// Seq returns the last issued and last applied sequence numbers.
func (s Slice[T]) Seq() (issued, applied uint64) {
	return s.issued, s.applied
}

// sliceOps is the type-agnostic view of a *Slice[T] the reducer uses.
type sliceOps interface {
	start(seq uint64)
	stale(seq uint64) bool
	succeed(seq uint64, payload any) bool
	fail(seq uint64, info ErrorInfo)
	setError(info *ErrorInfo)
	reset()
}

func (s *Slice[T]) start(seq uint64) {
	if seq > s.issued {
		s.issued = seq
	}
	s.Loading = true
}

// stale reports whether seq was issued before the last applied resolution
// (or before the last reset).
func (s *Slice[T]) stale(seq uint64) bool {
	return seq <= s.applied
}

// succeed replaces Data and clears Error. It reports false (and leaves
// the slice untouched) for a payload of the wrong type.
func (s *Slice[T]) succeed(seq uint64, payload any) bool {
	data, ok := payload.(T)
	if !ok {
		return false
	}
	s.Data = data
	s.Error = nil
	s.Loaded = true
	s.resolve(seq)
	return true
}

// fail keeps Data and records the error.
func (s *Slice[T]) fail(seq uint64, info ErrorInfo) {
	e := info
	s.Error = &e
	s.resolve(seq)
}

func (s *Slice[T]) resolve(seq uint64) {
	if seq > s.applied {
		s.applied = seq
	}
	s.Loading = s.applied < s.issued
}

func (s *Slice[T]) setError(info *ErrorInfo) {
	if info == nil {
		s.Error = nil
		return
	}
	e := *info
	s.Error = &e
}

// reset empties the slice. Everything issued so far becomes stale.
func (s *Slice[T]) reset() {
	var zero T
	s.Data = zero
	s.Error = nil
	s.Loading = false
	s.Loaded = false
	s.applied = s.issued
}

// ProductsState holds catalog data.
type ProductsState struct {
	List     Slice[models.ProductPage] `json:"list"`
	Featured Slice[[]models.Product]   `json:"featured"`
	Hidden   Slice[[]models.Product]   `json:"hidden"`
	Detail   Slice[models.Product]     `json:"detail"`
}

// OrdersState holds order data.
type OrdersState struct {
	Mine       Slice[[]models.Order] `json:"mine"`
	All        Slice[[]models.Order] `json:"all"`
	Detail     Slice[models.Order]   `json:"detail"`
	LastPlaced *models.Order         `json:"lastPlaced,omitempty"`
}

// ReportsState holds the opaque report payloads.
type ReportsState struct {
	Dashboard Slice[models.Report] `json:"dashboard"`
	Inventory Slice[models.Report] `json:"inventory"`
	Export    Slice[models.Report] `json:"export"`
	Revenue   Slice[models.Report] `json:"revenue"`
	Expense   Slice[models.Report] `json:"expense"`
}

// ExpensesState holds the two expense collections the API serves separately.
type ExpensesState struct {
	Active Slice[[]models.Expense] `json:"active"`
	Hidden Slice[[]models.Expense] `json:"hidden"`
	Detail Slice[models.Expense]   `json:"detail"`
}

// AccountState holds the signed-in user's profile.
type AccountState struct {
	Profile Slice[models.Principal] `json:"profile"`
}

// State is the whole application state. Values are treated as immutable:
// the reducer copies before it changes anything.
type State struct {
	Version  uint64        `json:"version"`
	Products ProductsState `json:"products"`
	Orders   OrdersState   `json:"orders"`
	Reports  ReportsState  `json:"reports"`
	Expenses ExpensesState `json:"expenses"`
	Account  AccountState  `json:"account"`
}

// ops returns the slice for key, or nil for an unknown key.
func (s *State) ops(key Key) sliceOps {
	switch key {
	case KeyProducts:
		return &s.Products.List
	case KeyFeatured:
		return &s.Products.Featured
	case KeyHiddenProducts:
		return &s.Products.Hidden
	case KeyProductDetail:
		return &s.Products.Detail
	case KeyMyOrders:
		return &s.Orders.Mine
	case KeyAllOrders:
		return &s.Orders.All
	case KeyOrderDetail:
		return &s.Orders.Detail
	case KeyDashboard:
		return &s.Reports.Dashboard
	case KeyInventory:
		return &s.Reports.Inventory
	case KeyExport:
		return &s.Reports.Export
	case KeyRevenue:
		return &s.Reports.Revenue
	case KeyExpenseReport:
		return &s.Reports.Expense
	case KeyExpenses:
		return &s.Expenses.Active
	case KeyHiddenExpenses:
		return &s.Expenses.Hidden
	case KeyExpenseDetail:
		return &s.Expenses.Detail
	case KeyProfile:
		return &s.Account.Profile
	default:
		return nil
	}
}

// ErrorFor returns the error currently recorded on key's slice.
func (s State) ErrorFor(key Key) *ErrorInfo {
	switch key {
	case KeyProducts:
		return s.Products.List.Error
	case KeyFeatured:
		return s.Products.Featured.Error
	case KeyHiddenProducts:
		return s.Products.Hidden.Error
	case KeyProductDetail:
		return s.Products.Detail.Error
	case KeyMyOrders:
		return s.Orders.Mine.Error
	case KeyAllOrders:
		return s.Orders.All.Error
	case KeyOrderDetail:
		return s.Orders.Detail.Error
	case KeyDashboard:
		return s.Reports.Dashboard.Error
	case KeyInventory:
		return s.Reports.Inventory.Error
	case KeyExport:
		return s.Reports.Export.Error
	case KeyRevenue:
		return s.Reports.Revenue.Error
	case KeyExpenseReport:
		return s.Reports.Expense.Error
	case KeyExpenses:
		return s.Expenses.Active.Error
	case KeyHiddenExpenses:
		return s.Expenses.Hidden.Error
	case KeyExpenseDetail:
		return s.Expenses.Detail.Error
	case KeyProfile:
		return s.Account.Profile.Error
	default:
		return nil
	}
}
