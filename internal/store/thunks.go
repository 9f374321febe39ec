// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package store

import (
	"context"
	"errors"

	"github.com/tomtom215/pawshop/internal/gateway"
	"github.com/tomtom215/pawshop/internal/logging"
	"github.com/tomtom215/pawshop/internal/metrics"
	"github.com/tomtom215/pawshop/internal/models"
	"github.com/tomtom215/pawshop/internal/shopapi"
)

// ErrUnavailable is returned when the service a creator needs was not configured.
var ErrUnavailable = errors.New("store: service not configured")

// ErrorInfoFrom converts a call error into what a slice records.
func ErrorInfoFrom(err error) ErrorInfo {
	kind := gateway.KindOf(err)
	info := ErrorInfo{Status: gateway.StatusOf(err), Message: gateway.MessageOf(err)}
	if kind != 0 {
		info.Kind = kind.String()
	} else {
		info.Kind = "client"
	}
	return info
}

// fetch runs call in the background and reduces its result into key.
// The call is detached from ctx cancellation: like an unmounted screen,
// a caller that goes away still lets the response land in the store.
func fetch[T any](s *Store, ctx context.Context, key Key, call func(context.Context) (T, error)) *Pending {
	action := "fetch/" + string(key)
	if call == nil {
		return resolved(action, ErrUnavailable)
	}

	seq := s.startFetch(key)
	p := newPending(action)
	callCtx := context.WithoutCancel(ctx)

	s.wg.Add(1)
	metrics.TrackInflight(true)
	go func() {
		defer s.wg.Done()
		defer metrics.TrackInflight(false)

		data, err := call(callCtx)
		if err != nil {
			s.Dispatch(FetchFailed{Key: key, Seq: seq, Err: ErrorInfoFrom(err)})
			logging.Ctx(callCtx).Warn().Err(err).Str("slice", string(key)).Msg("Fetch failed")
			s.report(callCtx, err)
			p.finish(nil, err)
			return
		}
		s.Dispatch(FetchSucceeded{Key: key, Seq: seq, Payload: data})
		p.finish(data, nil)
	}()
	return p
}

// mutate runs call in the background; on success the action it returns is
// dispatched, on failure the error is recorded on key.
func mutate[T any](s *Store, ctx context.Context, key Key, name string, call func(context.Context) (T, error), onSuccess func(T) Action) *Pending {
	p := newPending(name)
	callCtx := context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		result, err := call(callCtx)
		if err != nil {
			s.Dispatch(MutationFailed{Key: key, Err: ErrorInfoFrom(err)})
			logging.Ctx(callCtx).Warn().Err(err).Str("action", name).Msg("Mutation failed")
			s.report(callCtx, err)
			p.finish(nil, err)
			return
		}
		s.Dispatch(onSuccess(result))
		p.finish(result, nil)
	}()
	return p
}

func (s *Store) report(ctx context.Context, err error) {
	if hook := s.errorHook(); hook != nil {
		hook(ctx, err)
	}
}

// DismissError clears the error banner on key.
func (s *Store) DismissError(key Key) {
	s.Dispatch(ErrorDismissed{Key: key})
}

// --- Products ---

// FetchProducts loads one page of the catalog.
func (s *Store) FetchProducts(ctx context.Context, q models.Query) *Pending {
	if s.api.Products == nil {
		return fetch[models.ProductPage](s, ctx, KeyProducts, nil)
	}
	q = q.Clone()
	return fetch(s, ctx, KeyProducts, func(ctx context.Context) (models.ProductPage, error) {
		return s.api.Products.List(ctx, q)
	})
}

// FetchFeatured loads the home page selection.
func (s *Store) FetchFeatured(ctx context.Context) *Pending {
	if s.api.Products == nil {
		return fetch[[]models.Product](s, ctx, KeyFeatured, nil)
	}
	return fetch(s, ctx, KeyFeatured, s.api.Products.Featured)
}

// FetchProduct loads one product into the detail slice.
func (s *Store) FetchProduct(ctx context.Context, id string) *Pending {
	if s.api.Products == nil {
		return fetch[models.Product](s, ctx, KeyProductDetail, nil)
	}
	return fetch(s, ctx, KeyProductDetail, func(ctx context.Context) (models.Product, error) {
		return s.api.Products.Get(ctx, id)
	})
}

// FetchHiddenProducts loads the hidden collection.
func (s *Store) FetchHiddenProducts(ctx context.Context) *Pending {
	if s.api.Products == nil {
		return fetch[[]models.Product](s, ctx, KeyHiddenProducts, nil)
	}
	return fetch(s, ctx, KeyHiddenProducts, s.api.Products.Hidden)
}

// CreateProduct adds a product and appends it to the cached list.
func (s *Store) CreateProduct(ctx context.Context, in shopapi.ProductInput) *Pending {
	if s.api.Products == nil {
		return resolved("products/create", ErrUnavailable)
	}
	return mutate(s, ctx, KeyProducts, "products/create",
		func(ctx context.Context) (models.Product, error) { return s.api.Products.Create(ctx, in) },
		func(p models.Product) Action { return ProductCreated{Product: p} })
}

// UpdateProduct edits a product and replaces the cached copy.
func (s *Store) UpdateProduct(ctx context.Context, id string, in shopapi.ProductInput) *Pending {
	if s.api.Products == nil {
		return resolved("products/update", ErrUnavailable)
	}
	return mutate(s, ctx, KeyProducts, "products/update",
		func(ctx context.Context) (models.Product, error) { return s.api.Products.Update(ctx, id, in) },
		func(p models.Product) Action {
			if p.ID == "" {
				p.ID = id
			}
			return ProductUpdated{Product: p}
		})
}

// DeleteProduct removes a product and filters it from the cache.
func (s *Store) DeleteProduct(ctx context.Context, id string) *Pending {
	if s.api.Products == nil {
		return resolved("products/delete", ErrUnavailable)
	}
	return mutate(s, ctx, KeyProducts, "products/delete",
		func(ctx context.Context) (string, error) { return id, s.api.Products.Delete(ctx, id) },
		func(id string) Action { return ProductDeleted{ID: id} })
}

// HideProduct soft-hides a product, moving it to the hidden collection.
func (s *Store) HideProduct(ctx context.Context, id string) *Pending {
	if s.api.Products == nil {
		return resolved("products/hide", ErrUnavailable)
	}
	return mutate(s, ctx, KeyProducts, "products/hide",
		func(ctx context.Context) (models.Product, error) { return s.api.Products.Hide(ctx, id) },
		func(p models.Product) Action { return ProductHidden{Product: s.cachedProduct(id, p)} })
}

// RestoreProduct reinstates a hidden product.
func (s *Store) RestoreProduct(ctx context.Context, id string) *Pending {
	if s.api.Products == nil {
		return resolved("products/restore", ErrUnavailable)
	}
	return mutate(s, ctx, KeyHiddenProducts, "products/restore",
		func(ctx context.Context) (models.Product, error) { return s.api.Products.Restore(ctx, id) },
		func(p models.Product) Action { return ProductRestored{Product: s.cachedProduct(id, p)} })
}

// cachedProduct prefers the server's copy and falls back to the cached
// one when the response carried no body.
func (s *Store) cachedProduct(id string, fromServer models.Product) models.Product {
	if fromServer.ID != "" {
		return fromServer
	}
	st := s.State()
	if i := models.IndexProduct(st.Products.List.Data.Products, id); i >= 0 {
		return st.Products.List.Data.Products[i]
	}
	if i := models.IndexProduct(st.Products.Hidden.Data, id); i >= 0 {
		return st.Products.Hidden.Data[i]
	}
	return models.Product{ID: id}
}

// --- Orders ---

// Checkout places an order and prepends it to the caller's orders.
func (s *Store) Checkout(ctx context.Context, req models.CheckoutRequest) *Pending {
	if s.api.Orders == nil {
		return resolved("orders/checkout", ErrUnavailable)
	}
	return mutate(s, ctx, KeyMyOrders, "orders/checkout",
		func(ctx context.Context) (models.Order, error) { return s.api.Orders.Checkout(ctx, req) },
		func(o models.Order) Action { return OrderPlaced{Order: o} })
}

// FetchMyOrders loads the caller's order history.
func (s *Store) FetchMyOrders(ctx context.Context, q models.Query) *Pending {
	if s.api.Orders == nil {
		return fetch[[]models.Order](s, ctx, KeyMyOrders, nil)
	}
	q = q.Clone()
	return fetch(s, ctx, KeyMyOrders, func(ctx context.Context) ([]models.Order, error) {
		return s.api.Orders.Mine(ctx, q)
	})
}

// FetchOrders loads every order (staff and admin).
func (s *Store) FetchOrders(ctx context.Context, q models.Query) *Pending {
	if s.api.Orders == nil {
		return fetch[[]models.Order](s, ctx, KeyAllOrders, nil)
	}
	q = q.Clone()
	return fetch(s, ctx, KeyAllOrders, func(ctx context.Context) ([]models.Order, error) {
		return s.api.Orders.List(ctx, q)
	})
}

// FetchOrder loads one order into the detail slice.
func (s *Store) FetchOrder(ctx context.Context, id string) *Pending {
	if s.api.Orders == nil {
		return fetch[models.Order](s, ctx, KeyOrderDetail, nil)
	}
	return fetch(s, ctx, KeyOrderDetail, func(ctx context.Context) (models.Order, error) {
		return s.api.Orders.Get(ctx, id)
	})
}

// UpdateOrderStatus changes an order's status and replaces the cached copy.
func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) *Pending {
	if s.api.Orders == nil {
		return resolved("orders/status", ErrUnavailable)
	}
	return mutate(s, ctx, KeyAllOrders, "orders/status",
		func(ctx context.Context) (models.Order, error) { return s.api.Orders.UpdateStatus(ctx, id, status) },
		func(o models.Order) Action {
			if o.ID == "" {
				o = s.cachedOrder(id)
				o.Status = status
			}
			return OrderStatusChanged{Order: o}
		})
}

func (s *Store) cachedOrder(id string) models.Order {
	st := s.State()
	if i := models.IndexOrder(st.Orders.All.Data, id); i >= 0 {
		return st.Orders.All.Data[i]
	}
	if i := models.IndexOrder(st.Orders.Mine.Data, id); i >= 0 {
		return st.Orders.Mine.Data[i]
	}
	return models.Order{ID: id}
}

// --- Reports ---

func (s *Store) fetchReport(ctx context.Context, key Key, call func(context.Context, models.Query) (models.Report, error), q models.Query) *Pending {
	if call == nil {
		return fetch[models.Report](s, ctx, key, nil)
	}
	q = q.Clone()
	return fetch(s, ctx, key, func(ctx context.Context) (models.Report, error) { return call(ctx, q) })
}

// FetchDashboard loads the dashboard aggregates.
func (s *Store) FetchDashboard(ctx context.Context, q models.Query) *Pending {
	if s.api.Reports == nil {
		return s.fetchReport(ctx, KeyDashboard, nil, q)
	}
	return s.fetchReport(ctx, KeyDashboard, s.api.Reports.Dashboard, q)
}

// FetchRevenue loads the revenue report.
func (s *Store) FetchRevenue(ctx context.Context, q models.Query) *Pending {
	if s.api.Reports == nil {
		return s.fetchReport(ctx, KeyRevenue, nil, q)
	}
	return s.fetchReport(ctx, KeyRevenue, s.api.Reports.Revenue, q)
}

// FetchExpenseReport loads the expense report.
func (s *Store) FetchExpenseReport(ctx context.Context, q models.Query) *Pending {
	if s.api.Reports == nil {
		return s.fetchReport(ctx, KeyExpenseReport, nil, q)
	}
	return s.fetchReport(ctx, KeyExpenseReport, s.api.Reports.Expense, q)
}

// FetchInventory loads the stock report.
func (s *Store) FetchInventory(ctx context.Context, q models.Query) *Pending {
	if s.api.Inventory == nil {
		return s.fetchReport(ctx, KeyInventory, nil, q)
	}
	return s.fetchReport(ctx, KeyInventory, s.api.Inventory.Inventory, q)
}

// FetchExport loads the export report.
func (s *Store) FetchExport(ctx context.Context, q models.Query) *Pending {
	if s.api.Inventory == nil {
		return s.fetchReport(ctx, KeyExport, nil, q)
	}
	return s.fetchReport(ctx, KeyExport, s.api.Inventory.Export, q)
}

// --- Expenses ---

// FetchExpenses loads the active collection.
func (s *Store) FetchExpenses(ctx context.Context, q models.Query) *Pending {
	if s.api.Expenses == nil {
		return fetch[[]models.Expense](s, ctx, KeyExpenses, nil)
	}
	q = q.Clone()
	return fetch(s, ctx, KeyExpenses, func(ctx context.Context) ([]models.Expense, error) {
		return s.api.Expenses.List(ctx, q)
	})
}

// FetchHiddenExpenses loads the hidden collection.
func (s *Store) FetchHiddenExpenses(ctx context.Context, q models.Query) *Pending {
	if s.api.Expenses == nil {
		return fetch[[]models.Expense](s, ctx, KeyHiddenExpenses, nil)
	}
	q = q.Clone()
	return fetch(s, ctx, KeyHiddenExpenses, func(ctx context.Context) ([]models.Expense, error) {
		list, err := s.api.Expenses.Hidden(ctx, q)
		for i := range list {
			list[i].Hidden = true
		}
		return list, err
	})
}

// FetchExpense loads one expense into the detail slice.
func (s *Store) FetchExpense(ctx context.Context, id string) *Pending {
	if s.api.Expenses == nil {
		return fetch[models.Expense](s, ctx, KeyExpenseDetail, nil)
	}
	return fetch(s, ctx, KeyExpenseDetail, func(ctx context.Context) (models.Expense, error) {
		return s.api.Expenses.Get(ctx, id)
	})
}

// CreateExpense records an expense and appends it to the active collection.
func (s *Store) CreateExpense(ctx context.Context, in models.ExpenseInput) *Pending {
	if s.api.Expenses == nil {
		return resolved("expenses/create", ErrUnavailable)
	}
	return mutate(s, ctx, KeyExpenses, "expenses/create",
		func(ctx context.Context) (models.Expense, error) { return s.api.Expenses.Create(ctx, in) },
		func(e models.Expense) Action { return ExpenseCreated{Expense: e} })
}

// UpdateExpense edits an expense and replaces the cached copy.
func (s *Store) UpdateExpense(ctx context.Context, id string, in models.ExpenseInput) *Pending {
	if s.api.Expenses == nil {
		return resolved("expenses/update", ErrUnavailable)
	}
	return mutate(s, ctx, KeyExpenses, "expenses/update",
		func(ctx context.Context) (models.Expense, error) { return s.api.Expenses.Update(ctx, id, in) },
		func(e models.Expense) Action { return ExpenseUpdated{Expense: e} })
}

// DeleteExpense removes an expense from both collections.
func (s *Store) DeleteExpense(ctx context.Context, id string) *Pending {
	if s.api.Expenses == nil {
		return resolved("expenses/delete", ErrUnavailable)
	}
	return mutate(s, ctx, KeyExpenses, "expenses/delete",
		func(ctx context.Context) (string, error) { return id, s.api.Expenses.Delete(ctx, id) },
		func(id string) Action { return ExpenseDeleted{ID: id} })
}

// HideExpense moves an expense to the hidden collection.
func (s *Store) HideExpense(ctx context.Context, id string) *Pending {
	if s.api.Expenses == nil {
		return resolved("expenses/hide", ErrUnavailable)
	}
	return mutate(s, ctx, KeyExpenses, "expenses/hide",
		func(ctx context.Context) (models.Expense, error) { return s.api.Expenses.Hide(ctx, id) },
		func(e models.Expense) Action { return ExpenseHidden{Expense: s.cachedExpense(id, e)} })
}

// RestoreExpense moves an expense back to the active collection.
func (s *Store) RestoreExpense(ctx context.Context, id string) *Pending {
	if s.api.Expenses == nil {
		return resolved("expenses/restore", ErrUnavailable)
	}
	return mutate(s, ctx, KeyHiddenExpenses, "expenses/restore",
		func(ctx context.Context) (models.Expense, error) { return s.api.Expenses.Restore(ctx, id) },
		func(e models.Expense) Action { return ExpenseRestored{Expense: s.cachedExpense(id, e)} })
}

func (s *Store) cachedExpense(id string, fromServer models.Expense) models.Expense {
	if fromServer.ID != "" {
		return fromServer
	}
	st := s.State()
	if i := models.IndexExpense(st.Expenses.Active.Data, id); i >= 0 {
		return st.Expenses.Active.Data[i]
	}
	if i := models.IndexExpense(st.Expenses.Hidden.Data, id); i >= 0 {
		return st.Expenses.Hidden.Data[i]
	}
	return models.Expense{ID: id}
}

// --- Account ---

// FetchProfile loads the signed-in user's profile.
func (s *Store) FetchProfile(ctx context.Context) *Pending {
	if s.api.Account == nil {
		return fetch[models.Principal](s, ctx, KeyProfile, nil)
	}
	return fetch(s, ctx, KeyProfile, s.api.Account.Profile)
}

// UpdateProfile saves the account form.
func (s *Store) UpdateProfile(ctx context.Context, req shopapi.ProfileUpdate) *Pending {
	if s.api.Account == nil {
		return resolved("account/update", ErrUnavailable)
	}
	return mutate(s, ctx, KeyProfile, "account/update",
		func(ctx context.Context) (models.Principal, error) { return s.api.Account.UpdateProfile(ctx, req) },
		func(p models.Principal) Action { return ProfileUpdated{Principal: p} })
}
