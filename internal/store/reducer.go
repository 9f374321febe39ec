// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package store

import (
	"github.com/tomtom215/pawshop/internal/models"
)

// Reduce returns the state that results from applying a to prev. It is
// pure: prev is never modified and no collection is changed in place.
func Reduce(prev State, a Action) State {
	next := prev

	switch act := a.(type) {
	case FetchStarted:
		if ops := next.ops(act.Key); ops != nil {
			ops.start(act.Seq)
		}

	case FetchSucceeded:
		if ops := next.ops(act.Key); ops != nil && !ops.stale(act.Seq) {
			ops.succeed(act.Seq, act.Payload)
		}

	case FetchFailed:
		if ops := next.ops(act.Key); ops != nil && !ops.stale(act.Seq) {
			ops.fail(act.Seq, act.Err)
		}

	case MutationFailed:
		if ops := next.ops(act.Key); ops != nil {
			ops.setError(&act.Err)
		}

	case ErrorDismissed:
		if ops := next.ops(act.Key); ops != nil {
			ops.setError(nil)
		}

	case ProductCreated:
		page := next.Products.List.Data
		if models.IndexProduct(page.Products, act.Product.ID) < 0 {
			page.Products = appendCopy(page.Products, act.Product)
			page.Total++
			next.Products.List.Data = page
		}
		next.Products.List.Error = nil

	case ProductUpdated:
		page := next.Products.List.Data
		page.Products = replaceByID(page.Products, act.Product, productID)
		next.Products.List.Data = page
		next.Products.List.Error = nil
		next.Products.Featured.Data = replaceByID(next.Products.Featured.Data, act.Product, productID)
		next.Products.Hidden.Data = replaceByID(next.Products.Hidden.Data, act.Product, productID)
		if next.Products.Detail.Data.ID == act.Product.ID {
			next.Products.Detail.Data = act.Product
		}

	case ProductDeleted:
		next.Products.List.Data = removeFromPage(next.Products.List.Data, act.ID)
		next.Products.List.Error = nil
		next.Products.Featured.Data = removeByID(next.Products.Featured.Data, act.ID, productID)
		next.Products.Hidden.Data = removeByID(next.Products.Hidden.Data, act.ID, productID)
		if next.Products.Detail.Data.ID == act.ID {
			next.Products.Detail.Data = models.Product{}
			next.Products.Detail.Loaded = false
		}

	case ProductHidden:
		next.Products.List.Data = removeFromPage(next.Products.List.Data, act.Product.ID)
		next.Products.List.Error = nil
		next.Products.Featured.Data = removeByID(next.Products.Featured.Data, act.Product.ID, productID)
		hidden := next.Products.Hidden.Data
		if next.Products.Hidden.Loaded && models.IndexProduct(hidden, act.Product.ID) < 0 {
			next.Products.Hidden.Data = appendCopy(hidden, act.Product)
		}

	case ProductRestored:
		next.Products.Hidden.Data = removeByID(next.Products.Hidden.Data, act.Product.ID, productID)
		next.Products.Hidden.Error = nil

	case OrderPlaced:
		if models.IndexOrder(next.Orders.Mine.Data, act.Order.ID) < 0 {
			next.Orders.Mine.Data = prependCopy(next.Orders.Mine.Data, act.Order)
		}
		placed := act.Order
		next.Orders.LastPlaced = &placed

	case OrderStatusChanged:
		next.Orders.Mine.Data = replaceByID(next.Orders.Mine.Data, act.Order, orderID)
		next.Orders.All.Data = replaceByID(next.Orders.All.Data, act.Order, orderID)
		next.Orders.All.Error = nil
		if next.Orders.Detail.Data.ID == act.Order.ID {
			next.Orders.Detail.Data = act.Order
		}

	case ExpenseCreated:
		if models.IndexExpense(next.Expenses.Active.Data, act.Expense.ID) < 0 {
			next.Expenses.Active.Data = appendCopy(next.Expenses.Active.Data, act.Expense)
		}
		next.Expenses.Active.Error = nil

	case ExpenseUpdated:
		next.Expenses.Active.Data = replaceByID(next.Expenses.Active.Data, act.Expense, expenseID)
		next.Expenses.Hidden.Data = replaceByID(next.Expenses.Hidden.Data, act.Expense, expenseID)
		next.Expenses.Active.Error = nil
		if next.Expenses.Detail.Data.ID == act.Expense.ID {
			next.Expenses.Detail.Data = act.Expense
		}

	case ExpenseDeleted:
		next.Expenses.Active.Data = removeByID(next.Expenses.Active.Data, act.ID, expenseID)
		next.Expenses.Hidden.Data = removeByID(next.Expenses.Hidden.Data, act.ID, expenseID)
		next.Expenses.Active.Error = nil

	case ExpenseHidden:
		e := act.Expense
		e.Hidden = true
		next.Expenses.Active.Data = removeByID(next.Expenses.Active.Data, e.ID, expenseID)
		if next.Expenses.Hidden.Loaded && models.IndexExpense(next.Expenses.Hidden.Data, e.ID) < 0 {
			next.Expenses.Hidden.Data = appendCopy(next.Expenses.Hidden.Data, e)
		}

	case ExpenseRestored:
		e := act.Expense
		e.Hidden = false
		next.Expenses.Hidden.Data = removeByID(next.Expenses.Hidden.Data, e.ID, expenseID)
		if next.Expenses.Active.Loaded && models.IndexExpense(next.Expenses.Active.Data, e.ID) < 0 {
			next.Expenses.Active.Data = appendCopy(next.Expenses.Active.Data, e)
		}

	case ProfileUpdated:
		next.Account.Profile.Data = act.Principal
		next.Account.Profile.Loaded = true
		next.Account.Profile.Error = nil

	case Reset:
		for _, key := range Keys() {
			next.ops(key).reset()
		}
		next.Orders.LastPlaced = nil
	}

	return next
}

// IsStale reports whether a fetch resolution would be ignored by Reduce.
func IsStale(s State, a Action) bool {
	var key Key
	var seq uint64
	switch act := a.(type) {
	case FetchSucceeded:
		key, seq = act.Key, act.Seq
	case FetchFailed:
		key, seq = act.Key, act.Seq
	default:
		return false
	}
	ops := s.ops(key)
	return ops != nil && ops.stale(seq)
}

func productID(p models.Product) string { return p.ID }
func orderID(o models.Order) string     { return o.ID }
func expenseID(e models.Expense) string { return e.ID }

func appendCopy[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, item)
}

func prependCopy[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

// replaceByID returns a copy with the element sharing item's id replaced.
// The input is returned unchanged when no element matches.
func replaceByID[T any](items []T, item T, id func(T) string) []T {
	target := id(item)
	for i := range items {
		if id(items[i]) == target {
			out := make([]T, len(items))
			copy(out, items)
			out[i] = item
			return out
		}
	}
	return items
}

// removeByID returns a copy without elements whose id matches.
// The input is returned unchanged when nothing matches.
func removeByID[T any](items []T, target string, id func(T) string) []T {
	found := false
	for i := range items {
		if id(items[i]) == target {
			found = true
			break
		}
	}
	if !found {
		return items
	}
	out := make([]T, 0, len(items)-1)
	for _, it := range items {
		if id(it) != target {
			out = append(out, it)
		}
	}
	return out
}

func removeFromPage(page models.ProductPage, id string) models.ProductPage {
	before := len(page.Products)
	page.Products = removeByID(page.Products, id, productID)
	if removed := before - len(page.Products); removed > 0 && page.Total >= removed {
		page.Total -= removed
	}
	return page
}
