// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pawshop/internal/logging"
	"github.com/tomtom215/pawshop/internal/models"
	"github.com/tomtom215/pawshop/internal/shopapi"
	"github.com/tomtom215/pawshop/internal/store"
	"github.com/tomtom215/pawshop/internal/validation"
	"github.com/tomtom215/pawshop/internal/view"
)

// Action names accepted by Dispatch.
const (
	ActionCheckout       = "checkout"
	ActionProductCreate  = "products.create"
	ActionProductUpdate  = "products.update"
	ActionProductDelete  = "products.delete"
	ActionProductHide    = "products.hide"
	ActionProductRestore = "products.restore"
	ActionOrderStatus    = "orders.status"
	ActionExpenseCreate  = "expenses.create"
	ActionExpenseUpdate  = "expenses.update"
	ActionExpenseDelete  = "expenses.delete"
	ActionExpenseHide    = "expenses.hide"
	ActionExpenseRestore = "expenses.restore"
	ActionProfileUpdate  = "profile.update"
	ActionDismissError   = "error.dismiss"
)

var (
	// ErrUnknownAction is returned for an action name Dispatch does not know.
	ErrUnknownAction = errors.New("unknown action")
	// ErrLoginRequired is returned for an action that needs a principal.
	ErrLoginRequired = errors.New("sign in required")
	// ErrForbidden is returned when the principal's role may not run the action.
	ErrForbidden = errors.New("not allowed for this role")
	// ErrBadRequest wraps a body that could not be decoded.
	ErrBadRequest = errors.New("malformed action body")
)

var (
	anyRole   = models.Roles{models.RoleCustomer, models.RoleStaff, models.RoleAdmin}
	adminOnly = models.Roles{models.RoleAdmin}
	staffDesk = models.Roles{models.RoleStaff, models.RoleAdmin}
)

// ActionRequest is one dispatch from a renderer or the terminal.
type ActionRequest struct {
	Name  string
	Body  []byte
	Image *shopapi.Upload
}

type actionSpec struct {
	// roles is nil for actions open to everyone.
	roles models.Roles
	run   func(a *App, ctx context.Context, req ActionRequest) (*store.Pending, error)
}

var actions = map[string]actionSpec{
	ActionCheckout:       {roles: nil, run: (*App).checkout},
	ActionProductCreate:  {roles: adminOnly, run: (*App).createProduct},
	ActionProductUpdate:  {roles: adminOnly, run: (*App).updateProduct},
	ActionProductDelete:  {roles: adminOnly, run: byID((*store.Store).DeleteProduct)},
	ActionProductHide:    {roles: adminOnly, run: byID((*store.Store).HideProduct)},
	ActionProductRestore: {roles: adminOnly, run: byID((*store.Store).RestoreProduct)},
	ActionOrderStatus:    {roles: staffDesk, run: (*App).orderStatus},
	ActionExpenseCreate:  {roles: adminOnly, run: (*App).createExpense},
	ActionExpenseUpdate:  {roles: adminOnly, run: (*App).updateExpense},
	ActionExpenseDelete:  {roles: adminOnly, run: byID((*store.Store).DeleteExpense)},
	ActionExpenseHide:    {roles: adminOnly, run: byID((*store.Store).HideExpense)},
	ActionExpenseRestore: {roles: adminOnly, run: byID((*store.Store).RestoreExpense)},
	ActionProfileUpdate:  {roles: anyRole, run: (*App).updateProfile},
	ActionDismissError:   {roles: nil, run: (*App).dismissError},
}

// Actions lists the action names Dispatch accepts.
func Actions() []string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch decodes and checks an action, then starts it. Every error
// returned here happened before a network call; the call's own outcome
// is reported by the Pending.
func (a *App) Dispatch(ctx context.Context, req ActionRequest) (*store.Pending, error) {
	def, ok := actions[req.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, req.Name)
	}
	if def.roles != nil {
		p, ok := a.Sessions.Principal()
		if !ok {
			return nil, ErrLoginRequired
		}
		if !def.roles.Contains(p.Role) {
			return nil, fmt.Errorf("%w: %s", ErrForbidden, req.Name)
		}
	}
	pending, err := def.run(a, ctx, req)
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Str("action", req.Name).Msg("Action rejected")
		return nil, err
	}
	return pending, nil
}

func decode(body []byte, v any) error {
	if len(body) == 0 {
		body = []byte("{}")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}

type idBody struct {
	ID string `json:"id"`
}

func decodeID(body []byte) (string, error) {
	var b idBody
	if err := decode(body, &b); err != nil {
		return "", err
	}
	if strings.TrimSpace(b.ID) == "" {
		return "", fmt.Errorf("%w: id is required", ErrBadRequest)
	}
	return b.ID, nil
}

func byID(fn func(*store.Store, context.Context, string) *store.Pending) func(*App, context.Context, ActionRequest) (*store.Pending, error) {
	return func(a *App, ctx context.Context, req ActionRequest) (*store.Pending, error) {
		id, err := decodeID(req.Body)
		if err != nil {
			return nil, err
		}
		return fn(a.Store, ctx, id), nil
	}
}

// CheckoutBody is the checkout action's body.
type CheckoutBody struct {
	ProductID string `json:"productId"`
	view.CheckoutForm
}

// checkout applies the stock rules before anything else, so an
// out-of-stock or over-quantity order fails even without a session.
func (a *App) checkout(ctx context.Context, req ActionRequest) (*store.Pending, error) {
	var body CheckoutBody
	if err := decode(req.Body, &body); err != nil {
		return nil, err
	}
	product, err := a.productFor(ctx, body.ProductID)
	if err != nil {
		return nil, err
	}
	order, err := view.PrepareCheckout(product, body.CheckoutForm)
	if err != nil {
		return nil, err
	}
	if _, ok := a.Sessions.Principal(); !ok {
		return nil, ErrLoginRequired
	}
	return a.Store.Checkout(ctx, order), nil
}

// productFor finds a product in the state, fetching it when no screen has
// loaded it yet.
func (a *App) productFor(ctx context.Context, id string) (models.Product, error) {
	if strings.TrimSpace(id) == "" {
		return models.Product{}, fmt.Errorf("%w: productId is required", ErrBadRequest)
	}
	st := a.Store.State()
	if st.Products.Detail.Data.ID == id {
		return st.Products.Detail.Data, nil
	}
	if i := models.IndexProduct(st.Products.List.Data.Products, id); i >= 0 {
		return st.Products.List.Data.Products[i], nil
	}
	if i := models.IndexProduct(st.Products.Featured.Data, id); i >= 0 {
		return st.Products.Featured.Data[i], nil
	}

	p := a.Store.FetchProduct(ctx, id)
	if err := p.Wait(ctx); err != nil {
		return models.Product{}, err
	}
	product, _ := p.Value().(models.Product)
	return product, nil
}

func (a *App) createProduct(ctx context.Context, req ActionRequest) (*store.Pending, error) {
	var in shopapi.ProductInput
	if err := decode(req.Body, &in); err != nil {
		return nil, err
	}
	in.Image = req.Image
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	return a.Store.CreateProduct(ctx, in), nil
}

func (a *App) updateProduct(ctx context.Context, req ActionRequest) (*store.Pending, error) {
	id, err := decodeID(req.Body)
	if err != nil {
		return nil, err
	}
	var in shopapi.ProductInput
	if err := decode(req.Body, &in); err != nil {
		return nil, err
	}
	in.Image = req.Image
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	return a.Store.UpdateProduct(ctx, id, in), nil
}

type statusBody struct {
	ID string `json:"id"`
	models.StatusUpdate
}

func (a *App) orderStatus(ctx context.Context, req ActionRequest) (*store.Pending, error) {
	id, err := decodeID(req.Body)
	if err != nil {
		return nil, err
	}
	var body statusBody
	if err := decode(req.Body, &body); err != nil {
		return nil, err
	}
	if err := validation.Check(body.StatusUpdate); err != nil {
		return nil, err
	}
	return a.Store.UpdateOrderStatus(ctx, id, body.Status), nil
}

func (a *App) createExpense(ctx context.Context, req ActionRequest) (*store.Pending, error) {
	var in models.ExpenseInput
	if err := decode(req.Body, &in); err != nil {
		return nil, err
	}
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	return a.Store.CreateExpense(ctx, in), nil
}

func (a *App) updateExpense(ctx context.Context, req ActionRequest) (*store.Pending, error) {
	id, err := decodeID(req.Body)
	if err != nil {
		return nil, err
	}
	var in models.ExpenseInput
	if err := decode(req.Body, &in); err != nil {
		return nil, err
	}
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	return a.Store.UpdateExpense(ctx, id, in), nil
}

func (a *App) updateProfile(ctx context.Context, req ActionRequest) (*store.Pending, error) {
	var in shopapi.ProfileUpdate
	if err := decode(req.Body, &in); err != nil {
		return nil, err
	}
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	return a.Store.UpdateProfile(ctx, in), nil
}

type keyBody struct {
	Key store.Key `json:"key"`
}

func (a *App) dismissError(_ context.Context, req ActionRequest) (*store.Pending, error) {
	var body keyBody
	if err := decode(req.Body, &body); err != nil {
		return nil, err
	}
	for _, k := range store.Keys() {
		if k == body.Key {
			a.Store.DismissError(k)
			return store.Resolved(req.Name, nil), nil
		}
	}
	return nil, fmt.Errorf("%w: unknown key %q", ErrBadRequest, body.Key)
}
