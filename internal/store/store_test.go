// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/pawshop/internal/gateway"
	"github.com/tomtom215/pawshop/internal/models"
	"github.com/tomtom215/pawshop/internal/shopapi"
)

// fakeProducts serves canned responses. When gates is set, each List call
// blocks until the gate for its search term is closed.
type fakeProducts struct {
	mu      sync.Mutex
	pages   map[string]models.ProductPage
	gates   map[string]chan struct{}
	listErr error

	hidden  []models.Product
	hideErr error
	deleted []string
}

func (f *fakeProducts) List(ctx context.Context, q models.Query) (models.ProductPage, error) {
	term := q[models.QuerySearch]
	f.mu.Lock()
	gate := f.gates[term]
	page := f.pages[term]
	err := f.listErr
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return page, err
}

func (f *fakeProducts) Featured(context.Context) ([]models.Product, error) {
	return productsN(2), nil
}

func (f *fakeProducts) Get(_ context.Context, id string) (models.Product, error) {
	return models.Product{ID: id}, nil
}

func (f *fakeProducts) Create(_ context.Context, in shopapi.ProductInput) (models.Product, error) {
	return models.Product{ID: "created", Name: in.Name}, nil
}

func (f *fakeProducts) Update(_ context.Context, id string, in shopapi.ProductInput) (models.Product, error) {
	return models.Product{ID: id, Name: in.Name}, nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeProducts) Hidden(context.Context) ([]models.Product, error) {
	return f.hidden, nil
}

func (f *fakeProducts) Hide(_ context.Context, id string) (models.Product, error) {
	if f.hideErr != nil {
		return models.Product{}, f.hideErr
	}
	// Empty body: the store falls back to its cached copy.
	return models.Product{}, nil
}

func (f *fakeProducts) Restore(_ context.Context, id string) (models.Product, error) {
	return models.Product{ID: id}, nil
}

type fakeExpenses struct {
	active []models.Expense
	hidden []models.Expense
}

func (f *fakeExpenses) List(context.Context, models.Query) ([]models.Expense, error) {
	return f.active, nil
}

func (f *fakeExpenses) Hidden(context.Context, models.Query) ([]models.Expense, error) {
	return f.hidden, nil
}

func (f *fakeExpenses) Get(_ context.Context, id string) (models.Expense, error) {
	return models.Expense{ID: id}, nil
}

func (f *fakeExpenses) Create(_ context.Context, in models.ExpenseInput) (models.Expense, error) {
	return models.Expense{ID: "new", Title: in.Title, Amount: in.Amount}, nil
}

func (f *fakeExpenses) Update(_ context.Context, id string, in models.ExpenseInput) (models.Expense, error) {
	return models.Expense{ID: id, Title: in.Title}, nil
}

func (f *fakeExpenses) Delete(context.Context, string) error { return nil }

func (f *fakeExpenses) Hide(_ context.Context, id string) (models.Expense, error) {
	return models.Expense{ID: id, Hidden: true}, nil
}

func (f *fakeExpenses) Restore(_ context.Context, id string) (models.Expense, error) {
	return models.Expense{ID: id}, nil
}

func waitFor(t *testing.T, p *Pending) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := p.Wait(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("%s did not resolve", p.Action)
	}
	return err
}

func TestFetchProductsSuccess(t *testing.T) {
	gate := make(chan struct{})
	fp := &fakeProducts{
		pages: map[string]models.ProductPage{"": {Products: productsN(3), Total: 3}},
		gates: map[string]chan struct{}{"": gate},
	}
	s := New(API{Products: fp})

	p := s.FetchProducts(context.Background(), models.Query{})
	if !s.State().Products.List.Loading {
		t.Error("not loading immediately after dispatch")
	}
	close(gate)
	if err := waitFor(t, p); err != nil {
		t.Fatalf("FetchProducts: %v", err)
	}

	list := s.State().Products.List
	if list.Loading || !list.Loaded || len(list.Data.Products) != 3 {
		t.Errorf("list = %+v", list)
	}
}

func TestFetchFailureKeepsPreviousItems(t *testing.T) {
	fp := &fakeProducts{pages: map[string]models.ProductPage{"": {Products: productsN(4), Total: 4}}}
	var hooked atomic.Int32
	s := New(API{Products: fp}, WithErrorHook(func(context.Context, error) { hooked.Add(1) }))

	if err := waitFor(t, s.FetchProducts(context.Background(), nil)); err != nil {
		t.Fatal(err)
	}

	fp.mu.Lock()
	fp.listErr = &gateway.Error{Kind: gateway.KindServer, Status: 500, Message: "Something went wrong, please try again"}
	fp.mu.Unlock()

	err := waitFor(t, s.FetchProducts(context.Background(), nil))
	if err == nil {
		t.Fatal("expected error")
	}

	list := s.State().Products.List
	if got := len(list.Data.Products); got != 4 {
		t.Errorf("len = %d after failure, want 4", got)
	}
	if list.Loading {
		t.Error("still loading")
	}
	if list.Error == nil || list.Error.Kind != "server" || list.Error.Status != 500 {
		t.Errorf("error = %+v", list.Error)
	}
	if hooked.Load() != 1 {
		t.Errorf("error hook called %d times, want 1", hooked.Load())
	}
}

func TestNewestFetchWinsRegardlessOfArrival(t *testing.T) {
	first := make(chan struct{})
	second := make(chan struct{})
	fp := &fakeProducts{
		pages: map[string]models.ProductPage{
			"old": {Products: productsN(5), Total: 5},
			"new": {Products: productsN(1), Total: 1},
		},
		gates: map[string]chan struct{}{"old": first, "new": second},
	}
	s := New(API{Products: fp})
	ctx := context.Background()

	pOld := s.FetchProducts(ctx, models.Query{}.Set(models.QuerySearch, "old"))
	pNew := s.FetchProducts(ctx, models.Query{}.Set(models.QuerySearch, "new"))

	close(second)
	if err := waitFor(t, pNew); err != nil {
		t.Fatal(err)
	}
	close(first)
	if err := waitFor(t, pOld); err != nil {
		t.Fatal(err)
	}

	list := s.State().Products.List
	if got := len(list.Data.Products); got != 1 {
		t.Errorf("len = %d, the older request overwrote the newer", got)
	}
	if list.Loading {
		t.Error("still loading after both resolved")
	}
}

func TestResetIgnoresInflightResponses(t *testing.T) {
	gate := make(chan struct{})
	fp := &fakeProducts{
		pages: map[string]models.ProductPage{"": {Products: productsN(3), Total: 3}},
		gates: map[string]chan struct{}{"": gate},
	}
	s := New(API{Products: fp})

	p := s.FetchProducts(context.Background(), nil)
	s.Reset()
	close(gate)
	if err := waitFor(t, p); err != nil {
		t.Fatal(err)
	}

	if got := len(s.State().Products.List.Data.Products); got != 0 {
		t.Errorf("len = %d, a response from before the reset landed", got)
	}
}

func TestCanceledCallerStillResolves(t *testing.T) {
	gate := make(chan struct{})
	fp := &fakeProducts{
		pages: map[string]models.ProductPage{"": {Products: productsN(2), Total: 2}},
		gates: map[string]chan struct{}{"": gate},
	}
	s := New(API{Products: fp})

	ctx, cancel := context.WithCancel(context.Background())
	p := s.FetchProducts(ctx, nil)
	cancel()
	close(gate)
	if err := waitFor(t, p); err != nil {
		t.Fatal(err)
	}
	if got := len(s.State().Products.List.Data.Products); got != 2 {
		t.Errorf("len = %d, want 2", got)
	}
}

func TestDeleteProductRemovesFromCache(t *testing.T) {
	fp := &fakeProducts{pages: map[string]models.ProductPage{"": {Products: productsN(3), Total: 3}}}
	s := New(API{Products: fp})
	ctx := context.Background()

	if err := waitFor(t, s.FetchProducts(ctx, nil)); err != nil {
		t.Fatal(err)
	}
	if err := waitFor(t, s.DeleteProduct(ctx, "b")); err != nil {
		t.Fatal(err)
	}

	page := s.State().Products.List.Data
	if len(page.Products) != 2 || page.Total != 2 {
		t.Errorf("page = %d products, total %d; want 2, 2", len(page.Products), page.Total)
	}
	if models.IndexProduct(page.Products, "b") >= 0 {
		t.Error("deleted product still cached")
	}
}

func TestHideProductUsesCachedCopy(t *testing.T) {
	fp := &fakeProducts{pages: map[string]models.ProductPage{"": {Products: productsN(2), Total: 2}}}
	s := New(API{Products: fp})
	ctx := context.Background()

	if err := WaitAll(ctx, s.FetchProducts(ctx, nil), s.FetchHiddenProducts(ctx)); err != nil {
		t.Fatal(err)
	}
	if err := waitFor(t, s.HideProduct(ctx, "a")); err != nil {
		t.Fatal(err)
	}

	st := s.State()
	if models.IndexProduct(st.Products.List.Data.Products, "a") >= 0 {
		t.Error("hidden product still listed")
	}
	if len(st.Products.Hidden.Data) != 1 || st.Products.Hidden.Data[0].Name != "Item" {
		t.Errorf("hidden = %+v, want the cached copy of a", st.Products.Hidden.Data)
	}

	if err := waitFor(t, s.RestoreProduct(ctx, "a")); err != nil {
		t.Fatal(err)
	}
	if len(s.State().Products.Hidden.Data) != 0 {
		t.Error("restored product still hidden")
	}
}

func TestMutationFailureRecordsError(t *testing.T) {
	fp := &fakeProducts{
		pages:   map[string]models.ProductPage{"": {Products: productsN(2), Total: 2}},
		hideErr: &gateway.Error{Kind: gateway.KindRejected, Status: 403, Message: "Forbidden"},
	}
	s := New(API{Products: fp})
	ctx := context.Background()

	if err := waitFor(t, s.FetchProducts(ctx, nil)); err != nil {
		t.Fatal(err)
	}
	if err := waitFor(t, s.HideProduct(ctx, "a")); err == nil {
		t.Fatal("expected error")
	}

	list := s.State().Products.List
	if len(list.Data.Products) != 2 {
		t.Error("failed hide changed the list")
	}
	if list.Error == nil || list.Error.Message != "Forbidden" {
		t.Errorf("error = %+v", list.Error)
	}
}

func TestExpenseLifecycle(t *testing.T) {
	fe := &fakeExpenses{active: []models.Expense{{ID: "e1"}, {ID: "e2"}}}
	s := New(API{Expenses: fe})
	ctx := context.Background()

	if err := WaitAll(ctx, s.FetchExpenses(ctx, nil), s.FetchHiddenExpenses(ctx, nil)); err != nil {
		t.Fatal(err)
	}
	if err := waitFor(t, s.CreateExpense(ctx, models.ExpenseInput{Title: "Rent", Amount: 10})); err != nil {
		t.Fatal(err)
	}
	if err := waitFor(t, s.HideExpense(ctx, "e1")); err != nil {
		t.Fatal(err)
	}

	st := s.State()
	if len(st.Expenses.Active.Data) != 2 || len(st.Expenses.Hidden.Data) != 1 {
		t.Fatalf("active=%d hidden=%d, want 2 and 1", len(st.Expenses.Active.Data), len(st.Expenses.Hidden.Data))
	}

	if err := waitFor(t, s.DeleteExpense(ctx, "e1")); err != nil {
		t.Fatal(err)
	}
	if len(s.State().Expenses.Hidden.Data) != 0 {
		t.Error("deleted expense still hidden")
	}
}

func TestUnconfiguredServiceResolvesImmediately(t *testing.T) {
	s := New(API{})
	p := s.FetchDashboard(context.Background(), nil)
	if !errors.Is(waitFor(t, p), ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", p.Err())
	}
	if s.State().Reports.Dashboard.Loading {
		t.Error("dashboard left loading")
	}
}

func TestSubscribeSeesEveryDispatch(t *testing.T) {
	s := New(API{})
	var versions []uint64
	unsub := s.Subscribe(func(st State) { versions = append(versions, st.Version) })

	s.Dispatch(ErrorDismissed{Key: KeyProducts})
	s.Dispatch(ErrorDismissed{Key: KeyProducts})
	unsub()
	s.Dispatch(ErrorDismissed{Key: KeyProducts})

	if len(versions) != 2 || versions[0] != 1 || versions[1] != 2 {
		t.Errorf("versions = %v, want [1 2]", versions)
	}
}

func TestDrainWaitsForBackgroundCalls(t *testing.T) {
	gate := make(chan struct{})
	fp := &fakeProducts{gates: map[string]chan struct{}{"": gate}}
	s := New(API{Products: fp})
	s.FetchProducts(context.Background(), nil)

	done := make(chan struct{})
	go func() {
		s.Drain()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Drain returned while a call was in flight")
	case <-time.After(20 * time.Millisecond):
	}
	close(gate)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Drain did not return")
	}
}
