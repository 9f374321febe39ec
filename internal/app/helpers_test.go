// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pawshop/internal/config"
	"github.com/tomtom215/pawshop/internal/models"
)

// fakeShop is an in-process stand-in for the REST API.
type fakeShop struct {
	*httptest.Server

	expired   atomic.Bool
	checkouts atomic.Int32
	calls     atomic.Int32

	mu       sync.Mutex
	products []models.Product
}

var testUsers = map[string]models.Principal{
	"admin@pawshop.test": {ID: "u-admin", Name: "Admin", Role: models.RoleAdmin},
	"staff@pawshop.test": {ID: "u-staff", Name: "Staff", Role: models.RoleStaff},
	"cust@pawshop.test":  {ID: "u-cust", Name: "Customer", Role: models.RoleCustomer},
}

const testPassword = "secret1"

func newFakeShop(t *testing.T) *fakeShop {
	t.Helper()
	f := &fakeShop{products: []models.Product{
		{ID: "p0", Name: "Sold out collar", Category: models.CategoryDog, Price: 50000, Stock: 0},
		{ID: "p3", Name: "Ceramic bowl", Category: models.CategoryCat, Price: 80000, Stock: 3},
		{ID: "p5", Name: "Harness", Category: models.CategoryDog, Price: 120000, Stock: 5},
	}}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", f.login)
	mux.HandleFunc("GET /api/products", f.authed(func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, models.ProductPage{Products: f.products, Total: len(f.products), Page: 1, TotalPages: 1})
	}))
	mux.HandleFunc("GET /api/products/{id}", f.authed(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if i := models.IndexProduct(f.products, r.PathValue("id")); i >= 0 {
			writeJSON(w, http.StatusOK, f.products[i])
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Product not found"})
	}))
	mux.HandleFunc("POST /api/orders", f.authed(func(w http.ResponseWriter, _ *http.Request) {
		f.checkouts.Add(1)
		writeJSON(w, http.StatusCreated, models.Order{ID: "o-1", Status: models.OrderPlaced, TotalAmount: 80000})
	}))
	mux.HandleFunc("GET /api/reports/dashboard", f.authed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"totalRevenue": 1000000, "totalExpenses": 400000, "totalOrders": 3})
	}))
	mux.HandleFunc("DELETE /api/products/{id}", f.authed(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if i := models.IndexProduct(f.products, r.PathValue("id")); i >= 0 {
			f.products = append(f.products[:i], f.products[i+1:]...)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeShop) login(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	user, ok := testUsers[req.Email]
	if !ok || req.Password != testPassword {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
		return
	}
	writeJSON(w, http.StatusOK, models.AuthResult{Token: "tok-" + user.ID, User: user})
}

// authed rejects every call with 401 once expired is set, and calls
// without a bearer token otherwise.
func (f *fakeShop) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		auth := r.Header.Get("Authorization")
		if f.expired.Load() || (!strings.HasPrefix(auth, "Bearer ") && r.Method != http.MethodGet) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token expired"})
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// newTestApp builds a started client against shop with an in-memory
// session store.
func newTestApp(t *testing.T, shop *fakeShop) *App {
	t.Helper()
	cfg := config.Default()
	cfg.API.BaseURL = shop.URL
	cfg.Session.InMemory = true

	ctx := context.Background()
	a, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	if err := a.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return a
}

func loginAs(t *testing.T, a *App, email string) string {
	t.Helper()
	target, err := a.Login(context.Background(), loginReq(email), "")
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	return target
}
