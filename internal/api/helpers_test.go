// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pawshop/internal/app"
	"github.com/tomtom215/pawshop/internal/config"
	"github.com/tomtom215/pawshop/internal/logging"
	"github.com/tomtom215/pawshop/internal/models"
	ws "github.com/tomtom215/pawshop/internal/websocket"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{Level: "error", Format: "console", Output: io.Discard})
}

const (
	testPassword = "secret1"
	testOrigin   = "http://localhost:5173"
)

var testUsers = map[string]models.Principal{
	"admin@pawshop.test": {ID: "u-admin", Name: "Admin", Role: models.RoleAdmin},
	"cust@pawshop.test":  {ID: "u-cust", Name: "Customer", Role: models.RoleCustomer},
}

// fakeShop is an in-process stand-in for the REST API.
type fakeShop struct {
	*httptest.Server

	calls atomic.Int32

	mu       sync.Mutex
	products []models.Product
	uploads  []string
}

func newFakeShop(t *testing.T) *fakeShop {
	t.Helper()
	f := &fakeShop{products: []models.Product{
		{ID: "p0", Name: "Sold out collar", Category: models.CategoryDog, Price: 50000, Stock: 0, IsActive: true},
		{ID: "p3", Name: "Ceramic bowl", Category: models.CategoryCat, Price: 80000, Stock: 3, IsActive: true},
	}}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", f.login)
	mux.HandleFunc("GET /api/products", f.count(func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, models.ProductPage{Products: f.products, Total: len(f.products), Page: 1, TotalPages: 1})
	}))
	mux.HandleFunc("GET /api/products/{id}", f.count(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if i := models.IndexProduct(f.products, r.PathValue("id")); i >= 0 {
			writeJSON(w, http.StatusOK, f.products[i])
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Product not found"})
	}))
	mux.HandleFunc("POST /api/products", f.count(f.createProduct))
	mux.HandleFunc("GET /api/reports/dashboard", f.count(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"totalRevenue": 1000000, "totalExpenses": 400000, "totalOrders": 3})
	}))

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeShop) count(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		if r.Method != http.MethodGet && !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token expired"})
			return
		}
		next(w, r)
	}
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

func (f *fakeShop) createProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	p := models.Product{ID: "p-new", Name: r.FormValue("name"), Category: models.Category(r.FormValue("category")), IsActive: true}
	f.mu.Lock()
	if file, header, err := r.FormFile("image"); err == nil {
		data, _ := io.ReadAll(file)
		_ = file.Close()
		f.uploads = append(f.uploads, header.Filename+":"+string(data))
		p.Image = "/uploads/" + header.Filename
	}
	f.products = append(f.products, p)
	f.mu.Unlock()
	writeJSON(w, http.StatusCreated, p)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// testHost is a started client, its hub and the view host in front of them.
type testHost struct {
	app    *app.App
	hub    *ws.Hub
	server *httptest.Server
	shop   *fakeShop
}

func newTestHost(t *testing.T) *testHost {
	t.Helper()
	shop := newFakeShop(t)

	cfg := config.Default()
	cfg.API.BaseURL = shop.URL
	cfg.Session.InMemory = true
	cfg.Server.CORSOrigins = []string{testOrigin}

	ctx, cancel := context.WithCancel(context.Background())
	a, err := app.New(ctx, cfg)
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	if err := a.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	hub := ws.NewHub()
	hubDone := make(chan struct{})
	go func() {
		_ = hub.RunWithContext(ctx)
		close(hubDone)
	}()
	detach := ws.Attach(hub, a.Store, a)

	server := httptest.NewServer(NewRouter(a, hub).SetupChi())
	t.Cleanup(func() {
		server.Close()
		detach()
		cancel()
		<-hubDone
		_ = a.Close()
	})
	return &testHost{app: a, hub: hub, server: server, shop: shop}
}

// envelope is APIResponse with the payload left raw.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
}

func (h *testHost) do(t *testing.T, method, path, contentType string, body io.Reader) (int, envelope) {
	t.Helper()
	req, err := http.NewRequest(method, h.server.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := h.server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	return resp.StatusCode, env
}

func (h *testHost) get(t *testing.T, path string) (int, envelope) {
	t.Helper()
	return h.do(t, http.MethodGet, path, "", nil)
}

func (h *testHost) postJSON(t *testing.T, path string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	return h.do(t, http.MethodPost, path, "application/json", &buf)
}

func (h *testHost) login(t *testing.T, email string) SignInResult {
	t.Helper()
	status, env := h.postJSON(t, "/session/login", map[string]string{"email": email, "password": testPassword})
	if status != http.StatusOK {
		t.Fatalf("login %s: status %d error %+v", email, status, env.Error)
	}
	var res SignInResult
	decodeData(t, env, &res)
	return res
}

func decodeData(t *testing.T, env envelope, v any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
}
