// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package cli

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
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{Level: "error", Format: "console", Output: io.Discard})
}

const testPassword = "secret1"

var testUsers = map[string]models.Principal{
	"admin@pawshop.test": {ID: "u-admin", Name: "Admin", Email: "admin@pawshop.test", Role: models.RoleAdmin},
	"cust@pawshop.test":  {ID: "u-cust", Name: "Customer", Email: "cust@pawshop.test", Role: models.RoleCustomer},
}

// fakeShop is an in-process stand-in for the REST API.
type fakeShop struct {
	*httptest.Server

	calls atomic.Int32

	mu        sync.Mutex
	lastQuery string
}

func newFakeShop(t *testing.T) *fakeShop {
	t.Helper()
	f := &fakeShop{}
	products := []models.Product{
		{ID: "p0", Name: "Sold out collar", Category: models.CategoryDog, Price: 50000, Stock: 0, IsActive: true},
		{ID: "p3", Name: "Ceramic bowl", Category: models.CategoryCat, Price: 80000, Stock: 3, IsActive: true},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		user, ok := testUsers[req.Email]
		if !ok || req.Password != testPassword {
			writeTestJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
			return
		}
		writeTestJSON(w, http.StatusOK, models.AuthResult{Token: "tok-" + user.ID, User: user})
	})
	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		f.mu.Lock()
		f.lastQuery = r.URL.RawQuery
		f.mu.Unlock()
		writeTestJSON(w, http.StatusOK, models.ProductPage{Products: products, Total: len(products), Page: 1, TotalPages: 1})
	})
	mux.HandleFunc("GET /api/reports/dashboard", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		if r.Header.Get("Authorization") != "Bearer tok-u-admin" {
			writeTestJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token expired"})
			return
		}
		writeTestJSON(w, http.StatusOK, map[string]any{"totalRevenue": 1000000, "totalExpenses": 400000, "totalOrders": 3})
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeShop) query() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastQuery
}

func writeTestJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// testCLI runs commands against one fake shop and one on-disk session
// store, so a login survives into the next invocation.
type testCLI struct {
	cfg  *config.Config
	shop *fakeShop
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	shop := newFakeShop(t)
	cfg := config.Default()
	cfg.API.BaseURL = shop.URL
	cfg.Session.StorePath = t.TempDir()
	cfg.Session.InMemory = false
	cfg.Logging.Level = "error"
	return &testCLI{cfg: cfg, shop: shop}
}

func (c *testCLI) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(Options{Config: c.cfg})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (c *testCLI) mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, err := c.run(t, stdin, args...)
	if err != nil {
		t.Fatalf("pawshop %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestSessionCommands(t *testing.T) {
	c := newTestCLI(t)

	if out := c.mustRun(t, "", "whoami"); !strings.Contains(out, "Not signed in.") {
		t.Fatalf("whoami before login = %q", out)
	}

	out := c.mustRun(t, testPassword+"\n", "login", "--email", "admin@pawshop.test")
	for _, want := range []string{"Admin <admin@pawshop.test>", "Administrator", "Next:  /dashboard"} {
		if !strings.Contains(out, want) {
			t.Errorf("login output missing %q:\n%s", want, out)
		}
	}

	out = c.mustRun(t, "", "whoami")
	if !strings.Contains(out, "Home:  /admin") {
		t.Errorf("whoami after login = %q", out)
	}

	var who whoamiResult
	if err := json.Unmarshal([]byte(c.mustRun(t, "", "whoami", "-o", "json")), &who); err != nil {
		t.Fatalf("decode whoami: %v", err)
	}
	if !who.SignedIn || who.Principal == nil || who.Principal.Role != models.RoleAdmin {
		t.Errorf("whoami json = %+v", who)
	}

	if out := c.mustRun(t, "", "logout"); !strings.Contains(out, "Signed out.") {
		t.Errorf("logout output = %q", out)
	}
	if out := c.mustRun(t, "", "whoami"); !strings.Contains(out, "Not signed in.") {
		t.Errorf("whoami after logout = %q", out)
	}
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantErr   string
		wantCalls int32
	}{
		{
			name:      "wrong password shows server message",
			args:      []string{"login", "--email", "admin@pawshop.test", "--password", "wrong-one"},
			wantErr:   "Invalid email or password",
			wantCalls: 1,
		},
		{
			name:      "malformed email is rejected locally",
			args:      []string{"login", "--email", "not-an-email", "--password", testPassword},
			wantErr:   "login:",
			wantCalls: 0,
		},
		{
			name:      "email flag is required",
			args:      []string{"login", "--password", testPassword},
			wantErr:   "email",
			wantCalls: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCLI(t)
			_, err := c.run(t, "", tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
			}
			if got := c.shop.calls.Load(); got != tt.wantCalls {
				t.Errorf("server calls = %d, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestOpen_AnonymousAdminLandsOnLogin(t *testing.T) {
	c := newTestCLI(t)

	out := c.mustRun(t, "", "open", "/admin")
	if !strings.Contains(out, "-> redirected from /admin") {
		t.Errorf("missing redirect line:\n%s", out)
	}
	if !strings.Contains(out, "== Sign in [") {
		t.Errorf("expected the login screen:\n%s", out)
	}
	if got := c.shop.calls.Load(); got != 0 {
		t.Errorf("server calls = %d, want 0", got)
	}
}

func TestOpen_ProductsWithFilters(t *testing.T) {
	c := newTestCLI(t)

	out := c.mustRun(t, "", "open", "/products", "--category", "dog", "--search", "collar")
	if !strings.Contains(c.shop.query(), "category=dog") {
		t.Errorf("query sent = %q, want category=dog", c.shop.query())
	}
	if !strings.Contains(out, "== Products [ready] ==") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "NAME") || !strings.Contains(out, "Sold out collar") {
		t.Errorf("missing product table:\n%s", out)
	}
	if strings.Contains(out, "Ceramic bowl") {
		t.Errorf("cat product shown under dog filter:\n%s", out)
	}
}

func TestOpen_DashboardJSON(t *testing.T) {
	c := newTestCLI(t)
	c.mustRun(t, "", "login", "--email", "admin@pawshop.test", "--password", testPassword)

	var page app.Page
	if err := json.Unmarshal([]byte(c.mustRun(t, "", "open", "/dashboard", "-o", "json")), &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if page.Path != "/admin" || page.Outcome != "render" {
		t.Errorf("page = %s %s, want /admin render", page.Path, page.Outcome)
	}
	if len(page.Via) != 1 || page.Via[0] != "/dashboard" {
		t.Errorf("via = %v, want [/dashboard]", page.Via)
	}
	if page.Screen == nil || page.Screen.Status != "ready" {
		t.Errorf("screen = %+v, want ready", page.Screen)
	}
}

func TestRootCommand_Flags(t *testing.T) {
	c := newTestCLI(t)

	if _, err := c.run(t, "", "whoami", "-o", "yaml"); err == nil {
		t.Error("expected unknown output format error")
	}
	if _, err := c.run(t, "", "whoami", "--log-level", "loud"); err == nil {
		t.Error("expected unknown log level error")
	}
	if _, err := c.run(t, "", "open"); err == nil {
		t.Error("expected missing path error")
	}
}

func TestListFlagsApply(t *testing.T) {
	tests := []struct {
		name string
		path string
		lf   listFlags
		want string
	}{
		{"no flags", "/products", listFlags{}, "/products"},
		{"flags added", "/products", listFlags{category: "cat", page: 2}, "/products?category=cat&page=2"},
		{"flag overrides path", "/products?category=dog&search=bowl", listFlags{category: "cat"}, "/products?category=cat&search=bowl"},
		{"sort and order", "/admin/list-products", listFlags{sort: "price", order: "desc"}, "/admin/list-products?sortBy=price&sortOrder=desc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.lf.apply(tt.path)
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			if got != tt.want {
				t.Errorf("apply(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
