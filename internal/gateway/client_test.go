// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/pawshop/internal/models"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens TokenSource) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(Config{BaseURL: server.URL + "/"}, tokens)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_InvalidBaseURL(t *testing.T) {
	t.Parallel()

	for _, base := range []string{"", "localhost:4000", "://bad"} {
		if _, err := New(Config{BaseURL: base}, nil); err == nil {
			t.Errorf("New(%q) should fail", base)
		}
	}
}

func TestDo_AttachesBearerAndDefaults(t *testing.T) {
	t.Parallel()

	var gotAuth, gotAccept, gotContentType, gotRequestID, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotPath = r.URL.RequestURI()
		_, _ = w.Write([]byte(`{"id":"p1","name":"Kibble","stock":4}`))
	}, staticToken("tok-123"))

	var p models.Product
	q := models.Query{}.Set(models.QuerySearch, "kib")
	if err := c.Get(context.Background(), "/api/products/p1", q, &p); err != nil {
		t.Fatalf("Get: %v", err)
	}

	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotAccept != "application/json" || gotContentType != "application/json" {
		t.Errorf("default headers: Accept=%q Content-Type=%q", gotAccept, gotContentType)
	}
	if gotRequestID == "" {
		t.Error("expected X-Request-ID")
	}
	if gotPath != "/api/products/p1?search=kib" {
		t.Errorf("path = %q", gotPath)
	}
	if p.Name != "Kibble" || p.Stock != 4 {
		t.Errorf("decoded %+v", p)
	}
}

func TestDo_NoCredentialNoHeader(t *testing.T) {
	t.Parallel()

	var sawAuth bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusNoContent)
	}, staticToken(""))

	if err := c.Delete(context.Background(), "/api/products/p1", nil); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if sawAuth {
		t.Error("Authorization header sent without a credential")
	}
}

func TestDo_ReadsTokenOnEveryRequest(t *testing.T) {
	t.Parallel()

	var current atomic.Value
	current.Store("first")
	var seen []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
	}, tokenFunc(func() string { return current.Load().(string) }))

	_ = c.Get(context.Background(), "/a", nil, nil)
	current.Store("second")
	_ = c.Get(context.Background(), "/b", nil, nil)

	if len(seen) != 2 || seen[0] != "Bearer first" || seen[1] != "Bearer second" {
		t.Errorf("seen = %v", seen)
	}
}

type tokenFunc func() string

func (f tokenFunc) Token(context.Context) (string, error) { return f(), nil }

func TestDo_ErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		wantKind    Kind
		wantMessage string
	}{
		{"unauthorized", 401, `{"message":"jwt expired"}`, KindAuthExpired, "jwt expired"},
		{"unauthorized no body", 401, ``, KindAuthExpired, "Your session has expired, please log in again"},
		{"validation", 400, `{"message":"Tên sản phẩm là bắt buộc"}`, KindRejected, "Tên sản phẩm là bắt buộc"},
		{"error field", 404, `{"error":"Product not found"}`, KindRejected, "Product not found"},
		{"nested error", 409, `{"error":{"message":"Duplicate"}}`, KindRejected, "Duplicate"},
		{"forbidden html", 403, `<html>nope</html>`, KindRejected, "The request was rejected"},
		{"server", 500, `{"message":"db down"}`, KindServer, "db down"},
		{"server no body", 502, ``, KindServer, "Something went wrong, please try again"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var hits atomic.Int32
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}, nil)

			err := c.Get(context.Background(), "/api/products", nil, nil)
			var gwErr *Error
			if !errors.As(err, &gwErr) {
				t.Fatalf("expected *Error, got %T %v", err, err)
			}
			if gwErr.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", gwErr.Kind, tt.wantKind)
			}
			if gwErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", gwErr.Status, tt.status)
			}
			if gwErr.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", gwErr.Message, tt.wantMessage)
			}
			if got := errors.Is(err, ErrAuthExpired); got != (tt.wantKind == KindAuthExpired) {
				t.Errorf("errors.Is(err, ErrAuthExpired) = %v", got)
			}
			if hits.Load() != 1 {
				t.Errorf("server hit %d times, calls must be single-shot", hits.Load())
			}
		})
	}
}

func TestDo_MalformedSuccessBody(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"products": [`))
	}, nil)

	var page models.ProductPage
	err := c.Get(context.Background(), "/api/products", nil, &page)
	if KindOf(err) != KindServer {
		t.Errorf("expected KindServer, got %v", err)
	}
}

func TestDo_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	c, err := New(Config{BaseURL: server.URL, Timeout: 50 * time.Millisecond}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = c.Get(context.Background(), "/slow", nil, nil)
	if KindOf(err) != KindTimeout {
		t.Errorf("expected KindTimeout, got %v", err)
	}
	if MessageOf(err) != "The request timed out" {
		t.Errorf("MessageOf = %q", MessageOf(err))
	}
}

func TestDo_NetworkFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	c, err := New(Config{BaseURL: base}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Get(context.Background(), "/api/products", nil, nil); KindOf(err) != KindNetwork {
		t.Errorf("expected KindNetwork, got %v", err)
	}
}

func TestDo_JSONBody(t *testing.T) {
	t.Parallel()

	var got models.StatusUpdate
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s", r.Method)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"id":"o1","status":"shipping"}`))
	}, nil)

	var order models.Order
	err := c.Patch(context.Background(), "/api/orders/o1/status", models.StatusUpdate{Status: models.OrderShipping}, &order)
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if got.Status != models.OrderShipping || order.Status != models.OrderShipping {
		t.Errorf("sent %q, received %q", got.Status, order.Status)
	}
}

func TestDo_MultipartForm(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm: %v", err)
		}
		if r.FormValue("name") != "Cat tree" || r.FormValue("price") != "150000" {
			t.Errorf("fields = %v", r.MultipartForm.Value)
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer func() { _ = file.Close() }()
		data, _ := io.ReadAll(file)
		if header.Filename != "tree.png" || string(data) != "PNGDATA" {
			t.Errorf("file = %s %q", header.Filename, data)
		}
		_, _ = w.Write([]byte(`{"id":"p9","name":"Cat tree"}`))
	}, nil)

	form := NewForm().Field("name", "Cat tree").Field("price", "150000").
		File("image", "tree.png", strings.NewReader("PNGDATA"))
	if form.Len() != 3 {
		t.Errorf("Len = %d", form.Len())
	}

	var p models.Product
	err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/api/products", Form: form}, &p)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if p.ID != "p9" {
		t.Errorf("decoded %+v", p)
	}
}

func TestBreaker_OpensOnServerErrorsOnly(t *testing.T) {
	t.Parallel()

	var status atomic.Int32
	status.Store(http.StatusBadRequest)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	}))
	t.Cleanup(server.Close)

	c, err := New(Config{
		BaseURL: server.URL,
		Breaker: BreakerConfig{Enabled: true, MinRequests: 3, FailureRatio: 0.5, Timeout: time.Minute},
	}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_ = c.Get(ctx, "/x", nil, nil)
	}
	if c.breaker.cb.State() != gobreaker.StateClosed {
		t.Fatal("4xx responses must not open the breaker")
	}

	status.Store(http.StatusInternalServerError)
	for i := 0; i < 5; i++ {
		_ = c.Get(ctx, "/x", nil, nil)
	}
	if c.breaker.cb.State() != gobreaker.StateOpen {
		t.Fatalf("breaker state = %v, want open", c.breaker.cb.State())
	}

	err = c.Get(ctx, "/x", nil, nil)
	if KindOf(err) != KindUnavailable {
		t.Errorf("expected KindUnavailable while open, got %v", err)
	}
}

func TestMessageOf(t *testing.T) {
	t.Parallel()

	if MessageOf(nil) != "" {
		t.Error("nil error should have empty message")
	}
	if MessageOf(errors.New("plain")) != "plain" {
		t.Error("non-gateway error should use Error()")
	}
	wrapped := errors.Join(errors.New("ctx"), newError(KindRejected, 422, "POST", "/x", "Out of stock", nil))
	if MessageOf(wrapped) != "Out of stock" {
		t.Errorf("MessageOf(wrapped) = %q", MessageOf(wrapped))
	}
	if StatusOf(wrapped) != 422 {
		t.Errorf("StatusOf(wrapped) = %d", StatusOf(wrapped))
	}
}
