// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/pawshop/internal/kvstore"
	"github.com/tomtom215/pawshop/internal/models"
)

func newTestKV(t *testing.T) *kvstore.Store {
	t.Helper()

	kv, err := kvstore.Open(kvstore.Options{InMemory: true})
	if err != nil {
		t.Fatalf("Failed to open kvstore: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

var alice = models.Principal{ID: "u-1", Name: "Alice", Role: models.RoleCustomer}

func TestRestore_Empty(t *testing.T) {
	t.Parallel()
	s := New(newTestKV(t), 0)

	if s.Restored() {
		t.Fatal("store must not be restored before Restore")
	}
	if err := s.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !s.Restored() {
		t.Error("expected restored flag")
	}
	if _, ok := s.Principal(); ok {
		t.Error("expected no principal")
	}
	select {
	case <-s.Ready():
	default:
		t.Error("Ready should be closed after Restore")
	}
}

func TestRestore_Idempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := newTestKV(t)

	writer := New(kv, time.Hour)
	if err := writer.Persist(ctx, "tok-1", alice); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	s := New(kv, time.Hour)
	if err := s.Restore(ctx); err != nil {
		t.Fatalf("first Restore: %v", err)
	}
	first, ok := s.Principal()
	if !ok {
		t.Fatal("expected principal after first restore")
	}
	if err := s.Restore(ctx); err != nil {
		t.Fatalf("second Restore: %v", err)
	}
	second, ok := s.Principal()
	if !ok || second != first {
		t.Errorf("restore not idempotent: %+v vs %+v", first, second)
	}
	if first != alice {
		t.Errorf("restored %+v, want %+v", first, alice)
	}
}

func TestRestore_RequiresBothKeys(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := newTestKV(t)

	if err := kv.Set(ctx, UserKey, []byte(`{"id":"u-1","name":"Alice","role":"customer"}`), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	s := New(kv, 0)
	if err := s.Restore(ctx); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if _, ok := s.Principal(); ok {
		t.Error("principal restored without a credential")
	}
}

func TestRestore_MalformedDiscarded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
		user  string
	}{
		{"not json", "tok", "{not json"},
		{"unknown role", "tok", `{"id":"u-1","role":"root"}`},
		{"missing id", "tok", `{"name":"x","role":"admin"}`},
		{"empty token", "", `{"id":"u-1","role":"admin"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			kv := newTestKV(t)
			_ = kv.Set(ctx, TokenKey, []byte(tt.token), 0)
			_ = kv.Set(ctx, UserKey, []byte(tt.user), 0)

			s := New(kv, 0)
			if err := s.Restore(ctx); err != nil {
				t.Fatalf("Restore: %v", err)
			}
			if _, ok := s.Principal(); ok {
				t.Error("malformed session restored")
			}
			if _, err := kv.Get(ctx, UserKey); !errors.Is(err, kvstore.ErrNotFound) {
				t.Errorf("malformed user key not removed: %v", err)
			}
		})
	}
}

func TestLogout_CompleteWipe(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := newTestKV(t)
	s := New(kv, 0)

	admin := models.Principal{ID: "a-1", Name: "Root", Role: models.RoleAdmin}
	if err := s.Persist(ctx, "tok", admin); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if err := s.Login(admin); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !s.HasRole(models.RoleAdmin) {
		t.Fatal("expected admin role after login")
	}

	if err := s.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	for _, key := range []string{TokenKey, UserKey} {
		if _, err := kv.Get(ctx, key); !errors.Is(err, kvstore.ErrNotFound) {
			t.Errorf("key %s still present after logout", key)
		}
	}
	inputs := [][]models.Role{
		nil,
		{models.RoleCustomer},
		{models.RoleStaff},
		{models.RoleAdmin},
		models.AllRoles(),
	}
	for _, roles := range inputs {
		if s.HasRole(roles...) {
			t.Errorf("HasRole(%v) true after logout", roles)
		}
	}
}

func TestLogout_CanceledContext(t *testing.T) {
	t.Parallel()
	kv := newTestKV(t)
	s := New(kv, 0)

	if err := s.Persist(context.Background(), "tok", alice); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if err := s.Login(alice); err != nil {
		t.Fatalf("Login: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Logout(ctx); err != nil {
		t.Fatalf("Logout with canceled context: %v", err)
	}
	if _, ok := s.Principal(); ok {
		t.Error("principal still set after logout")
	}
	for _, key := range []string{TokenKey, UserKey} {
		if _, err := kv.Get(context.Background(), key); !errors.Is(err, kvstore.ErrNotFound) {
			t.Errorf("key %s survived logout with canceled context", key)
		}
	}

	fresh := New(kv, 0)
	if err := fresh.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if _, ok := fresh.Principal(); ok {
		t.Error("fresh store restored a principal after logout")
	}
}

func TestHasRole(t *testing.T) {
	t.Parallel()
	s := New(newTestKV(t), 0)

	if s.HasRole(models.RoleCustomer) {
		t.Error("HasRole must be false without a principal")
	}
	staff := models.Principal{ID: "s-1", Role: models.RoleStaff}
	if err := s.Login(staff); err != nil {
		t.Fatalf("Login: %v", err)
	}

	tests := []struct {
		roles []models.Role
		want  bool
	}{
		{[]models.Role{models.RoleStaff}, true},
		{[]models.Role{models.RoleStaff, models.RoleAdmin}, true},
		{[]models.Role{models.RoleAdmin}, false},
		{[]models.Role{models.RoleCustomer}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := s.HasRole(tt.roles...); got != tt.want {
			t.Errorf("HasRole(%v) = %v, want %v", tt.roles, got, tt.want)
		}
	}
}

func TestLogin_RejectsInvalidPrincipal(t *testing.T) {
	t.Parallel()
	s := New(newTestKV(t), 0)

	if err := s.Login(models.Principal{ID: "x", Role: "owner"}); !errors.Is(err, models.ErrInvalidPrincipal) {
		t.Errorf("expected ErrInvalidPrincipal, got %v", err)
	}
}

func TestPersist_EmptyToken(t *testing.T) {
	t.Parallel()
	s := New(newTestKV(t), 0)

	if err := s.Persist(context.Background(), "", alice); !errors.Is(err, ErrEmptyCredential) {
		t.Errorf("expected ErrEmptyCredential, got %v", err)
	}
}

func TestToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := New(newTestKV(t), 0)

	token, err := s.Token(ctx)
	if err != nil || token != "" {
		t.Errorf("Token() without credential = %q, %v", token, err)
	}
	if err := s.Persist(ctx, "bearer-xyz", alice); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	token, err = s.Token(ctx)
	if err != nil || token != "bearer-xyz" {
		t.Errorf("Token() = %q, %v", token, err)
	}
}

func TestExpire_ClearsExactlyOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := newTestKV(t)
	s := New(kv, 0)

	if err := s.Persist(ctx, "tok", alice); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if err := s.Login(alice); err != nil {
		t.Fatalf("Login: %v", err)
	}

	var cleared atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.Expire(ctx)
			if err != nil {
				t.Errorf("Expire: %v", err)
			}
			if ok {
				cleared.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := cleared.Load(); got != 1 {
		t.Errorf("session cleared %d times, want exactly 1", got)
	}
	if _, err := kv.Get(ctx, TokenKey); !errors.Is(err, kvstore.ErrNotFound) {
		t.Error("credential still present after expiry")
	}
	if _, ok := s.Principal(); ok {
		t.Error("principal still present after expiry")
	}
}

func TestExpire_NoSession(t *testing.T) {
	t.Parallel()
	s := New(newTestKV(t), 0)

	ok, err := s.Expire(context.Background())
	if err != nil || ok {
		t.Errorf("Expire() on empty session = %v, %v; want false, nil", ok, err)
	}
}

func TestSubscribe(t *testing.T) {
	t.Parallel()
	s := New(newTestKV(t), 0)

	var got []Snapshot
	unsubscribe := s.Subscribe(func(snap Snapshot) { got = append(got, snap) })

	_ = s.Login(alice)
	_ = s.Logout(context.Background())
	unsubscribe()
	_ = s.Login(alice)

	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if got[0].Principal == nil || got[0].Principal.ID != alice.ID {
		t.Errorf("first snapshot = %+v", got[0])
	}
	if got[1].Principal != nil {
		t.Errorf("second snapshot should have no principal: %+v", got[1])
	}
}
