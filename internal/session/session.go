// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

// Package session holds the authenticated principal for the running client.
//
// The principal and its bearer credential are mirrored into the durable
// local store under two fixed keys so a restart restores the session.
// Restore must complete before any role-gated view is rendered; Ready
// closes once it has.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pawshop/internal/kvstore"
	"github.com/tomtom215/pawshop/internal/logging"
	"github.com/tomtom215/pawshop/internal/metrics"
	"github.com/tomtom215/pawshop/internal/models"
)

// Durable keys.
const (
	TokenKey = "pawshop:token"
	UserKey  = "pawshop:user"
)

// DefaultTTL is the intended expiration window written with both keys.
const DefaultTTL = 7 * 24 * time.Hour

// ErrEmptyCredential is returned by Persist for a blank token.
var ErrEmptyCredential = errors.New("session: empty credential")

// Snapshot is the guard's view of the session at one instant.
type Snapshot struct {
	Restored  bool
	Principal *models.Principal
}

// Store is the session store. It is the single writer of the principal.
type Store struct {
	kv  kvstore.KV
	ttl time.Duration

	mu        sync.RWMutex
	principal *models.Principal
	restored  bool

	ready     chan struct{}
	readyOnce sync.Once

	subMu     sync.Mutex
	nextSubID int
	subs      map[int]func(Snapshot)
}

// New creates a session store over kv. A non-positive ttl uses DefaultTTL.
func New(kv kvstore.KV, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		kv:    kv,
		ttl:   ttl,
		ready: make(chan struct{}),
		subs:  make(map[int]func(Snapshot)),
	}
}

// Restore populates the in-memory principal from the durable store. Both
// keys must be present and well-formed; a malformed pair is removed and
// treated as absent. Restore always marks the store restored, even when
// it returns an error, so the guard never waits forever.
func (s *Store) Restore(ctx context.Context) error {
	principal, err := s.load(ctx)

	s.mu.Lock()
	s.principal = principal
	s.restored = true
	s.mu.Unlock()

	s.readyOnce.Do(func() { close(s.ready) })
	metrics.RecordSessionEvent("restore")

	if principal != nil {
		logging.Ctx(ctx).Info().
			Str("principal_id", principal.ID).
			Str("role", principal.Role.String()).
			Msg("Session restored")
	} else {
		logging.Ctx(ctx).Debug().Msg("No session to restore")
	}

	s.notify()
	return err
}

func (s *Store) load(ctx context.Context) (*models.Principal, error) {
	token, err := s.kv.Get(ctx, TokenKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credential: %w", err)
	}

	raw, err := s.kv.Get(ctx, UserKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read principal: %w", err)
	}

	var p models.Principal
	if len(token) == 0 {
		err = ErrEmptyCredential
	} else if err = json.Unmarshal(raw, &p); err == nil {
		err = p.Validate()
	}
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Discarding malformed stored session")
		if delErr := s.kv.Delete(ctx, TokenKey, UserKey); delErr != nil {
			return nil, fmt.Errorf("discard malformed session: %w", delErr)
		}
		return nil, nil
	}
	return &p, nil
}

// Ready is closed once the first Restore has completed.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Restored reports whether Restore has completed.
func (s *Store) Restored() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.restored
}

// Persist writes the credential and principal to the durable store. The
// auth flow calls it after a successful login or registration, before Login.
func (s *Store) Persist(ctx context.Context, token string, p models.Principal) error {
	if token == "" {
		return ErrEmptyCredential
	}
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal principal: %w", err)
	}

	if err := s.kv.Set(ctx, TokenKey, []byte(token), s.ttl); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	if err := s.kv.Set(ctx, UserKey, data, s.ttl); err != nil {
		_ = s.kv.Delete(ctx, TokenKey)
		return fmt.Errorf("write principal: %w", err)
	}
	return nil
}

// Login sets the in-memory principal. It performs no network call and
// assumes the credential was persisted by the caller.
func (s *Store) Login(p models.Principal) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.principal = &p
	s.mu.Unlock()

	metrics.RecordSessionEvent("login")
	logging.Info().Str("principal_id", p.ID).Str("role", p.Role.String()).Msg("Logged in")
	s.notify()
	return nil
}

// Logout clears the in-memory principal and both durable keys. The keys
// are removed even when ctx is already canceled.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.principal = nil
	err := s.kv.Delete(context.WithoutCancel(ctx), TokenKey, UserKey)
	s.mu.Unlock()

	metrics.RecordSessionEvent("logout")
	logging.Ctx(ctx).Info().Msg("Logged out")
	s.notify()
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Expire tears the session down after an authentication-rejected response.
// It reports true only for the call that actually cleared something, so
// concurrent 401s clear the durable keys exactly once.
func (s *Store) Expire(ctx context.Context) (bool, error) {
	ctx = context.WithoutCancel(ctx)
	s.mu.Lock()
	present := s.principal != nil
	if !present {
		if _, err := s.kv.Get(ctx, TokenKey); err == nil {
			present = true
		}
	}
	if !present {
		s.mu.Unlock()
		return false, nil
	}
	s.principal = nil
	err := s.kv.Delete(ctx, TokenKey, UserKey)
	s.mu.Unlock()

	metrics.RecordSessionEvent("expire")
	logging.Ctx(ctx).Warn().Msg("Session expired, credential cleared")
	s.notify()
	if err != nil {
		return true, fmt.Errorf("clear expired session: %w", err)
	}
	return true, nil
}

// HasRole reports whether the current principal's role is one of roles.
// It is false when there is no principal or roles is empty.
func (s *Store) HasRole(roles ...models.Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.principal == nil {
		return false
	}
	return models.Roles(roles).Contains(s.principal.Role)
}

// Principal returns a copy of the current principal.
func (s *Store) Principal() (models.Principal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.principal == nil {
		return models.Principal{}, false
	}
	return *s.principal, true
}

// Snapshot returns the restored flag and principal together.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{Restored: s.restored}
	if s.principal != nil {
		p := *s.principal
		snap.Principal = &p
	}
	return snap
}

// Token reads the credential from the durable store on every call. It
// returns "" without error when no credential is stored.
func (s *Store) Token(ctx context.Context) (string, error) {
	token, err := s.kv.Get(ctx, TokenKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read credential: %w", err)
	}
	return string(token), nil
}

// Subscribe registers fn to receive a snapshot after every session change.
// The returned function unsubscribes.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify() {
	snap := s.Snapshot()
	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
