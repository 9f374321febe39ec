// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

// Package store is the centralized application state store.
//
// State changes only through Dispatch, which runs the pure Reduce function
// under a mutex so no two reductions interleave. The action creators
// (FetchProducts, DeleteProduct, ...) dispatch synchronously, run the
// service call in the background and return a *Pending the caller may
// ignore or wait on.
//
// Each fetch takes the next sequence number for its slice; Reduce ignores
// a resolution older than the last one applied, so when the same fetch is
// re-dispatched before the first resolves, the newer request wins
// regardless of arrival order.
package store

import (
	"context"
	"sync"

	"github.com/tomtom215/pawshop/internal/logging"
	"github.com/tomtom215/pawshop/internal/metrics"
)

// ErrorHook is told about every failed service call, after the failure
// has been reduced into the state.
type ErrorHook func(ctx context.Context, err error)

// Option configures a Store.
type Option func(*Store)

// WithErrorHook installs hook.
func WithErrorHook(hook ErrorHook) Option {
	return func(s *Store) { s.onError = hook }
}

// Store holds the current State.
type Store struct {
	api API

	mu      sync.Mutex
	state   State
	seq     map[Key]uint64
	subs    map[int]func(State)
	nextSub int

	onError ErrorHook
	wg      sync.WaitGroup
}

// New creates an empty store over api.
func New(api API, opts ...Option) *Store {
	s := &Store{
		api:  api,
		seq:  make(map[Key]uint64),
		subs: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetErrorHook replaces the error hook. Used by the composition root,
// which is built after the store.
func (s *Store) SetErrorHook(hook ErrorHook) {
	s.mu.Lock()
	s.onError = hook
	s.mu.Unlock()
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces a into the state and notifies subscribers. Subscribers
// run under the store lock and must not dispatch.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatchLocked(a)
}

func (s *Store) dispatchLocked(a Action) State {
	metrics.RecordDispatch(a.Name())
	if IsStale(s.state, a) {
		key := staleKey(a)
		metrics.RecordStaleResponse(string(key))
		logging.Debug().Str("slice", string(key)).Msg("Ignoring out-of-date response")
	}

	version := s.state.Version
	s.state = Reduce(s.state, a)
	s.state.Version = version + 1

	for _, fn := range s.subs {
		fn(s.state)
	}
	return s.state
}

// startFetch assigns the next sequence number for key and marks it loading.
func (s *Store) startFetch(key Key) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[key]++
	seq := s.seq[key]
	s.dispatchLocked(FetchStarted{Key: key, Seq: seq})
	return seq
}

// Subscribe registers fn to receive every new state. The returned function
// unsubscribes.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Reset empties the state. In-flight responses issued before the reset are ignored.
func (s *Store) Reset() {
	s.Dispatch(Reset{})
}

// Drain blocks until every background call started so far has resolved.
func (s *Store) Drain() {
	s.wg.Wait()
}

func (s *Store) errorHook() ErrorHook {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onError
}

func staleKey(a Action) Key {
	switch act := a.(type) {
	case FetchSucceeded:
		return act.Key
	case FetchFailed:
		return act.Key
	}
	return ""
}
