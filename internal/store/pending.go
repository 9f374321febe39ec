// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package store

import (
	"context"
	"errors"
)

// Pending tracks one background service call. Callers that render from
// state can ignore it; tests and the CLI wait on it.
type Pending struct {
	Action string

	done  chan struct{}
	err   error
	value any
}

func newPending(action string) *Pending {
	return &Pending{Action: action, done: make(chan struct{})}
}

// resolved returns an already-completed Pending.
func resolved(action string, err error) *Pending {
	p := newPending(action)
	p.finish(nil, err)
	return p
}

// Resolved returns a Pending already completed with err, for actions that
// only touch local state.
func Resolved(action string, err error) *Pending {
	return resolved(action, err)
}

func (p *Pending) finish(value any, err error) {
	p.value = value
	p.err = err
	close(p.done)
}

// Done is closed when the call has resolved and its result is in the state.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Err returns the call's error once Done is closed, or nil before.
func (p *Pending) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// Value returns the call's result (e.g. the created product) once Done is closed.
func (p *Pending) Value() any {
	select {
	case <-p.done:
		return p.value
	default:
		return nil
	}
}

// Wait blocks until the call resolves or ctx ends.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitAll waits for every pending call and joins their errors.
func WaitAll(ctx context.Context, pending ...*Pending) error {
	var errs []error
	for _, p := range pending {
		if p == nil {
			continue
		}
		if err := p.Wait(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
