// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

type fakeStarter struct {
	fails  atomic.Int32
	starts atomic.Int32
}

func (f *fakeStarter) Start(context.Context) error {
	f.starts.Add(1)
	if f.fails.Add(-1) >= 0 {
		return errors.New("store locked")
	}
	return nil
}

func TestSessionRestoreService_Serve(t *testing.T) {
	ok := &fakeStarter{}
	if err := NewSessionRestoreService(ok).Serve(context.Background()); !errors.Is(err, suture.ErrDoNotRestart) {
		t.Errorf("err = %v, want ErrDoNotRestart", err)
	}

	failing := &fakeStarter{}
	failing.fails.Store(1)
	err := NewSessionRestoreService(failing).Serve(context.Background())
	if err == nil || errors.Is(err, suture.ErrDoNotRestart) {
		t.Errorf("err = %v, want restore failure", err)
	}
}

func TestSessionRestoreService_RetriedBySupervisor(t *testing.T) {
	starter := &fakeStarter{}
	starter.fails.Store(2)

	sup := suture.New("test-sup", suture.Spec{
		FailureThreshold: 10,
		FailureBackoff:   5 * time.Millisecond,
		Timeout:          time.Second,
	})
	sup.Add(NewSessionRestoreService(starter))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for starter.starts.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	// Give the supervisor a moment to restart it again if it wrongly would.
	time.Sleep(30 * time.Millisecond)
	cancel()
	<-errCh

	if got := starter.starts.Load(); got != 3 {
		t.Errorf("starts = %d, want 3", got)
	}
}
