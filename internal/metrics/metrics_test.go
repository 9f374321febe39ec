// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordGatewayRequest(t *testing.T) {
	beforeOK := testutil.ToFloat64(GatewayRequests.WithLabelValues("GET", "ok"))
	beforeExpired := testutil.ToFloat64(GatewayAuthExpired)

	RecordGatewayRequest("GET", "ok", 20*time.Millisecond)
	RecordGatewayRequest("GET", "auth_expired", 5*time.Millisecond)

	if got := testutil.ToFloat64(GatewayRequests.WithLabelValues("GET", "ok")) - beforeOK; got != 1 {
		t.Errorf("ok requests delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(GatewayAuthExpired) - beforeExpired; got != 1 {
		t.Errorf("auth expired delta = %v, want 1", got)
	}
}

func TestTrackInflight(t *testing.T) {
	before := testutil.ToFloat64(StoreInflight)
	TrackInflight(true)
	TrackInflight(true)
	TrackInflight(false)
	if got := testutil.ToFloat64(StoreInflight) - before; got != 1 {
		t.Errorf("inflight delta = %v, want 1", got)
	}
	TrackInflight(false)
}

func TestRecordCounters(t *testing.T) {
	tests := []struct {
		name   string
		record func()
		read   func() float64
	}{
		{"dispatch", func() { RecordDispatch("products/fetch") }, func() float64 {
			return testutil.ToFloat64(StoreDispatches.WithLabelValues("products/fetch"))
		}},
		{"stale", func() { RecordStaleResponse("products.list") }, func() float64 {
			return testutil.ToFloat64(StoreStaleResponses.WithLabelValues("products.list"))
		}},
		{"session", func() { RecordSessionEvent("login") }, func() float64 {
			return testutil.ToFloat64(SessionEvents.WithLabelValues("login"))
		}},
		{"guard", func() { RecordGuardDecision("render") }, func() float64 {
			return testutil.ToFloat64(GuardDecisions.WithLabelValues("render"))
		}},
		{"view", func() { RecordViewRequest("GET", "/view/*", "200", time.Millisecond) }, func() float64 {
			return testutil.ToFloat64(ViewRequests.WithLabelValues("GET", "/view/*", "200"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.read()
			tt.record()
			if got := tt.read() - before; got != 1 {
				t.Errorf("delta = %v, want 1", got)
			}
		})
	}
}
