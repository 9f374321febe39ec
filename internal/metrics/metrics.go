// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Gateway Metrics
	GatewayRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_requests_total",
			Help: "Total number of outbound API calls by outcome",
		},
		[]string{"method", "outcome"},
	)

	GatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "Outbound API call latency in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method"},
	)

	GatewayAuthExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_auth_expired_total",
			Help: "Total number of authentication-rejected responses",
		},
	)

	// Store Metrics
	StoreDispatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_dispatches_total",
			Help: "Total number of actions dispatched to the state store",
		},
		[]string{"action"},
	)

	StoreStaleResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_stale_responses_total",
			Help: "Fetch resolutions ignored because a newer request was already applied",
		},
		[]string{"slice"},
	)

	StoreInflight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "store_inflight_requests",
			Help: "Number of fetches awaiting resolution",
		},
	)

	// Session Metrics
	SessionEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_events_total",
			Help: "Session lifecycle transitions",
		},
		[]string{"event"},
	)

	// Guard Metrics
	GuardDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guard_decisions_total",
			Help: "Route guard outcomes",
		},
		[]string{"outcome"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// View Host Metrics
	ViewRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "view_requests_total",
			Help: "Total number of view host requests",
		},
		[]string{"method", "route", "status"},
	)

	ViewRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "view_request_duration_seconds",
			Help:    "View host request latency in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"method", "route"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
		[]string{"message_type"},
	)
)

// RecordGatewayRequest records one outbound call.
func RecordGatewayRequest(method, outcome string, duration time.Duration) {
	GatewayRequests.WithLabelValues(method, outcome).Inc()
	GatewayRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
	if outcome == "auth_expired" {
		GatewayAuthExpired.Inc()
	}
}

// RecordDispatch records a dispatched action by name.
func RecordDispatch(action string) {
	StoreDispatches.WithLabelValues(action).Inc()
}

// RecordStaleResponse records a fetch resolution the reducer ignored.
func RecordStaleResponse(slice string) {
	StoreStaleResponses.WithLabelValues(slice).Inc()
}

// TrackInflight adjusts the in-flight fetch gauge.
func TrackInflight(inc bool) {
	if inc {
		StoreInflight.Inc()
	} else {
		StoreInflight.Dec()
	}
}

// RecordSessionEvent records a session lifecycle transition.
func RecordSessionEvent(event string) {
	SessionEvents.WithLabelValues(event).Inc()
}

// RecordGuardDecision records a route guard outcome.
func RecordGuardDecision(outcome string) {
	GuardDecisions.WithLabelValues(outcome).Inc()
}

// RecordViewRequest records a view host request.
func RecordViewRequest(method, route, status string, duration time.Duration) {
	ViewRequests.WithLabelValues(method, route, status).Inc()
	ViewRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
