// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

/*
Package metrics provides Prometheus collectors for the Pawshop client runtime.

Collectors are package-level and registered with the default registry via
promauto. The view host exposes them at /metrics.

# Available Metrics

Gateway Metrics:
  - gateway_requests_total: Outbound API calls (counter)
    Labels: method, outcome (ok, network, timeout, auth_expired, rejected, server, unavailable)
  - gateway_request_duration_seconds: Outbound call latency (histogram)
    Labels: method
  - gateway_auth_expired_total: 401 responses (counter)

Store Metrics:
  - store_dispatches_total: Dispatched actions (counter)
    Labels: action
  - store_stale_responses_total: Fetch resolutions ignored as out of date (counter)
    Labels: slice
  - store_inflight_requests: Fetches awaiting resolution (gauge)

Session and Guard Metrics:
  - session_events_total: Session transitions (counter)
    Labels: event (restore, login, logout, expire)
  - guard_decisions_total: Route guard outcomes (counter)
    Labels: outcome

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge), 0=closed, 1=half-open, 2=open
  - circuit_breaker_state_transitions_total: State transitions (counter)

View Host Metrics:
  - view_requests_total / view_request_duration_seconds
  - websocket_connections, websocket_messages_sent_total
*/
package metrics
