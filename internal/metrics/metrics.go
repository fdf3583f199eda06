// Package metrics defines and registers the custom Prometheus metrics of the
// payment console. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "payment_console"

// ── Gateway metrics ───────────────────────────────────────────────────────────

// GatewayRequestsTotal counts calls to the remote payment service.
// Labels:
//   - operation: "create", "status" or "list"
//   - outcome: "ok", "service_error" or "network_error"
var GatewayRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_requests_total",
		Help:      "Total number of payment service requests, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// GatewayRequestDuration measures the round trip of a payment service call.
var GatewayRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_request_duration_seconds",
		Help:      "Duration of payment service requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Console metrics ───────────────────────────────────────────────────────────

// StaleResponsesTotal counts responses dropped because the session changed
// while they were in flight.
var StaleResponsesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_responses_total",
		Help:      "Total number of payment service responses discarded after a session change.",
	},
	[]string{"operation"},
)

// DashboardPollsTotal counts dashboard refreshes run by the poller.
// Label:
//   - trigger: "initial", "tick" or "manual"
var DashboardPollsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dashboard_polls_total",
		Help:      "Total number of dashboard refreshes run by the poller.",
	},
	[]string{"trigger"},
)

// LoginsTotal counts login attempts by result ("success" or "failure").
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registrations by result
// ("success", "duplicate" or "invalid").
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts.",
	},
	[]string{"result"},
)
