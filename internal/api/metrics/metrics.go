// Package metrics defines and registers all custom Prometheus metrics of the
// dashboard gateway. Vectors register with the default registry on package
// init through promauto and are exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// ── Access control ────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts navigation decisions.
// Labels:
//   - view: catalogued view name (e.g. "admin", "financial")
//   - outcome: "unauthenticated", "authorized_direct", "authorized_elevated" or "misrouted"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of view navigation decisions, by view and outcome.",
	},
	[]string{"view", "outcome"},
)

// GuardFallbacksTotal counts misroutes sent to the neutral landing because
// the role had no home view.
var GuardFallbacksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_fallbacks_total",
		Help:      "Total number of misrouted navigations without a home view for the role.",
	},
)

// ── Sessions ──────────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "unavailable"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// LogoutsTotal counts ended sessions.
// Label:
//   - reason: "logout" or "expired"
var LogoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of ended sessions, by reason.",
	},
	[]string{"reason"},
)

// SessionLookupsTotal counts identity resolutions per request.
// Label:
//   - result: "restored" or "absent"
var SessionLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_lookups_total",
		Help:      "Total number of per-request identity resolutions, by result.",
	},
	[]string{"result"},
)

// ── Access audit ──────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of access events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of access events pending in each audit worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsTotal counts audit records by fate.
// Label:
//   - result: "stored", "failed" or "dropped"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of access events handled by the audit dispatcher, by result.",
	},
	[]string{"result"},
)

// ── HTTP ──────────────────────────────────────────────────────────────────────

// HTTPRequestDuration measures request latency.
// Labels:
//   - method: HTTP method
//   - route: registered route pattern (e.g. "/api/v1/sales/users/:id")
//   - status: response status code
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests handled by the gateway.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)
