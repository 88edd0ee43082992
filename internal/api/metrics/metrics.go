// Package metrics defines and registers all custom Prometheus metrics for the
// SMD console gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init;
// the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "smd_console"

// ── Upstream (backend API) metrics ───────────────────────────────────────────

// UpstreamRequestsTotal counts calls made to the remote SMD backend.
// Labels:
//   - service: the client service issuing the call (auth, syllabi, users, notifications)
//   - outcome: "ok", "unauthorized", "client_error", "server_error", "transport_error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests issued to the SMD backend, by service and outcome.",
	},
	[]string{"service", "outcome"},
)

// UpstreamRequestDuration measures the latency of backend calls end-to-end.
// Label:
//   - service: the client service issuing the call
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests to the SMD backend.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"service"},
)

// ── Session metrics ──────────────────────────────────────────────────────────

// LoginsTotal counts login attempts through the console.
// Labels:
//   - mode: "backend" (real authentication) or "demo" (fabricated identity)
//   - outcome: "ok" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by mode and outcome.",
	},
	[]string{"mode", "outcome"},
)

// SessionInvalidationsTotal counts sessions cleared locally, whether by an
// explicit logout or an upstream 401.
var SessionInvalidationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_invalidations_total",
		Help:      "Total number of console sessions cleared (logout or upstream 401).",
	},
)

// ── Audit metrics ────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of audit entries waiting in each writer
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each writer worker channel.",
	},
	[]string{"worker_id"},
)

// AuditWriteErrorsTotal counts audit entries that failed to persist.
var AuditWriteErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_errors_total",
		Help:      "Total number of audit entries that could not be written.",
	},
)
