// Package metrics defines and registers all custom Prometheus metrics for the
// books API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Collectors are registered with the default Prometheus registry on package
// initialisation; /metrics serves them next to echoprometheus' HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "books_api"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthOperationsTotal counts auth operations by outcome.
// Labels:
//   - operation: "signup", "login", "refresh", "logout"
//   - result: "success", "rejected", "error"
var AuthOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_operations_total",
		Help:      "Total number of auth operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// GateRejectionsTotal counts requests turned away by the authorization gate.
// Label:
//   - reason: "missing_header", "malformed_header", "expired", "invalid",
//     "wrong_kind", "revoked", "unknown_user"
var GateRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_gate_rejections_total",
		Help:      "Total number of requests rejected by the authorization gate.",
	},
	[]string{"reason"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsTotal counts audit events by what happened to them.
// Label:
//   - result: "stored", "dropped" (queue full), "failed" (repository error)
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of auth audit events, by result.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks events waiting in each audit worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Book metrics ──────────────────────────────────────────────────────────────

// BooksCreatedTotal counts books added to any collection.
var BooksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "books_created_total",
		Help:      "Total number of books created.",
	},
)
