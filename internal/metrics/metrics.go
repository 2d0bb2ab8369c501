// Package metrics defines and registers the custom Prometheus metrics of the
// cinema portal. It is the single source of truth for metric names, labels
// and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// initialisation; the router exposes them together with the HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cinema_portal"

// Restore outcomes.
const (
	RestoreAuthenticated = "authenticated"
	RestoreAnonymous     = "anonymous"
	RestoreExpired       = "expired"
	RestoreCorrupt       = "corrupt"
	RestoreStorageError  = "storage_error"
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionRestoresTotal counts session restores at the start of a request.
// Label:
//   - outcome: authenticated, anonymous, expired, corrupt or storage_error
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of session restores, by outcome.",
	},
	[]string{"outcome"},
)

// SessionLoginsTotal counts sessions started by a successful login.
var SessionLoginsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_logins_total",
		Help:      "Total number of sessions started.",
	},
)

// SessionLogoutsTotal counts sessions that were cleared while holding a token.
var SessionLogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_logouts_total",
		Help:      "Total number of sessions ended.",
	},
)

// ── Navigation metrics ────────────────────────────────────────────────────────

// RouteGateDecisionsTotal counts route gate evaluations.
// Labels:
//   - gate: "authenticated" or "admin"
//   - decision: "allowed" or "redirected"
var RouteGateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "route_gate_decisions_total",
		Help:      "Total number of route gate evaluations, by gate and decision.",
	},
	[]string{"gate", "decision"},
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts outbound calls to the platform backends.
// Labels:
//   - backend: "auth" or "api"
//   - status: HTTP status code, or "error" when no response was received
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of backend requests, by backend and response status.",
	},
	[]string{"backend", "status"},
)
