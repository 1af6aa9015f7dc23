// Package metrics defines all custom Prometheus metrics for the task system.
// It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskhive"

// ── Task metrics ──────────────────────────────────────────────────────────────

// TaskMutationsTotal counts committed task mutations.
// Label:
//   - operation: "create", "update", or "delete"
var TaskMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_mutations_total",
		Help:      "Total number of committed task mutations, by operation.",
	},
	[]string{"operation"},
)

// ── Realtime metrics ──────────────────────────────────────────────────────────

// ConnectedClients tracks the number of currently open websocket sessions.
var ConnectedClients = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "connected_clients",
		Help:      "Current number of open realtime sessions.",
	},
)

// ConnectionsTotal counts connection attempts on the realtime channel.
// Label:
//   - outcome: "accepted" or "rejected"
var ConnectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "connections_total",
		Help:      "Total realtime connection attempts, by outcome.",
	},
	[]string{"outcome"},
)

// EventsPublishedTotal counts lifecycle events handed to the fan-out.
// Label:
//   - event: wire event name ("newTask", "taskUpdated", "taskDeleted")
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total lifecycle events published to the fan-out, by event name.",
	},
	[]string{"event"},
)

// NotificationsDroppedTotal counts frames dropped because a session's send
// buffer was full. Delivery is best-effort; drops are expected under slow
// consumers.
var NotificationsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Total notifications dropped due to a full session buffer.",
	},
)
