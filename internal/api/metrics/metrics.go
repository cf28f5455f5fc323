// Package metrics defines and registers all custom Prometheus metrics for the
// marketplace API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register themselves with the default Prometheus registry at init
// time via promauto; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Order lifecycle metrics ───────────────────────────────────────────────────

// OrdersCreatedTotal counts newly placed orders.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders placed.",
	},
)

// OrderTransitionsTotal counts status transitions that committed.
// Labels:
//   - from: the status the order left (e.g. "delivered")
//   - to: the status the order entered (e.g. "completed")
var OrderTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_transitions_total",
		Help:      "Total number of committed order status transitions.",
	},
	[]string{"from", "to"},
)

// TransitionsRejectedTotal counts transition attempts that were rejected.
// Label:
//   - reason: "invalid_transition" (table lookup failed) or
//     "precondition_failed" (the status changed under a concurrent request)
var TransitionsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_transitions_rejected_total",
		Help:      "Total number of rejected order status transitions, by reason.",
	},
	[]string{"reason"},
)

// ── Ledger metrics ────────────────────────────────────────────────────────────

// LedgerMovementsTotal counts balance movements.
// Label:
//   - kind: "charge" (order creation debit), "payout" (freelancer credit),
//     "refund" (client credit on cancellation), "topup" (add-balance)
var LedgerMovementsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_movements_total",
		Help:      "Total number of account balance movements, by kind.",
	},
	[]string{"kind"},
)

// ── Review & rating metrics ───────────────────────────────────────────────────

// ReviewsCreatedTotal counts reviews accepted by the review gate.
var ReviewsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_created_total",
		Help:      "Total number of reviews created.",
	},
)

// RatingRecomputeDuration measures how long a single gig rating recompute takes.
// Label:
//   - result: "ok" or "error"
var RatingRecomputeDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rating_recompute_duration_seconds",
		Help:      "Duration of gig rating recomputation from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// RatingQueueDepth tracks the number of recompute jobs waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var RatingQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "rating_queue_depth",
		Help:      "Current number of rating recompute jobs pending in each worker channel.",
	},
	[]string{"worker_id"},
)

// ── Messaging metrics ─────────────────────────────────────────────────────────

// MessagesCreatedTotal counts messages appended to order threads.
var MessagesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_created_total",
		Help:      "Total number of order messages created.",
	},
)
