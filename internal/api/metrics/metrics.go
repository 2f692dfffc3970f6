// Package metrics defines and registers all custom Prometheus metrics for the
// dochub API. It is the single source of truth for metric names, labels, and
// help strings. Metrics self-register with the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dochub"

// AuthzDenialsTotal counts requests rejected by the permission resolver.
// Label:
//   - operation: the access class that was denied ("view", "edit", "delete")
var AuthzDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denials_total",
		Help:      "Total number of requests denied by the permission resolver.",
	},
	[]string{"operation"},
)

// UploadsTotal counts successfully stored resource uploads.
// Label:
//   - kind: "post" or "training"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of resources uploaded, by kind.",
	},
	[]string{"kind"},
)

// ShareOperationsTotal counts share-grant writes.
// Label:
//   - action: "upsert" or "remove"
var ShareOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "share_operations_total",
		Help:      "Total number of share grant operations, by action.",
	},
	[]string{"action"},
)

// NotificationsSentTotal counts expiration reminder emails delivered to the
// relay.
var NotificationsSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of expiration reminder emails sent.",
	},
)

// NotificationErrorsTotal counts notifier failures.
// Label:
//   - reason: "send_failed" or "scan_failed"
var NotificationErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_errors_total",
		Help:      "Total number of notifier failures, by reason.",
	},
	[]string{"reason"},
)
