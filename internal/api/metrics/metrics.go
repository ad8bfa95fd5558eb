// Package metrics defines and registers all custom Prometheus metrics for
// the HorizontOS API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "horizontos"

// PointsAwardedTotal counts points credited to users.
// Label:
//   - event: the catalog event that earned the points (e.g. "game_won")
var PointsAwardedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "points_awarded_total",
		Help:      "Total points credited, by earning event.",
	},
	[]string{"event"},
)

// BadgesUnlockedTotal counts badge unlocks.
var BadgesUnlockedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "badges_unlocked_total",
		Help:      "Total badges unlocked, by badge id.",
	},
	[]string{"badge"},
)

// RoleChangesTotal counts role authority decisions that were applied.
var RoleChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_changes_total",
		Help:      "Total role changes applied, by new role.",
	},
	[]string{"role"},
)

// MessagesSentTotal counts chat turns.
// Label:
//   - kind: "direct" for persisted peer messages, "assistant" for synthetic turns
var MessagesSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total chat messages sent, by kind.",
	},
	[]string{"kind"},
)

// NotificationEmailsTotal counts email fan-out outcomes.
// Label:
//   - result: "sent", "skipped" (no recipient address) or "error"
var NotificationEmailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_emails_total",
		Help:      "Total notification email attempts, by result.",
	},
	[]string{"result"},
)

// LiveStreams tracks currently open websocket subscriptions.
// Label:
//   - kind: "conversation" or "notifications"
var LiveStreams = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "live_streams",
		Help:      "Currently open live subscriptions, by kind.",
	},
	[]string{"kind"},
)

// ScoreQueueDepth tracks pending score events in each dispatcher worker.
var ScoreQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "score_queue_depth",
		Help:      "Current number of score events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
