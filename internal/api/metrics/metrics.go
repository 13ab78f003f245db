// Package metrics defines the custom Prometheus metrics of the participation
// API. Every metric is registered with the default registry on import through
// promauto and exposed on /metrics next to the echo request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "participation"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successful registrations.
// Label:
//   - role: "Citizen", "Mayor" or "Moderator"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of users registered, by role.",
	},
	[]string{"role"},
)

// ── Proposal metrics ──────────────────────────────────────────────────────────

// ProposalsCreatedTotal counts proposals created by mayors.
var ProposalsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proposals_created_total",
		Help:      "Total number of proposals created.",
	},
)

// VotesCastTotal counts accepted votes, including replacements.
// Label:
//   - in_favor: "true" or "false"
var VotesCastTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_cast_total",
		Help:      "Total number of votes cast, by position.",
	},
	[]string{"in_favor"},
)

// CommentsTotal counts comment mutations.
// Label:
//   - action: "added" or "removed"
var CommentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_total",
		Help:      "Total number of comments added or removed by moderators.",
	},
	[]string{"action"},
)

// ── Activity trail metrics ────────────────────────────────────────────────────

// ActivityRecordedTotal counts activity events persisted by the dispatcher.
// Label:
//   - kind: the activity kind (e.g. "vote_cast")
var ActivityRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_recorded_total",
		Help:      "Total number of proposal activity events recorded.",
	},
	[]string{"kind"},
)

// ActivityErrorsTotal counts activity events that could not be recorded.
// Label:
//   - reason: "record_failed" or "queue_full"
var ActivityErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of proposal activity events that were dropped or failed.",
	},
	[]string{"reason"},
)

// ActivityQueueDepth tracks pending events in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityRecordDuration measures how long recording a single event takes.
var ActivityRecordDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_record_duration_seconds",
		Help:      "Duration of activity recording from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)
