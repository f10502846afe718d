// Package metrics defines and registers all custom Prometheus metrics for the
// job board API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation (promauto); /metrics exposes them alongside the HTTP
// request metrics from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobboard"

// ── Cache metrics ─────────────────────────────────────────────────────────────

// CacheRequestsTotal counts cache lookups.
// Labels:
//   - resource: the resource namespace of the key (e.g. "job")
//   - result: "hit", "miss", "error" (store failure, served as a miss) or "shared" (coalesced with an in-flight miss)
var CacheRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_requests_total",
		Help:      "Total number of query cache lookups, by resource and result.",
	},
	[]string{"resource", "result"},
)

// CacheInvalidationsTotal counts prefix invalidations.
// Label:
//   - resource: the resource type whose write triggered the invalidation
var CacheInvalidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_invalidations_total",
		Help:      "Total number of cache invalidations triggered by writes.",
	},
	[]string{"resource"},
)

// ── Authorization metrics ─────────────────────────────────────────────────────

// AuthzDenialsTotal counts rejected requests.
// Label:
//   - reason: "unauthenticated" or "forbidden"
var AuthzDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denials_total",
		Help:      "Total number of requests denied by the authorization engine.",
	},
	[]string{"reason"},
)

// ── Task queue metrics ────────────────────────────────────────────────────────

// TasksTotal counts task outcomes.
// Labels:
//   - task: the task name (e.g. "send_welcome_email")
//   - result: "enqueued", "delivered", "failed" (retries exhausted) or "dropped" (worker buffer full)
var TasksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_total",
		Help:      "Total number of asynchronous tasks, by name and outcome.",
	},
	[]string{"task", "result"},
)

// TaskQueueDepth tracks the current number of tasks waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var TaskQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "task_queue_depth",
		Help:      "Current number of tasks pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// TaskDuration measures how long a task takes from dequeue to completion, retries included.
// Label:
//   - result: "delivered" or "failed"
var TaskDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "task_duration_seconds",
		Help:      "Duration of task execution including retries.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── Domain metrics ────────────────────────────────────────────────────────────

// ApplicationsSubmittedTotal counts stored applications.
var ApplicationsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_submitted_total",
		Help:      "Total number of job applications submitted.",
	},
)

// SignupsTotal counts new accounts.
// Label:
//   - role: "applicant" or "employer"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)
