package metrics

import (
	"github.com/prometheus/client_golang/prometheus"          // Collector types
	"github.com/prometheus/client_golang/prometheus/promauto" // Registers on the default registry
)

const namespace = "messaging" // Prefix of every metric name

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "invalid", "conflict" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// MessagesSentTotal counts messages broadcast by managers.
var MessagesSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of messages broadcast by managers.",
	},
)

// AccessDeniedTotal counts dashboard visits redirected by the role gate.
// Label:
//   - required_role: the role the route demanded
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests redirected for holding the wrong role.",
	},
	[]string{"required_role"},
)

// RequestDuration measures HTTP request latency.
// Labels:
//   - method: HTTP method
//   - route:  the matched route pattern, or "unmatched"
//   - status: HTTP status code
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)
