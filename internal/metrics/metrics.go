// Package metrics holds the Prometheus counters exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	InvitationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rpgmanager_invitations_total",
		Help: "Campaign invitation deliveries, partitioned by result.",
	}, []string{"result"})

	ScenarioClonesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rpgmanager_scenario_clones_total",
		Help: "Scenario clone attempts during import, partitioned by result.",
	}, []string{"result"})

	MemberActivationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rpgmanager_member_activations_total",
		Help: "Invited members that accepted and became active.",
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rpgmanager_http_requests_total",
		Help: "HTTP requests by method, matched route and status code.",
	}, []string{"method", "route", "code"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rpgmanager_http_request_duration_seconds",
		Help:    "HTTP request latency by method and matched route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	PanicsRecoveredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rpgmanager_panics_recovered_total",
		Help: "Handler panics turned into 500 responses.",
	})
)

// Result maps an error to a result label.
func Result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
