package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "runipet_http_requests_total",
			Help: "Total HTTP requests handled",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "runipet_http_request_duration_seconds",
			Help: "HTTP request duration in seconds",
		},
		[]string{"method", "path"},
	)

	// RewardClaims counts settlement outcomes so double-claim attempts
	// show up on dashboards.
	RewardClaims = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "runipet_reward_claims_total",
			Help: "Reward claim attempts by outcome",
		},
		[]string{"outcome"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCount, RequestDuration, RewardClaims)
}
