package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metrics for analytics requests and store reads
var (
	OverviewDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_overview_duration_seconds",
			Help:    "Duration of analytics overview and metric requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"role", "metric"},
	)

	OverviewFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_overview_failures_total",
			Help: "Total number of failed analytics requests",
		},
		[]string{"role", "metric"},
	)

	StoreQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_store_query_duration_seconds",
			Help:    "Duration of read queries against the marketplace store",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query"},
	)

	UnknownPeriodTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "analytics_unknown_period_total",
			Help: "Total number of requests whose period token fell back to month",
		},
	)
)

// Register registers all Prometheus metrics on reg.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(OverviewDuration)
	reg.MustRegister(OverviewFailuresTotal)
	reg.MustRegister(StoreQueryDuration)
	reg.MustRegister(UnknownPeriodTotal)
}

// ObserveQuery records the latency of a store read started at start.
func ObserveQuery(query string, start time.Time) {
	StoreQueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
}
