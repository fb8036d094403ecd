package sapi

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// prometheusSapiRequests counts dispatched requests by method and outcome.
	prometheusSapiRequests *prometheus.CounterVec

	// prometheusSapiExecuteDuration observes handler execution time.
	prometheusSapiExecuteDuration prometheus.Histogram

	// prometheusSapiWorkQueueRejected counts enqueue failures under load.
	prometheusSapiWorkQueueRejected prometheus.Counter

	// prometheusSapiWorkQueueDepth tracks the current queue depth.
	prometheusSapiWorkQueueDepth prometheus.Gauge
)

var prometheusMetricsInitOnce sync.Once

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusSapiRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smartcash",
			Subsystem: "sapi",
			Name:      "requests_total",
			Help:      "Number of SAPI requests dispatched",
		},
		[]string{"method", "outcome"},
	)

	prometheusSapiExecuteDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "smartcash",
			Subsystem: "sapi",
			Name:      "execute_duration_seconds",
			Help:      "Duration of SAPI endpoint execution on the worker pool",
			Buckets:   prometheus.DefBuckets,
		},
	)

	prometheusSapiWorkQueueRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "smartcash",
			Subsystem: "sapi",
			Name:      "workqueue_rejected_total",
			Help:      "Number of requests rejected because the work queue was full",
		},
	)

	prometheusSapiWorkQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "smartcash",
			Subsystem: "sapi",
			Name:      "workqueue_depth",
			Help:      "Current depth of the SAPI work queue",
		},
	)
}
