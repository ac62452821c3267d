package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	estimateRequests *prometheus.CounterVec
	estimateDuration prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		estimateRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vdicost_estimate_requests_total",
			Help: "Estimate requests by outcome and pricing source.",
		}, []string{"status", "source"}),
		estimateDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "vdicost_estimate_duration_seconds",
			Help:    "End-to-end estimate latency.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
