// Package metrics exposes Prometheus counters for the dispatch pipeline.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RingsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "doribell_rings_total",
			Help: "Total number of ring requests received",
		},
	)

	RingsDeliveredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "doribell_rings_delivered_total",
			Help: "Total number of rings delivered to the chat",
		},
	)

	RingsSuppressedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "doribell_rings_suppressed_total",
			Help: "Total number of rings suppressed by quiet hours",
		},
	)

	RingsRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "doribell_rings_rejected_total",
			Help: "Total number of rings rejected by challenge verification",
		},
	)

	RingsInvalidTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "doribell_rings_invalid_total",
			Help: "Total number of malformed or unknown-type ring requests",
		},
	)

	DeliveryFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "doribell_delivery_failures_total",
			Help: "Total number of failed chat delivery attempts",
		},
	)

	VerifyFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "doribell_verify_failures_total",
			Help: "Total number of challenge verification transport failures",
		},
	)

	DispatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "doribell_dispatch_duration_seconds",
			Help:    "Duration of ring dispatch from verification to terminal outcome",
			Buckets: prometheus.DefBuckets,
		},
	)
)

var registerOnce sync.Once

// Register registers all collectors with the default registry. Safe to
// call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RingsTotal,
			RingsDeliveredTotal,
			RingsSuppressedTotal,
			RingsRejectedTotal,
			RingsInvalidTotal,
			DeliveryFailuresTotal,
			VerifyFailuresTotal,
			DispatchDuration,
		)
	})
}
