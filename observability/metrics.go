// Package observability provides metrics and tracing instruments for
// linebridge webhook processing and message dispatch.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus instruments for linebridge.
type Metrics struct {
	WebhooksReceivedTotal prometheus.Counter
	WebhooksRejectedTotal *prometheus.CounterVec
	EventsEmittedTotal    prometheus.Counter
	DispatchesTotal       *prometheus.CounterVec
	DispatchLatency       prometheus.Histogram
}

// NewMetrics creates linebridge metric instruments and registers them on the
// given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		WebhooksReceivedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "linebridge_webhooks_received_total",
			Help: "Webhook requests received, before verification.",
		}),
		WebhooksRejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linebridge_webhooks_rejected_total",
			Help: "Webhook requests rejected, by reason.",
		}, []string{"reason"}),
		EventsEmittedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "linebridge_events_emitted_total",
			Help: "Inbound events emitted downstream after filtering.",
		}),
		DispatchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linebridge_dispatches_total",
			Help: "Outbound API calls, by operation and status.",
		}, []string{"operation", "status"}),
		DispatchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "linebridge_dispatch_latency_seconds",
			Help:    "Outbound API call latency.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.WebhooksReceivedTotal,
		m.WebhooksRejectedTotal,
		m.EventsEmittedTotal,
		m.DispatchesTotal,
		m.DispatchLatency,
	)

	return m
}

// RecordRejection records a rejected webhook request with the given reason.
func (m *Metrics) RecordRejection(reason string) {
	m.WebhooksRejectedTotal.WithLabelValues(reason).Inc()
}

// RecordDispatch records an outbound API call with its outcome and latency.
func (m *Metrics) RecordDispatch(operation, status string, latencySeconds float64) {
	m.DispatchesTotal.WithLabelValues(operation, status).Inc()
	m.DispatchLatency.Observe(latencySeconds)
}
