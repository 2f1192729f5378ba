// Package metrics provides Prometheus instrumentation for the Sentinel
// dashboard: counters for submissions and resolutions, a gauge for
// in-flight analyses, and a histogram for classification latency.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SubmissionsTotal counts submitted messages, labeled by outcome:
	// "accepted" or "rejected".
	SubmissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sentinel_submissions_total",
		Help: "Total number of message submissions",
	}, []string{"outcome"}) // outcome = "accepted", "rejected"

	// ResolutionsTotal counts resolved analyses, labeled by final state:
	// "analyzed" or "failed_safe".
	ResolutionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sentinel_resolutions_total",
		Help: "Total number of resolved message analyses",
	}, []string{"state"}) // state = "analyzed", "failed_safe"

	// PendingAnalyses tracks the current number of in-flight classifications.
	PendingAnalyses = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sentinel_pending_analyses",
		Help: "Current number of in-flight message classifications",
	})

	// ToxicMessagesTotal counts messages the classifier flagged toxic.
	ToxicMessagesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sentinel_toxic_messages_total",
		Help: "Total number of messages flagged toxic",
	})

	// ClassifyLatency records classification call latency in seconds.
	ClassifyLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sentinel_classify_latency_seconds",
		Help:    "Classification call latency in seconds",
		Buckets: []float64{.1, .25, .5, 1, 2, 5, 10, 30},
	})
)

func init() {
	prometheus.MustRegister(
		SubmissionsTotal,
		ResolutionsTotal,
		PendingAnalyses,
		ToxicMessagesTotal,
		ClassifyLatency,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
