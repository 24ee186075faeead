// Package metrics exposes Prometheus instrumentation for message store
// retrieval calls.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	retrievalCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "message_store_retrievals_total",
		Help: "The total number of retrieval calls executed against the message store",
	}, []string{"kind", "status"})

	messageCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "message_store_messages_retrieved_total",
		Help: "The total number of messages returned by retrieval calls",
	}, []string{"kind"})

	retrievalDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "message_store_retrieval_duration_seconds",
		Help:    "Time spent executing retrieval calls",
		Buckets: prometheus.DefBuckets,
	})
)

// Status constants
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// IncRetrieval increments the retrieval counter.
func IncRetrieval(kind, status string) {
	retrievalCount.WithLabelValues(kind, status).Inc()
}

// AddMessages adds to the retrieved message counter.
func AddMessages(kind string, count int) {
	messageCount.WithLabelValues(kind).Add(float64(count))
}

// ObserveRetrievalDuration records the duration of one retrieval call.
func ObserveRetrievalDuration(d time.Duration) {
	retrievalDuration.Observe(d.Seconds())
}
