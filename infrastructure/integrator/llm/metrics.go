package llm

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess   = "success"
	outcomeTimeout   = "timeout"
	outcomeAPIError  = "api_error"
	outcomeTransport = "transport_error"
)

var (
	llmRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "churn",
			Subsystem: "llm",
			Name:      "requests_total",
			Help:      "Chat completion requests by outcome.",
		},
		[]string{"outcome"},
	)

	llmDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "churn",
			Subsystem: "llm",
			Name:      "request_duration_seconds",
			Help:      "Latency of chat completion requests.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"outcome"},
	)
)

func init() {
	_ = prometheus.Register(llmRequests)
	_ = prometheus.Register(llmDuration)
}

func observe(outcome string, elapsed time.Duration) {
	llmRequests.WithLabelValues(outcome).Inc()
	llmDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}
