package explaining

import "github.com/prometheus/client_golang/prometheus"

var (
	reportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "churn",
			Subsystem: "reports",
			Name:      "generated_total",
			Help:      "Narrative reports by source (llm, cache or fallback).",
		},
		[]string{"source"},
	)
)

func init() {
	_ = prometheus.Register(reportsTotal)
}
