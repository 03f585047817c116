package predicting

import "github.com/prometheus/client_golang/prometheus"

var (
	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "churn",
			Subsystem: "model",
			Name:      "predictions_total",
			Help:      "Total number of predictions by predicted class.",
		},
		[]string{"predicted_class"},
	)

	unknownCategoricalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "churn",
			Subsystem: "preprocessing",
			Name:      "unknown_categoricals_total",
			Help:      "Categorical values outside the training vocabulary, zero-filled.",
		},
		[]string{"column"},
	)
)

func init() {
	_ = prometheus.Register(predictionsTotal)
	_ = prometheus.Register(unknownCategoricalsTotal)
}
