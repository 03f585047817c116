package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "churn",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "churn",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "route"},
	)

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "churn",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests being served.",
		},
	)
)

func init() {
	_ = prometheus.Register(httpRequests)
	_ = prometheus.Register(httpDuration)
	_ = prometheus.Register(httpInFlight)
}

type routeLabelKey struct{}

// routeLabel é preenchido pelo router com o padrão da rota (ex. /v1/customers/:id/profile),
// evitando um label por customer id
type routeLabel struct {
	pattern string
}

const unmatchedRoute = "unmatched"

// SetRoute registra o padrão da rota atendida; sem MetricsMiddleware na cadeia não faz nada
func SetRoute(ctx context.Context, pattern string) {
	if label, ok := ctx.Value(routeLabelKey{}).(*routeLabel); ok {
		label.pattern = pattern
	}
}

// MetricsMiddleware expõe contagem, latência e requisições em andamento no Prometheus
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			httpInFlight.Inc()
			defer httpInFlight.Dec()

			label := &routeLabel{pattern: unmatchedRoute}
			r = r.WithContext(context.WithValue(r.Context(), routeLabelKey{}, label))

			rec := newStatusRecorder(w)
			start := time.Now()

			next.ServeHTTP(rec, r)

			httpRequests.WithLabelValues(r.Method, label.pattern, strconv.Itoa(rec.statusCode)).Inc()
			httpDuration.WithLabelValues(r.Method, label.pattern).Observe(time.Since(start).Seconds())
		})
	}
}
