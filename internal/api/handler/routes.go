package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/churninsights/churn-insights-api/internal/api/handler/router"
	"github.com/churninsights/churn-insights-api/internal/usecases/describing"
	"github.com/churninsights/churn-insights-api/internal/usecases/explaining"
	"github.com/churninsights/churn-insights-api/internal/usecases/predicting"
	"github.com/churninsights/churn-insights-api/internal/usecases/profiling"
	"github.com/churninsights/churn-insights-api/internal/usecases/session"
	"github.com/churninsights/churn-insights-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Customers(
	profiler profiling.Profiler,
	predictor predicting.Predictor,
	explainer explaining.Explainer,
) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/customers",
			Method:  http.MethodGet,
			Handler: ListCustomers(profiler),
		},
		{
			Path:    "/v1/customers/:id/profile",
			Method:  http.MethodGet,
			Handler: GetCustomerProfile(profiler),
		},
		{
			Path:    "/v1/customers/:id/prediction",
			Method:  http.MethodGet,
			Handler: GetCustomerPrediction(predictor),
		},
		{
			Path:    "/v1/customers/:id/report",
			Method:  http.MethodPost,
			Handler: GenerateCustomerReport(explainer),
		},
		{
			Path:    "/v1/customers/:id/reports",
			Method:  http.MethodGet,
			Handler: ListCustomerReports(explainer),
		},
		{
			Path:    "/v1/customers/:id/attributions/chart.png",
			Method:  http.MethodGet,
			Handler: GetAttributionChart(predictor),
		},
	}
}

// Session retorna as rotas que leem o cliente selecionado do token de sessão.
// Só elas validam o Bearer token; as demais rotas ignoram o header.
func Session(
	sessions session.SessionService,
	profiler profiling.Profiler,
	predictor predicting.Predictor,
	explainer explaining.Explainer,
) []router.Route {
	withSession := []func(http.Handler) http.Handler{middleware.SessionMiddleware(sessions)}

	return []router.Route{
		{
			Path:    "/v1/session",
			Method:  http.MethodPost,
			Handler: SelectCustomer(sessions),
		},
		{
			Path:        "/v1/session/profile",
			Method:      http.MethodGet,
			Handler:     GetSessionProfile(profiler),
			Middlewares: withSession,
		},
		{
			Path:        "/v1/session/prediction",
			Method:      http.MethodGet,
			Handler:     GetSessionPrediction(predictor),
			Middlewares: withSession,
		},
		{
			Path:        "/v1/session/report",
			Method:      http.MethodPost,
			Handler:     GenerateSessionReport(explainer),
			Middlewares: withSession,
		},
	}
}

func Dashboard(describer describing.Describer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dashboard/features",
			Method:  http.MethodGet,
			Handler: ListFeatures(describer),
		},
		{
			Path:    "/v1/dashboard/features/:feature",
			Method:  http.MethodGet,
			Handler: GetFeatureAnalysis(describer),
		},
		{
			Path:    "/v1/dashboard/features/:feature/chart.png",
			Method:  http.MethodGet,
			Handler: GetFeatureChart(describer),
		},
	}
}

func Datasets(reloader DatasetReloader) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/datasets/reload",
			Method:  http.MethodPost,
			Handler: ReloadDatasets(reloader),
		},
		{
			Path:    "/v1/datasets/status",
			Method:  http.MethodGet,
			Handler: GetDatasetStatus(reloader),
		},
	}
}
