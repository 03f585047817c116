package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/churninsights/churn-insights-api/infrastructure/render"
	"github.com/churninsights/churn-insights-api/internal/usecases/explaining"
	"github.com/churninsights/churn-insights-api/internal/usecases/predicting"
	"github.com/churninsights/churn-insights-api/internal/usecases/profiling"
	"github.com/churninsights/churn-insights-api/pkg/apiErrors"
	"github.com/churninsights/churn-insights-api/pkg/log"
)

func customerID(r *http.Request) string {
	return httprouter.ParamsFromContext(r.Context()).ByName("id")
}

func ListCustomers(service profiling.Profiler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		risk := r.URL.Query().Get("risk")

		customers, err := service.ListCustomers(r.Context(), risk)
		if err != nil {
			writeUsecaseError(w, r, "customers", err)
			return
		}

		writeJSON(w, http.StatusOK, customers)
	})
}

func GetCustomerProfile(service profiling.Profiler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile, err := service.GetProfile(r.Context(), customerID(r))
		if err != nil {
			writeUsecaseError(w, r, "customers", err)
			return
		}

		writeJSON(w, http.StatusOK, profile)
	})
}

func GetCustomerPrediction(service predicting.Predictor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		prediction, err := service.Predict(r.Context(), customerID(r))
		if err != nil {
			writeUsecaseError(w, r, "prediction", err)
			return
		}

		writeJSON(w, http.StatusOK, prediction)
	})
}

func GenerateCustomerReport(service explaining.Explainer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := customerID(r)
		log.ForContext(r.Context()).WithField("customer_id", id).Info("report: gerando relatório narrativo")

		report, err := service.GenerateReport(r.Context(), id)
		if err != nil {
			writeUsecaseError(w, r, "report", err)
			return
		}

		writeJSON(w, http.StatusOK, report)
	})
}

func ListCustomerReports(service explaining.Explainer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit must be a non-negative integer", nil)
				return
			}
			limit = parsed
		}

		history, err := service.ListReports(r.Context(), customerID(r), limit)
		if err != nil {
			writeUsecaseError(w, r, "report", err)
			return
		}

		writeJSON(w, http.StatusOK, history)
	})
}

// GetAttributionChart desenha o top 10 de atribuições da predição em PNG
func GetAttributionChart(service predicting.Predictor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		prediction, err := service.Predict(r.Context(), customerID(r))
		if err != nil {
			writeUsecaseError(w, r, "chart", err)
			return
		}

		var buf bytes.Buffer
		if err := render.AttributionChart(&buf, prediction.TopAttributions); err != nil {
			writeChartError(w, r, err)
			return
		}

		writePNG(w, &buf)
	})
}

func writeChartError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, render.ErrNoData) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("chart: falha ao renderizar gráfico")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "failed to render chart", nil)
}
