package handler

import (
	"bytes"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/churninsights/churn-insights-api/infrastructure/render"
	"github.com/churninsights/churn-insights-api/internal/domain"
	"github.com/churninsights/churn-insights-api/internal/usecases/describing"
)

func featureParams(r *http.Request) (string, domain.AnalysisType) {
	feature := httprouter.ParamsFromContext(r.Context()).ByName("feature")
	analysis := domain.AnalysisType(r.URL.Query().Get("analysis"))
	return feature, analysis
}

func ListFeatures(service describing.Describer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		features, err := service.ListFeatures(r.Context())
		if err != nil {
			writeUsecaseError(w, r, "dashboard", err)
			return
		}

		writeJSON(w, http.StatusOK, features)
	})
}

func GetFeatureAnalysis(service describing.Describer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		feature, analysis := featureParams(r)

		result, err := service.Analyze(r.Context(), feature, analysis)
		if err != nil {
			writeUsecaseError(w, r, "dashboard", err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	})
}

// GetFeatureChart desenha histograma (numéricas) ou frequências (categóricas)
func GetFeatureChart(service describing.Describer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		feature, analysis := featureParams(r)

		result, err := service.Analyze(r.Context(), feature, analysis)
		if err != nil {
			writeUsecaseError(w, r, "dashboard", err)
			return
		}

		var buf bytes.Buffer
		if err := render.FeatureChart(&buf, result); err != nil {
			writeChartError(w, r, err)
			return
		}

		writePNG(w, &buf)
	})
}
