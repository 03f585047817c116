package handler

import (
	"net/http"

	"github.com/churninsights/churn-insights-api/internal/domain"
	"github.com/churninsights/churn-insights-api/internal/usecases/explaining"
	"github.com/churninsights/churn-insights-api/internal/usecases/predicting"
	"github.com/churninsights/churn-insights-api/internal/usecases/profiling"
	"github.com/churninsights/churn-insights-api/internal/usecases/session"
	"github.com/churninsights/churn-insights-api/pkg/apiErrors"
	"github.com/churninsights/churn-insights-api/pkg/middleware"
)

// SelectCustomer emite o token de sessão com o cliente escolhido
func SelectCustomer(service session.SessionService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.SelectCustomerRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request body", nil)
			return
		}

		resp, err := service.Issue(r.Context(), req.CustomerID)
		if err != nil {
			writeUsecaseError(w, r, "session", err)
			return
		}

		writeJSON(w, http.StatusCreated, resp)
	})
}

func GetSessionProfile(service profiling.Profiler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current, _ := middleware.SessionFromContext(r.Context())

		profile, err := service.GetSessionProfile(r.Context(), current)
		if err != nil {
			writeUsecaseError(w, r, "session", err)
			return
		}

		writeJSON(w, http.StatusOK, profile)
	})
}

func GetSessionPrediction(service predicting.Predictor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current, _ := middleware.SessionFromContext(r.Context())
		if !current.HasSelection() {
			writeJSON(w, http.StatusOK, profiling.NoCustomerSelected())
			return
		}

		prediction, err := service.Predict(r.Context(), current.SelectedCustomerID)
		if err != nil {
			writeUsecaseError(w, r, "session", err)
			return
		}

		writeJSON(w, http.StatusOK, prediction)
	})
}

func GenerateSessionReport(service explaining.Explainer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current, _ := middleware.SessionFromContext(r.Context())
		if !current.HasSelection() {
			writeJSON(w, http.StatusOK, profiling.NoCustomerSelected())
			return
		}

		report, err := service.GenerateReport(r.Context(), current.SelectedCustomerID)
		if err != nil {
			writeUsecaseError(w, r, "session", err)
			return
		}

		writeJSON(w, http.StatusOK, report)
	})
}
