package handler

import (
	"bytes"
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/churninsights/churn-insights-api/internal/usecases/describing"
	"github.com/churninsights/churn-insights-api/internal/usecases/explaining"
	"github.com/churninsights/churn-insights-api/internal/usecases/predicting"
	"github.com/churninsights/churn-insights-api/internal/usecases/profiling"
	"github.com/churninsights/churn-insights-api/internal/usecases/session"
	"github.com/churninsights/churn-insights-api/pkg/apiErrors"
	"github.com/churninsights/churn-insights-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const customerNotFoundMessage = "Customer not found."

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.L.WithError(err).Warn("handler: erro ao codificar resposta")
	}
}

// writePNG só escreve o status depois que o gráfico foi renderizado por completo
func writePNG(w http.ResponseWriter, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	if _, err := buf.WriteTo(w); err != nil {
		log.L.WithError(err).Warn("handler: erro ao escrever imagem")
	}
}

// errorCode extrai o código dos erros tipados dos casos de uso
func errorCode(err error) (string, bool) {
	var (
		predictionErr *predicting.PredictionError
		explainErr    *explaining.ExplainError
		describeErr   *describing.DescribeError
		sessionErr    *session.SessionError
		profileErr    *profiling.ProfileError
	)

	switch {
	case errors.As(err, &predictionErr):
		return predictionErr.Code, true
	case errors.As(err, &explainErr):
		return explainErr.Code, true
	case errors.As(err, &describeErr):
		return describeErr.Code, true
	case errors.As(err, &sessionErr):
		return sessionErr.Code, true
	case errors.As(err, &profileErr):
		return profileErr.Code, true
	}

	return "", false
}

func writeUsecaseError(w http.ResponseWriter, r *http.Request, area string, err error) {
	logger := log.ForContext(r.Context()).WithError(err).WithField("path", r.URL.Path)

	code, ok := errorCode(err)
	if !ok {
		logger.Error(area + ": erro inesperado")
		apiErr := apiErrors.FromError(err, apiErrors.ErrInternalServer)
		apiErrors.WriteError(w, apiErr.Code, apiErr.Message, nil)
		return
	}

	if apiErrors.StatusFor(code) >= http.StatusInternalServerError {
		logger.WithField("code", code).Error(area + ": falha ao atender requisição")
	} else {
		logger.WithField("code", code).Warn(area + ": requisição rejeitada")
	}

	message := err.Error()
	if code == apiErrors.ErrCustomerNotFound {
		message = customerNotFoundMessage
	}

	apiErrors.WriteError(w, code, message, nil)
}
