package handler

import (
	"errors"
	"net/http"

	"github.com/churninsights/churn-insights-api/internal/domain"
	"github.com/churninsights/churn-insights-api/internal/scheduler"
	"github.com/churninsights/churn-insights-api/pkg/apiErrors"
	"github.com/churninsights/churn-insights-api/pkg/log"
)

// DatasetReloader é o job de recarga dos CSVs
type DatasetReloader interface {
	Reload() error
	GetStatus() domain.ReloadStatus
}

// ReloadDatasets recarrega os dois datasets de forma síncrona e devolve o status final
func ReloadDatasets(reloader DatasetReloader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("datasets: recarga manual solicitada")

		if err := reloader.Reload(); err != nil {
			if errors.Is(err, scheduler.ErrReloadInProgress) {
				apiErrors.WriteError(w, apiErrors.ErrReloadInProgress, err.Error(), nil)
				return
			}

			log.ForContext(r.Context()).WithError(err).Error("datasets: falha na recarga")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), reloader.GetStatus())
			return
		}

		writeJSON(w, http.StatusOK, reloader.GetStatus())
	})
}

func GetDatasetStatus(reloader DatasetReloader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, reloader.GetStatus())
	})
}
