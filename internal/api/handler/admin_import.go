package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/vfg2006/tabc-sales-api/internal/domain"
	"github.com/vfg2006/tabc-sales-api/internal/scheduler"
	"github.com/vfg2006/tabc-sales-api/internal/usecases/importing"
	"github.com/vfg2006/tabc-sales-api/pkg/apiErrors"
	"github.com/vfg2006/tabc-sales-api/pkg/log"
)

type importResponse struct {
	Success            bool    `json:"success"`
	RunID              string  `json:"runId"`
	Imported           int     `json:"imported"`
	Message            string  `json:"message"`
	LatestDate         *string `json:"latestDate"`
	PreviousLatestDate *string `json:"previousLatestDate"`
}

// RunImport executa a importação incremental imediatamente. Com ?async=true apenas dispara a
// execução em background e responde 202.
func RunImport(syncer scheduler.ImportSyncer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		if r.URL.Query().Get("async") == "true" {
			syncer.TriggerManualSync()
			writeJSON(w, r, http.StatusAccepted, operationResponse{
				Success: true,
				Message: "import started",
			})
			return
		}

		result, err := syncer.RunNow(r.Context())
		if err != nil {
			code := apiErrors.ErrExternalService
			switch {
			case errors.Is(err, importing.ErrNoBaseline):
				code = apiErrors.ErrNoBaseline
			case errors.Is(err, importing.ErrImportInProgress):
				code = apiErrors.ErrImportInProgress
			}

			logger.WithError(err).WithField("code", code).Error("admin-import: importação falhou")
			writeJSON(w, r, apiErrors.StatusFor(code), operationResponse{
				Success: false,
				Message: err.Error(),
			})
			return
		}

		logger.WithFields(log.Fields{
			"run_id":   result.RunID,
			"imported": result.Imported,
		}).Info("admin-import: importação concluída")

		writeJSON(w, r, http.StatusOK, importResponse{
			Success:            true,
			RunID:              result.RunID,
			Imported:           result.Imported,
			Message:            result.Message,
			LatestDate:         dateOrNil(result.LatestDate),
			PreviousLatestDate: dateOrNil(result.PreviousLatestDate),
		})
	})
}

// GetImportStatus retorna o estado do agendador de importação
func GetImportStatus(syncer scheduler.ImportSyncer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, syncer.GetStatus())
	})
}

func dateOrNil(t *time.Time) *string {
	if t == nil {
		return nil
	}
	date := domain.DateString(*t)
	return &date
}
