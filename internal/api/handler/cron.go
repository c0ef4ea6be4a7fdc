package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-risk-analytics/internal/scheduler"
	"github.com/vfg2006/sales-risk-analytics/pkg/apiErrors"
)

// CronJobServices contém os serviços de cron que podem ser executados manualmente
type CronJobServices struct {
	LedgerRefreshService *scheduler.LedgerRefreshService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case scheduler.LedgerRefreshJob:
			if services.LedgerRefreshService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de atualização do ledger não disponível", nil)
				return
			}
			if !services.LedgerRefreshService.TriggerManualSync() {
				apiErrors.WriteError(w, apiErrors.ErrConflict, "Atualização do ledger já em andamento", nil)
				return
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: "+scheduler.LedgerRefreshJob, nil)
			return
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	})
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.LedgerRefreshService != nil {
			status[scheduler.LedgerRefreshJob] = services.LedgerRefreshService.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	})
}
