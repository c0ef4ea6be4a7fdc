package handler

import (
	"net/http"

	"github.com/vfg2006/sales-risk-analytics/internal/usecases/synthesizing"
	"github.com/vfg2006/sales-risk-analytics/pkg/apiErrors"
	"github.com/vfg2006/sales-risk-analytics/pkg/log"
)

// GenerateData substitui todo o ledger por um novo conjunto sintético
func GenerateData(generator synthesizing.Generator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("generate-data: regenerando ledger")

		result, err := generator.Generate(r.Context())
		if err != nil {
			logger.WithError(err).Error("generate-data: erro ao gerar ledger")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gerar dados", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	})
}
