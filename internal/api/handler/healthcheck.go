package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-risk-analytics/pkg/apiErrors"
)

// Pinger é implementado pelas conexões de banco. Com o driver memory não há o que verificar.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(time.Now().String()))
		if err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}

// ReadinessHandler confirma que o banco configurado responde
func ReadinessHandler(pinger Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if pinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := pinger.Ping(ctx); err != nil {
				logrus.WithError(err).Warn("Banco de dados indisponível no readiness")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Banco de dados indisponível", nil)
				return
			}
		}

		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
	})
}
