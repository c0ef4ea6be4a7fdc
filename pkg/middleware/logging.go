package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/vfg2006/sales-risk-analytics/pkg/apiErrors"
	"github.com/vfg2006/sales-risk-analytics/pkg/log"
)

// CorrelationIDHeader permite ao dashboard propagar o próprio ID de correlação
const CorrelationIDHeader = "X-Correlation-ID"

// Consultas analíticas carregam o ledger inteiro, acima disso vale o aviso
const slowRequestThreshold = 750 * time.Millisecond

// LoggingMiddleware registra uma linha por requisição com status, duração e filtros da consulta
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := correlationContext(r)
			r = r.WithContext(ctx)
			w.Header().Set(CorrelationIDHeader, correlationID)

			srw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			startTime := time.Now()

			next.ServeHTTP(srw, r)

			elapsed := time.Since(startTime)
			fields := log.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": srw.status,
				"bytes":       srw.written,
				"duration":    formatDuration(elapsed),
			}
			if r.URL.RawQuery != "" {
				fields["query"] = r.URL.RawQuery
			}
			if !log.IsDevelopment() {
				fields["remote_addr"] = r.RemoteAddr
				fields["user_agent"] = r.UserAgent()
			}

			logger := log.ForContext(ctx).WithFields(fields)
			switch {
			case srw.status >= http.StatusInternalServerError:
				logger.Error("Requisição finalizada com erro")
			case srw.status >= http.StatusBadRequest:
				logger.Warn("Requisição rejeitada")
			case elapsed > slowRequestThreshold:
				logger.Warn("Requisição lenta")
			default:
				logger.Info("Requisição finalizada")
			}
		})
	}
}

func correlationContext(r *http.Request) (context.Context, string) {
	if id := r.Header.Get(CorrelationIDHeader); id != "" {
		return context.WithValue(r.Context(), log.CorrelationIDKey, id), id
	}
	return log.WithCorrelationID(r.Context())
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d µs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2f s", d.Seconds())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.written += n
	return n, err
}

// LogPanicMiddleware recupera panics dos handlers e responde SRV_001 no formato padrão de erro
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}

				stack := make([]byte, 4096)
				stack = stack[:runtime.Stack(stack, false)]

				log.ForContext(r.Context()).WithFields(log.Fields{
					"panic_error": recovered,
					"method":      r.Method,
					"path":        r.URL.Path,
					"stack_trace": string(stack),
				}).Error("Erro não tratado na aplicação")

				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
