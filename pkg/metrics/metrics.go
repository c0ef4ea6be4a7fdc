// Package metrics expõe as métricas Prometheus da API
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sales_analytics"

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total de requisições HTTP por rota e status",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Latência das requisições HTTP por rota",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	LedgerGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_generations_total",
		Help:      "Gerações do ledger sintético por resultado",
	}, []string{"result"})

	LedgerSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ledger_documents",
		Help:      "Quantidade de documentos por coleção após a última geração",
	}, []string{"collection"})
)

// Handler serve a exposição no formato do Prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}

// InstrumentRoute registra contagem e latência usando o path da rota, não a URL, para limitar a cardinalidade
func InstrumentRoute(method, route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		HTTPRequests.WithLabelValues(method, route, strconv.Itoa(sw.status)).Inc()
		HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
