package handler

import (
	"net/http"
	"strconv"

	"github.com/vfg2006/sales-risk-analytics/internal/analytics"
	"github.com/vfg2006/sales-risk-analytics/internal/domain"
	"github.com/vfg2006/sales-risk-analytics/internal/usecases/analyzing"
	"github.com/vfg2006/sales-risk-analytics/pkg/apiErrors"
	"github.com/vfg2006/sales-risk-analytics/pkg/log"
)

const rootMessage = "Global Sales & Risk Analytics Dashboard API"

type salesTrendsQuery struct {
	Period string `validate:"omitempty,oneof=monthly quarterly yearly"`
	Region string `validate:"omitempty,oneof=APAC EMEA Americas"`
}

type customerRiskQuery struct {
	RiskCategory string `validate:"omitempty,oneof=Low Medium High"`
	Region       string `validate:"omitempty,oneof=APAC EMEA Americas"`
}

type forecastQuery struct {
	Months int `validate:"min=1,max=24"`
}

type regionQuery struct {
	Region string `validate:"omitempty,oneof=APAC EMEA Americas"`
}

func Root() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"message": rootMessage})
	})
}

func GetKPIs(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		kpis, err := service.GetKPIs(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("kpis: erro ao calcular KPIs")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao calcular KPIs", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, kpis)
	})
}

func GetRegionalSummary(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		summaries, err := service.GetRegionalSummaries(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("regional-summary: erro ao consolidar regiões")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consolidar regiões", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, summaries)
	})
}

func GetSalesTrends(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		query := salesTrendsQuery{
			Period: r.URL.Query().Get("period"),
			Region: r.URL.Query().Get("region"),
		}
		if err := validate.Struct(query); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetros inválidos", validationDetails(err))
			return
		}

		granularity, err := domain.ParseGranularity(query.Period)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		trends, err := service.GetSalesTrends(r.Context(), granularity, domain.Region(query.Region))
		if err != nil {
			logger.WithError(err).Error("sales-trends: erro ao agregar vendas")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao agregar vendas", nil)
			return
		}

		logger.WithFields(log.Fields{
			"period":  granularity,
			"region":  query.Region,
			"buckets": len(trends),
		}).Debug("sales-trends: tendências calculadas")

		writeJSON(w, r, http.StatusOK, trends)
	})
}

func GetCustomerRiskAnalysis(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := customerRiskQuery{
			RiskCategory: r.URL.Query().Get("risk_category"),
			Region:       r.URL.Query().Get("region"),
		}
		if err := validate.Struct(query); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetros inválidos", validationDetails(err))
			return
		}

		profiles, err := service.GetCustomerRiskAnalysis(r.Context(), domain.CustomerFilter{
			Region:       domain.Region(query.Region),
			RiskCategory: domain.RiskCategory(query.RiskCategory),
		})
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("customer-risk-analysis: erro ao buscar perfis")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar perfis de risco", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, profiles)
	})
}

func GetForecast(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := forecastQuery{Months: analytics.DefaultForecastMonths}
		if raw := r.URL.Query().Get("months"); raw != "" {
			months, err := strconv.Atoi(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "months deve ser um número inteiro", nil)
				return
			}
			query.Months = months
		}
		if err := validate.Struct(query); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetros inválidos", validationDetails(err))
			return
		}

		points, err := service.GetForecast(r.Context(), query.Months)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("forecast: erro ao projetar receita")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao projetar receita", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, points)
	})
}

func GetCountryPerformance(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := regionQuery{Region: r.URL.Query().Get("region")}
		if err := validate.Struct(query); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetros inválidos", validationDetails(err))
			return
		}

		performance, err := service.GetCountryPerformance(r.Context(), domain.Region(query.Region))
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("country-performance: erro ao consolidar países")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consolidar países", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, performance)
	})
}
