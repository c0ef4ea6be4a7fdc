package handler

import (
	"net/http"

	"github.com/vfg2006/sales-risk-analytics/internal/api/handler/router"
	"github.com/vfg2006/sales-risk-analytics/internal/usecases/analyzing"
	"github.com/vfg2006/sales-risk-analytics/internal/usecases/authenticating"
	"github.com/vfg2006/sales-risk-analytics/internal/usecases/synthesizing"
	"github.com/vfg2006/sales-risk-analytics/pkg/metrics"
	"github.com/vfg2006/sales-risk-analytics/pkg/middleware"
)

func adminOnly(authService authenticating.Authenticator) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.AuthMiddleware(authService),
		middleware.AdminOnly(authService),
	}
}

func Healthcheck(pinger Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
		{
			Path:    "/readiness",
			Method:  http.MethodGet,
			Handler: ReadinessHandler(pinger),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func Analytics(service analyzing.Analyzer) []router.Route {
	return []router.Route{
		{
			Path:    "/api/",
			Method:  http.MethodGet,
			Handler: Root(),
		},
		{
			Path:    "/api/kpis",
			Method:  http.MethodGet,
			Handler: GetKPIs(service),
		},
		{
			Path:    "/api/regional-summary",
			Method:  http.MethodGet,
			Handler: GetRegionalSummary(service),
		},
		{
			Path:    "/api/sales-trends",
			Method:  http.MethodGet,
			Handler: GetSalesTrends(service),
		},
		{
			Path:    "/api/customer-risk-analysis",
			Method:  http.MethodGet,
			Handler: GetCustomerRiskAnalysis(service),
		},
		{
			Path:    "/api/forecast",
			Method:  http.MethodGet,
			Handler: GetForecast(service),
		},
		{
			Path:    "/api/country-performance",
			Method:  http.MethodGet,
			Handler: GetCountryPerformance(service),
		},
	}
}

func Generation(generator synthesizing.Generator, authService authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/api/generate-data",
			Method:      http.MethodPost,
			Handler:     GenerateData(generator),
			Middlewares: adminOnly(authService),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/api/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func CronJobs(services CronJobServices, authService authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/api/cron/run/:type",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: adminOnly(authService),
		},
		{
			Path:        "/api/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: adminOnly(authService),
		},
	}
}
