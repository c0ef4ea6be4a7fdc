package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-risk-analytics/infrastructure/repository"
	"github.com/vfg2006/sales-risk-analytics/internal/api/handler/router"
	"github.com/vfg2006/sales-risk-analytics/internal/config"
	"github.com/vfg2006/sales-risk-analytics/internal/domain"
	"github.com/vfg2006/sales-risk-analytics/internal/scheduler"
	"github.com/vfg2006/sales-risk-analytics/internal/usecases/analyzing"
	"github.com/vfg2006/sales-risk-analytics/internal/usecases/authenticating"
	"github.com/vfg2006/sales-risk-analytics/internal/usecases/synthesizing"
	"github.com/vfg2006/sales-risk-analytics/internal/usecases/synthesizing/mocks"
	"github.com/vfg2006/sales-risk-analytics/pkg/apiErrors"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	handler   http.Handler
	generator *synthesizing.Service
	auth      *authenticating.Service
}

func newTestServer(t *testing.T, authEnabled bool) *testServer {
	t.Helper()

	store := repository.NewMemoryStore()
	generator := synthesizing.NewService(store.SalesRecords(), store.CustomerProfiles(), config.Synthesis{
		RecordCount:     300,
		HistoryDays:     730,
		MeanRecencyDays: 180,
		Seed:            42,
	})

	hash, err := bcrypt.GenerateFromPassword([]byte("senha"), bcrypt.MinCost)
	require.NoError(t, err)
	auth := authenticating.NewService(config.Auth{
		Enabled:           authEnabled,
		Secret:            "segredo",
		AdminUser:         "admin",
		AdminPasswordHash: string(hash),
		TokenTTL:          time.Hour,
	})

	cronServices := CronJobServices{
		LedgerRefreshService: scheduler.NewLedgerRefreshService(generator, config.LedgerRefresh{}),
	}

	rt := router.New(
		router.WithRoutes(Healthcheck(nil)...),
		router.WithRoutes(Analytics(analyzing.NewService(store.SalesRecords(), store.CustomerProfiles()))...),
		router.WithRoutes(Generation(generator, auth)...),
		router.WithRoutes(Authentication(auth)...),
		router.WithRoutes(CronJobs(cronServices, auth)...),
	)

	return &testServer{handler: rt, generator: generator, auth: auth}
}

func (s *testServer) do(t *testing.T, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var payload T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), rec.Body.String())
	return payload
}

func TestRoot(t *testing.T) {
	server := newTestServer(t, false)

	rec := server.do(t, http.MethodGet, "/api/", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"message": rootMessage}, decodeBody[map[string]string](t, rec))
}

func TestEmptyLedgerEndpoints(t *testing.T) {
	server := newTestServer(t, false)

	for _, target := range []string{
		"/api/regional-summary",
		"/api/sales-trends",
		"/api/customer-risk-analysis",
		"/api/forecast",
		"/api/country-performance",
	} {
		t.Run(target, func(t *testing.T) {
			rec := server.do(t, http.MethodGet, target, "", nil)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, "[]", rec.Body.String())
		})
	}

	t.Run("/api/kpis", func(t *testing.T) {
		rec := server.do(t, http.MethodGet, "/api/kpis", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		kpis := decodeBody[domain.KPIMetrics](t, rec)
		assert.Zero(t, kpis.TotalRevenue)
		assert.Zero(t, kpis.RevenueGrowth)
	})
}

func TestGenerateThenQuery(t *testing.T) {
	server := newTestServer(t, false)

	rec := server.do(t, http.MethodPost, "/api/generate-data", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeBody[domain.GenerationResult](t, rec)
	assert.Equal(t, 300, result.SalesRecords)
	assert.Greater(t, result.CustomerProfiles, 0)

	t.Run("regional-summary soma a receita total", func(t *testing.T) {
		summaries := decodeBody[[]domain.RegionalSummary](t, server.do(t, http.MethodGet, "/api/regional-summary", "", nil))

		profiles := decodeBody[[]domain.CustomerProfile](t, server.do(t, http.MethodGet, "/api/customer-risk-analysis", "", nil))
		require.NotEmpty(t, profiles)

		orders := 0
		regionalRevenue := 0.0
		for _, summary := range summaries {
			orders += summary.TotalOrders
			regionalRevenue += summary.TotalRevenue
			assert.LessOrEqual(t, len(summary.TopCustomers), 5)
		}

		ledgerRevenue := 0.0
		for _, profile := range profiles {
			ledgerRevenue += profile.TotalRevenue
		}

		assert.Equal(t, 300, orders)
		// cada total foi arredondado para 2 casas
		assert.InDelta(t, ledgerRevenue, regionalRevenue, 0.005*float64(len(profiles)+len(summaries)))
	})

	t.Run("customer-risk-analysis filtrado e ordenado", func(t *testing.T) {
		profiles := decodeBody[[]domain.CustomerProfile](t, server.do(t, http.MethodGet, "/api/customer-risk-analysis?risk_category=High&region=EMEA", "", nil))

		for i, profile := range profiles {
			assert.Equal(t, domain.RiskHigh, profile.RiskCategory)
			assert.Equal(t, domain.RegionEMEA, profile.Region)
			if i > 0 {
				assert.LessOrEqual(t, profile.RiskScore, profiles[i-1].RiskScore)
			}
		}
	})

	t.Run("sales-trends trimestral", func(t *testing.T) {
		trends := decodeBody[[]domain.SalesTrend](t, server.do(t, http.MethodGet, "/api/sales-trends?period=quarterly", "", nil))

		require.NotEmpty(t, trends)
		assert.Contains(t, trends[0].Period, "-Q")
		for i := 1; i < len(trends); i++ {
			assert.Less(t, trends[i-1].Period, trends[i].Period)
		}
	})

	t.Run("forecast com meses informados", func(t *testing.T) {
		points := decodeBody[[]domain.ForecastPoint](t, server.do(t, http.MethodGet, "/api/forecast?months=2", "", nil))

		require.NotEmpty(t, points)
		forecasts := 0
		for _, point := range points {
			if point.ForecastedRevenue != nil {
				forecasts++
				assert.Nil(t, point.ActualRevenue)
				require.NotNil(t, point.ConfidenceInterval)
			}
		}
		assert.Equal(t, 2, forecasts)
	})
}

func TestQueryValidation(t *testing.T) {
	server := newTestServer(t, false)

	tests := []struct {
		name   string
		target string
	}{
		{name: "período desconhecido", target: "/api/sales-trends?period=weekly"},
		{name: "região desconhecida", target: "/api/sales-trends?region=LATAM"},
		{name: "categoria desconhecida", target: "/api/customer-risk-analysis?risk_category=Critical"},
		{name: "months não numérico", target: "/api/forecast?months=abc"},
		{name: "months acima do limite", target: "/api/forecast?months=25"},
		{name: "months zero", target: "/api/forecast?months=0"},
		{name: "região inválida em country-performance", target: "/api/country-performance?region=Mars"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := server.do(t, http.MethodGet, tt.target, "", nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, apiErrors.ErrInvalidFormat, decodeBody[apiErrors.APIError](t, rec).Code)
		})
	}
}

func TestGenerateDataRequiresAdminWhenAuthEnabled(t *testing.T) {
	server := newTestServer(t, true)

	rec := server.do(t, http.MethodPost, "/api/generate-data", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	login := server.do(t, http.MethodPost, "/api/login", `{"username":"admin","password":"senha"}`, nil)
	require.Equal(t, http.StatusOK, login.Code)
	token := decodeBody[domain.LoginResponse](t, login).Token

	rec = server.do(t, http.MethodPost, "/api/generate-data", "", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin(t *testing.T) {
	server := newTestServer(t, true)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{name: "json inválido", body: `{`, wantStatus: http.StatusBadRequest, wantCode: apiErrors.ErrInvalidRequest},
		{name: "campos ausentes", body: `{"username":"admin"}`, wantStatus: http.StatusBadRequest, wantCode: apiErrors.ErrMissingRequiredData},
		{name: "senha incorreta", body: `{"username":"admin","password":"x"}`, wantStatus: http.StatusUnauthorized, wantCode: apiErrors.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := server.do(t, http.MethodPost, "/api/login", tt.body, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeBody[apiErrors.APIError](t, rec).Code)
		})
	}
}

func TestCronJobs(t *testing.T) {
	server := newTestServer(t, false)

	t.Run("tipo desconhecido", func(t *testing.T) {
		rec := server.do(t, http.MethodPost, "/api/cron/run/meta", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("dispara a atualização do ledger", func(t *testing.T) {
		rec := server.do(t, http.MethodPost, "/api/cron/run/"+scheduler.LedgerRefreshJob, "", nil)
		assert.Equal(t, http.StatusAccepted, rec.Code)

		assert.Eventually(t, func() bool {
			empty, err := server.generator.IsEmpty(context.Background())
			return err == nil && !empty
		}, 5*time.Second, 20*time.Millisecond)
	})

	t.Run("status", func(t *testing.T) {
		rec := server.do(t, http.MethodGet, "/api/cron/status", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		status := decodeBody[map[string]map[string]any](t, rec)
		assert.Contains(t, status, scheduler.LedgerRefreshJob)
	})
}

func TestGenerateData_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGenerator := mocks.NewMockGenerator(ctrl)
	mockGenerator.EXPECT().Generate(gomock.Any()).Return(nil, errors.New("disco cheio"))

	rec := httptest.NewRecorder()
	GenerateData(mockGenerator).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/generate-data", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apiErrors.ErrDatabaseOperation, decodeBody[apiErrors.APIError](t, rec).Code)
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

func TestReadiness(t *testing.T) {
	rec := httptest.NewRecorder()
	ReadinessHandler(failingPinger{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readiness", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	ReadinessHandler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readiness", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
