package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-risk-analytics/internal/api/handler"
	"github.com/vfg2006/sales-risk-analytics/internal/api/handler/router"
	"github.com/vfg2006/sales-risk-analytics/internal/config"
	"github.com/vfg2006/sales-risk-analytics/internal/scheduler"
	"github.com/vfg2006/sales-risk-analytics/internal/usecases/analyzing"
	"github.com/vfg2006/sales-risk-analytics/internal/usecases/authenticating"
	"github.com/vfg2006/sales-risk-analytics/internal/usecases/synthesizing"
	"github.com/vfg2006/sales-risk-analytics/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

type Dependencies struct {
	Analyzer             analyzing.Analyzer
	Generator            synthesizing.Generator
	Authenticator        authenticating.Authenticator
	LedgerRefreshService *scheduler.LedgerRefreshService
	Pinger               handler.Pinger
}

func New(config *config.Config, deps Dependencies) (*Server, error) {
	if deps.Analyzer == nil || deps.Generator == nil || deps.Authenticator == nil {
		return nil, fmt.Errorf("dependências obrigatórias do servidor não informadas")
	}

	cronServices := handler.CronJobServices{
		LedgerRefreshService: deps.LedgerRefreshService,
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, deps, cronServices),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// NewHandler monta o router com a cadeia de middlewares globais
func NewHandler(config *config.Config, deps Dependencies, cronServices handler.CronJobServices) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(deps.Pinger)...),
		router.WithRoutes(handler.Analytics(deps.Analyzer)...),
		router.WithRoutes(handler.Generation(deps.Generator, deps.Authenticator)...),
		router.WithRoutes(handler.Authentication(deps.Authenticator)...),
		router.WithRoutes(handler.CronJobs(cronServices, deps.Authenticator)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.CORSOrigins),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Log de início do desligamento
	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	logrus.Info("Executando operações de limpeza antes do desligamento")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
