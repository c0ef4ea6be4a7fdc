// Package scheduler contém os serviços de agendamento que mantêm o ledger atualizado
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-risk-analytics/internal/config"
	"github.com/vfg2006/sales-risk-analytics/internal/usecases/synthesizing"
)

const LedgerRefreshJob = "ledger-refresh"

type LedgerRefreshConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// LedgerRefreshService regenera o ledger sintético no horário configurado em LEDGER_REFRESH_CRON
type LedgerRefreshService struct {
	scheduler           *gocron.Scheduler
	generator           synthesizing.Generator
	config              LedgerRefreshConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
	lastSalesRecords    int
}

func NewLedgerRefreshService(generator synthesizing.Generator, cfg config.LedgerRefresh) *LedgerRefreshService {
	refreshConfig := LedgerRefreshConfig{
		CronSchedule: cfg.CronSchedule, // Default: 2h da manhã todos os dias
		SyncEnabled:  cfg.Enabled,      // Default: desabilitado
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": refreshConfig.CronSchedule,
		"enabled":       refreshConfig.SyncEnabled,
	}).Info("Configuração do agendador de atualização do ledger carregada")

	return &LedgerRefreshService{
		scheduler: gocron.NewScheduler(time.Local),
		generator: generator,
		config:    refreshConfig,
	}
}

func (s *LedgerRefreshService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de atualização do ledger desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de atualização do ledger")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.Refresh(ctx); err != nil {
			logrus.WithError(err).Error("Erro na atualização agendada do ledger")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização do ledger: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de atualização do ledger")
		s.scheduler.Stop()
	}()

	return nil
}

// Refresh regenera o ledger. Uma execução simultânea é ignorada.
func (s *LedgerRefreshService) Refresh(ctx context.Context) error {
	if !s.begin() {
		logrus.Warn("Atualização do ledger já está em execução")
		return nil
	}
	return s.run(ctx)
}

// run executa a geração de uma atualização já reservada por begin
func (s *LedgerRefreshService) run(ctx context.Context) error {
	logrus.Info("Iniciando atualização do ledger")

	result, err := s.generator.Generate(ctx)
	if err != nil {
		s.finish(0, err)
		return err
	}

	s.finish(result.SalesRecords, nil)

	logrus.WithField("sales_records", result.SalesRecords).Info("Atualização do ledger concluída")
	return nil
}

func (s *LedgerRefreshService) begin() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	return true
}

func (s *LedgerRefreshService) finish(salesRecords int, err error) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastSyncError = ""
	if err != nil {
		s.lastSyncError = err.Error()
		return
	}
	s.lastSalesRecords = salesRecords
}

// TriggerManualSync dispara a atualização em segundo plano.
// Retorna false quando já existe uma execução em andamento.
func (s *LedgerRefreshService) TriggerManualSync() bool {
	if !s.begin() {
		logrus.Info("Atualização do ledger já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando atualização manual do ledger")
	go func() {
		if err := s.run(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na atualização manual do ledger")
		}
	}()

	return true
}

// IsRunning informa se existe uma atualização em andamento
func (s *LedgerRefreshService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

// GetStatus retorna o status atual do agendador
func (s *LedgerRefreshService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
		"last_sales_records":     s.lastSalesRecords,
	}
}
