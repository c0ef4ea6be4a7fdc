// Package synthesizing gera e persiste o ledger sintético de vendas e perfis de risco
package synthesizing

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-risk-analytics/infrastructure/repository"
	"github.com/vfg2006/sales-risk-analytics/internal/analytics"
	"github.com/vfg2006/sales-risk-analytics/internal/config"
	"github.com/vfg2006/sales-risk-analytics/internal/domain"
	"github.com/vfg2006/sales-risk-analytics/pkg/metrics"
)

//go:generate mockgen -source=service.go -destination=mocks/generator_mock.go -package=mocks

type Generator interface {
	Generate(ctx context.Context) (*domain.GenerationResult, error)
	IsEmpty(ctx context.Context) (bool, error)
}

type Service struct {
	mu           sync.Mutex
	salesRepo    repository.SalesRecordRepository
	customerRepo repository.CustomerProfileRepository
	synthesizer  *analytics.Synthesizer
	now          func() time.Time
}

func NewService(
	salesRepo repository.SalesRecordRepository,
	customerRepo repository.CustomerProfileRepository,
	cfg config.Synthesis,
) *Service {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logrus.WithFields(logrus.Fields{
		"record_count": cfg.RecordCount,
		"history_days": cfg.HistoryDays,
		"seed":         seed,
	}).Info("Configuração do gerador de ledger carregada")

	synthesizer := analytics.NewSynthesizer(analytics.SynthesisConfig{
		RecordCount:     cfg.RecordCount,
		HistoryDays:     cfg.HistoryDays,
		MeanRecencyDays: cfg.MeanRecencyDays,
	}, rand.New(rand.NewSource(seed)))

	return &Service{
		salesRepo:    salesRepo,
		customerRepo: customerRepo,
		synthesizer:  synthesizer,
		now:          time.Now,
	}
}

// Generate substitui todo o ledger por um novo conjunto sintético.
// Gerações concorrentes são serializadas; leituras durante a troca podem ver o ledger vazio.
func (s *Service) Generate(ctx context.Context) (*domain.GenerationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.generate(ctx)
	if err != nil {
		metrics.LedgerGenerations.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.LedgerGenerations.WithLabelValues("success").Inc()
	metrics.LedgerSize.WithLabelValues("sales_records").Set(float64(result.SalesRecords))
	metrics.LedgerSize.WithLabelValues("customer_profiles").Set(float64(result.CustomerProfiles))

	return result, nil
}

func (s *Service) generate(ctx context.Context) (*domain.GenerationResult, error) {
	startedAt := time.Now()

	ledger, err := s.synthesizer.Generate(s.now())
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar ledger")
	}

	deletedSales, err := s.salesRepo.DeleteAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao remover vendas")
	}

	deletedProfiles, err := s.customerRepo.DeleteAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao remover perfis de clientes")
	}

	if err := s.salesRepo.InsertMany(ctx, ledger.Sales); err != nil {
		return nil, errors.Wrap(err, "erro ao inserir vendas")
	}

	if err := s.customerRepo.InsertMany(ctx, ledger.Customers); err != nil {
		return nil, errors.Wrap(err, "erro ao inserir perfis de clientes")
	}

	logrus.WithFields(logrus.Fields{
		"deleted_sales":    deletedSales,
		"deleted_profiles": deletedProfiles,
		"sales":            len(ledger.Sales),
		"profiles":         len(ledger.Customers),
		"duration":         time.Since(startedAt).String(),
	}).Info("Ledger regenerado")

	return &domain.GenerationResult{
		Message:          fmt.Sprintf("Generated %d sales records and %d customer profiles", len(ledger.Sales), len(ledger.Customers)),
		SalesRecords:     len(ledger.Sales),
		CustomerProfiles: len(ledger.Customers),
	}, nil
}

// IsEmpty indica se ainda não há vendas persistidas
func (s *Service) IsEmpty(ctx context.Context) (bool, error) {
	count, err := s.salesRepo.Count(ctx, domain.SalesFilter{})
	if err != nil {
		return false, errors.Wrap(err, "erro ao contar vendas")
	}
	return count == 0, nil
}
