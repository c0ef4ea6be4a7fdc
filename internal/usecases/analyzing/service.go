// Package analyzing responde às consultas analíticas do dashboard sobre o ledger persistido
package analyzing

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-risk-analytics/infrastructure/repository"
	"github.com/vfg2006/sales-risk-analytics/internal/analytics"
	"github.com/vfg2006/sales-risk-analytics/internal/domain"
	"github.com/vfg2006/sales-risk-analytics/pkg/log"
	"github.com/vfg2006/sales-risk-analytics/pkg/utils"
)

type Analyzer interface {
	GetKPIs(ctx context.Context) (*domain.KPIMetrics, error)
	GetRegionalSummaries(ctx context.Context) ([]domain.RegionalSummary, error)
	GetSalesTrends(ctx context.Context, granularity domain.Granularity, region domain.Region) ([]domain.SalesTrend, error)
	GetCustomerRiskAnalysis(ctx context.Context, filter domain.CustomerFilter) ([]*domain.CustomerProfile, error)
	GetForecast(ctx context.Context, months int) ([]domain.ForecastPoint, error)
	GetCountryPerformance(ctx context.Context, region domain.Region) ([]domain.CountryPerformance, error)
}

type Service struct {
	salesRepo    repository.SalesRecordRepository
	customerRepo repository.CustomerProfileRepository
	now          func() time.Time
}

func NewService(
	salesRepo repository.SalesRecordRepository,
	customerRepo repository.CustomerProfileRepository,
) *Service {
	return &Service{
		salesRepo:    salesRepo,
		customerRepo: customerRepo,
		now:          time.Now,
	}
}

func (s *Service) GetKPIs(ctx context.Context) (*domain.KPIMetrics, error) {
	windows := analytics.KPIWindows(s.now())

	current, err := s.salesRepo.Find(ctx, domain.SalesFilter{StartDate: &windows.CurrentStart})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar vendas da janela atual")
	}

	previous, err := s.salesRepo.Find(ctx, domain.SalesFilter{
		StartDate: &windows.PreviousStart,
		EndDate:   &windows.PreviousEnd,
	})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar vendas da janela anterior")
	}

	overdue, err := s.salesRepo.Find(ctx, domain.SalesFilter{PaymentStatus: domain.PaymentStatusOverdue})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar vendas vencidas")
	}

	highRisk, err := s.customerRepo.Count(ctx, domain.CustomerFilter{RiskCategory: domain.RiskHigh})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao contar clientes de alto risco")
	}

	kpis := analytics.ComputeKPIs(analytics.KPIInput{
		Current:           current,
		Previous:          previous,
		Overdue:           overdue,
		HighRiskCustomers: int(highRisk),
	})

	log.ForContext(ctx).WithFields(log.Fields{
		"current_orders":  kpis.TotalOrders,
		"previous_orders": len(previous),
	}).Debug("KPIs calculados")

	kpis.TotalRevenue = utils.RoundWithTwoDecimalPlace(kpis.TotalRevenue)
	kpis.AvgDealSize = utils.RoundWithTwoDecimalPlace(kpis.AvgDealSize)
	kpis.RevenueGrowth = utils.RoundWithOneDecimalPlace(kpis.RevenueGrowth)
	kpis.OverduePayments = utils.RoundWithTwoDecimalPlace(kpis.OverduePayments)
	for i := range kpis.TopRegions {
		kpis.TopRegions[i].Revenue = utils.RoundWithTwoDecimalPlace(kpis.TopRegions[i].Revenue)
	}

	return &kpis, nil
}

func (s *Service) GetRegionalSummaries(ctx context.Context) ([]domain.RegionalSummary, error) {
	records, err := s.salesRepo.Find(ctx, domain.SalesFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar vendas")
	}

	profiles, err := s.customerRepo.Find(ctx, domain.CustomerFilter{RiskCategory: domain.RiskHigh})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar perfis de alto risco")
	}

	summaries := analytics.RegionalSummaries(records, profiles, domain.Regions)
	for i := range summaries {
		summaries[i].TotalRevenue = utils.RoundWithTwoDecimalPlace(summaries[i].TotalRevenue)
		summaries[i].AvgDealSize = utils.RoundWithTwoDecimalPlace(summaries[i].AvgDealSize)
		summaries[i].RiskExposure = utils.RoundWithTwoDecimalPlace(summaries[i].RiskExposure)
		roundTopCustomers(summaries[i].TopCustomers)
	}

	return summaries, nil
}

func (s *Service) GetSalesTrends(ctx context.Context, granularity domain.Granularity, region domain.Region) ([]domain.SalesTrend, error) {
	records, err := s.salesRepo.Find(ctx, domain.SalesFilter{Region: region})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar vendas")
	}

	totals := analytics.AggregateByPeriod(records, granularity)

	trends := make([]domain.SalesTrend, 0, len(totals))
	for _, total := range totals {
		trends = append(trends, domain.SalesTrend{
			Period:  total.Key.String(),
			Revenue: utils.RoundWithTwoDecimalPlace(total.Revenue),
			Orders:  total.Orders,
		})
	}

	return trends, nil
}

// GetCustomerRiskAnalysis lista os perfis filtrados do maior para o menor risco
func (s *Service) GetCustomerRiskAnalysis(ctx context.Context, filter domain.CustomerFilter) ([]*domain.CustomerProfile, error) {
	profiles, err := s.customerRepo.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar perfis de clientes")
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].RiskScore > profiles[j].RiskScore
	})

	return profiles, nil
}

func (s *Service) GetForecast(ctx context.Context, months int) ([]domain.ForecastPoint, error) {
	now := s.now()
	since := now.AddDate(0, 0, -analytics.ForecastLookbackDays)

	records, err := s.salesRepo.Find(ctx, domain.SalesFilter{StartDate: &since})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar vendas do último ano")
	}

	points := analytics.Forecast(records, months, now)
	for i := range points {
		point := &points[i]
		if point.ActualRevenue != nil {
			point.ActualRevenue = roundedPtr(*point.ActualRevenue)
		}
		if point.ForecastedRevenue != nil {
			point.ForecastedRevenue = roundedPtr(*point.ForecastedRevenue)
		}
		if point.ConfidenceInterval != nil {
			point.ConfidenceInterval = &domain.ConfidenceInterval{
				Lower: utils.RoundWithTwoDecimalPlace(point.ConfidenceInterval.Lower),
				Upper: utils.RoundWithTwoDecimalPlace(point.ConfidenceInterval.Upper),
			}
		}
	}

	return points, nil
}

func (s *Service) GetCountryPerformance(ctx context.Context, region domain.Region) ([]domain.CountryPerformance, error) {
	records, err := s.salesRepo.Find(ctx, domain.SalesFilter{Region: region})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar vendas")
	}

	profiles, err := s.customerRepo.Find(ctx, domain.CustomerFilter{Region: region, RiskCategory: domain.RiskHigh})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar perfis de alto risco")
	}

	performance := analytics.CountryPerformance(records, profiles)
	for i := range performance {
		performance[i].Revenue = utils.RoundWithTwoDecimalPlace(performance[i].Revenue)
		performance[i].AvgDealSize = utils.RoundWithTwoDecimalPlace(performance[i].AvgDealSize)
	}

	return performance, nil
}

func roundTopCustomers(customers []domain.TopCustomer) {
	for i := range customers {
		customers[i].Revenue = utils.RoundWithTwoDecimalPlace(customers[i].Revenue)
	}
}

func roundedPtr(value float64) *float64 {
	rounded := utils.RoundWithTwoDecimalPlace(value)
	return &rounded
}
