package analytics

import (
	"sort"
	"time"

	"github.com/vfg2006/sales-risk-analytics/internal/domain"
)

const KPIWindowDays = 30

// Windows delimita a janela atual [CurrentStart, agora] e a anterior [PreviousStart, PreviousEnd)
type Windows struct {
	CurrentStart  time.Time
	PreviousStart time.Time
	PreviousEnd   time.Time
}

func KPIWindows(now time.Time) Windows {
	return Windows{
		CurrentStart:  now.AddDate(0, 0, -KPIWindowDays),
		PreviousStart: now.AddDate(0, 0, -2*KPIWindowDays),
		PreviousEnd:   now.AddDate(0, 0, -KPIWindowDays),
	}
}

// KPIInput reúne os conjuntos buscados para o cálculo dos KPIs.
// Overdue e HighRiskCustomers são globais, não limitados à janela.
type KPIInput struct {
	Current           []*domain.SalesRecord
	Previous          []*domain.SalesRecord
	Overdue           []*domain.SalesRecord
	HighRiskCustomers int
}

func ComputeKPIs(in KPIInput) domain.KPIMetrics {
	currentRevenue := sumRevenue(in.Current)
	previousRevenue := sumRevenue(in.Previous)

	metrics := domain.KPIMetrics{
		TotalRevenue:      currentRevenue,
		TotalOrders:       len(in.Current),
		RevenueGrowth:     Growth(currentRevenue, previousRevenue),
		HighRiskCustomers: in.HighRiskCustomers,
		OverduePayments:   sumRevenue(filterOverdue(in.Overdue)),
		TopRegions:        TopRegions(in.Current),
	}

	if metrics.TotalOrders > 0 {
		metrics.AvgDealSize = currentRevenue / float64(metrics.TotalOrders)
	}

	return metrics
}

// Growth retorna a variação percentual; 0 quando o período anterior não tem receita
func Growth(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// TopRegions ordena as regiões por receita decrescente, mantendo a ordem de aparição nos empates
func TopRegions(records []*domain.SalesRecord) []domain.RegionRevenue {
	index := make(map[domain.Region]int)
	regions := make([]domain.RegionRevenue, 0, len(domain.Regions))
	for _, record := range records {
		i, exists := index[record.Region]
		if !exists {
			i = len(regions)
			index[record.Region] = i
			regions = append(regions, domain.RegionRevenue{Region: record.Region})
		}
		regions[i].Revenue += record.Revenue
	}

	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].Revenue > regions[j].Revenue
	})

	return regions
}

func sumRevenue(records []*domain.SalesRecord) float64 {
	total := 0.0
	for _, record := range records {
		total += record.Revenue
	}
	return total
}

func filterOverdue(records []*domain.SalesRecord) []*domain.SalesRecord {
	overdue := make([]*domain.SalesRecord, 0, len(records))
	for _, record := range records {
		if record.IsOverdue() {
			overdue = append(overdue, record)
		}
	}
	return overdue
}
