package analytics

import (
	"sort"

	"github.com/vfg2006/sales-risk-analytics/internal/domain"
)

// PeriodTotal é a soma de receita e pedidos de um bucket de período
type PeriodTotal struct {
	Key     domain.PeriodKey
	Revenue float64
	Orders  int
}

// AggregateByPeriod agrupa as vendas pela granularidade pedida e ordena os buckets cronologicamente.
// Entrada vazia resulta em lista vazia.
func AggregateByPeriod(records []*domain.SalesRecord, granularity domain.Granularity) []PeriodTotal {
	buckets := make(map[domain.PeriodKey]*PeriodTotal)
	for _, record := range records {
		key := domain.PeriodKeyOf(record.OrderDate, granularity)

		bucket, exists := buckets[key]
		if !exists {
			bucket = &PeriodTotal{Key: key}
			buckets[key] = bucket
		}

		bucket.Revenue += record.Revenue
		bucket.Orders++
	}

	totals := make([]PeriodTotal, 0, len(buckets))
	for _, bucket := range buckets {
		totals = append(totals, *bucket)
	}

	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Key.Less(totals[j].Key)
	})

	return totals
}
