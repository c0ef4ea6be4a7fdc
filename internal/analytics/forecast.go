package analytics

import (
	"time"

	"github.com/vfg2006/sales-risk-analytics/internal/domain"
)

const (
	ForecastLookbackDays  = 365
	DefaultForecastMonths = 6
	MinForecastMonths     = 3
	ForecastHistoryPoints = 6
	ConfidenceBand        = 0.2

	daysPerForecastStep = 30
)

// Trend é a reta ajustada por mínimos quadrados: receita = Slope*índice + Intercept
type Trend struct {
	Slope     float64
	Intercept float64
}

func (t Trend) At(index int) float64 {
	return t.Slope*float64(index) + t.Intercept
}

// FitLinearTrend ajusta a reta sobre os índices 0..n-1. Retorna false com menos de dois pontos.
func FitLinearTrend(values []float64) (Trend, bool) {
	n := float64(len(values))
	if len(values) < 2 {
		return Trend{}, false
	}

	var sumX, sumY float64
	for i, y := range values {
		sumX += float64(i)
		sumY += y
	}
	meanX := sumX / n
	meanY := sumY / n

	var covariance, variance float64
	for i, y := range values {
		dx := float64(i) - meanX
		covariance += dx * (y - meanY)
		variance += dx * dx
	}

	slope := covariance / variance
	return Trend{Slope: slope, Intercept: meanY - slope*meanX}, true
}

// Forecast agrega as vendas por mês e projeta months meses à frente.
// São necessários ao menos três meses com vendas; caso contrário o resultado é vazio.
// As chaves futuras somam 30*i dias a now, uma aproximação do calendário.
func Forecast(records []*domain.SalesRecord, months int, now time.Time) []domain.ForecastPoint {
	monthly := AggregateByPeriod(records, domain.Monthly)
	if len(monthly) < MinForecastMonths {
		return []domain.ForecastPoint{}
	}

	revenues := make([]float64, len(monthly))
	for i, bucket := range monthly {
		revenues[i] = bucket.Revenue
	}

	trend, _ := FitLinearTrend(revenues)

	points := make([]domain.ForecastPoint, 0, ForecastHistoryPoints+max(months, 0))

	historyStart := max(len(monthly)-ForecastHistoryPoints, 0)
	for _, bucket := range monthly[historyStart:] {
		actual := bucket.Revenue
		points = append(points, domain.ForecastPoint{
			Period:        bucket.Key.String(),
			ActualRevenue: &actual,
		})
	}

	lastIndex := len(monthly) - 1
	for i := 1; i <= months; i++ {
		forecast := trend.At(lastIndex + i)
		period := domain.PeriodKeyOf(now.AddDate(0, 0, daysPerForecastStep*i), domain.Monthly)

		// Com tendência negativa Lower fica acima de Upper; a banda é aplicada sem reordenar
		points = append(points, domain.ForecastPoint{
			Period:            period.String(),
			ForecastedRevenue: &forecast,
			ConfidenceInterval: &domain.ConfidenceInterval{
				Lower: forecast * (1 - ConfidenceBand),
				Upper: forecast * (1 + ConfidenceBand),
			},
		})
	}

	return points
}
