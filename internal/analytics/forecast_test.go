package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-risk-analytics/internal/domain"
)

func TestFitLinearTrend(t *testing.T) {
	t.Run("reta exata", func(t *testing.T) {
		trend, ok := FitLinearTrend([]float64{100, 200, 300})

		require.True(t, ok)
		assert.InDelta(t, 100.0, trend.Slope, 1e-9)
		assert.InDelta(t, 100.0, trend.Intercept, 1e-9)
		assert.InDelta(t, 400.0, trend.At(3), 1e-9)
	})

	t.Run("série constante tem inclinação zero", func(t *testing.T) {
		trend, ok := FitLinearTrend([]float64{50, 50, 50, 50})

		require.True(t, ok)
		assert.InDelta(t, 0.0, trend.Slope, 1e-9)
		assert.InDelta(t, 50.0, trend.Intercept, 1e-9)
	})

	t.Run("menos de dois pontos", func(t *testing.T) {
		_, ok := FitLinearTrend([]float64{10})
		assert.False(t, ok)
	})
}

func TestForecast(t *testing.T) {
	threeMonths := []*domain.SalesRecord{
		sale("A", domain.RegionAPAC, "Japan", 100, date(2024, 1, 10)),
		sale("B", domain.RegionAPAC, "Japan", 200, date(2024, 2, 10)),
		sale("C", domain.RegionAPAC, "Japan", 120, date(2024, 3, 1)),
		sale("D", domain.RegionAPAC, "Japan", 180, date(2024, 3, 25)),
	}

	t.Run("histórico seguido da projeção", func(t *testing.T) {
		points := Forecast(threeMonths, 2, referenceNow)

		require.Len(t, points, 5)

		expectedHistory := []struct {
			period  string
			revenue float64
		}{
			{"2024-01", 100},
			{"2024-02", 200},
			{"2024-03", 300},
		}
		for i, expected := range expectedHistory {
			assert.Equal(t, expected.period, points[i].Period)
			require.NotNil(t, points[i].ActualRevenue)
			assert.Equal(t, expected.revenue, *points[i].ActualRevenue)
			assert.Nil(t, points[i].ForecastedRevenue)
			assert.Nil(t, points[i].ConfidenceInterval)
		}

		next := points[3]
		assert.Equal(t, "2024-07", next.Period)
		assert.Nil(t, next.ActualRevenue)
		require.NotNil(t, next.ForecastedRevenue)
		require.NotNil(t, next.ConfidenceInterval)
		assert.InDelta(t, 400.0, *next.ForecastedRevenue, 1e-9)
		assert.InDelta(t, 320.0, next.ConfidenceInterval.Lower, 1e-9)
		assert.InDelta(t, 480.0, next.ConfidenceInterval.Upper, 1e-9)

		assert.Equal(t, "2024-08", points[4].Period)
		assert.InDelta(t, 500.0, *points[4].ForecastedRevenue, 1e-9)
	})

	t.Run("menos de três meses resulta em lista vazia", func(t *testing.T) {
		points := Forecast(threeMonths[:2], 6, referenceNow)

		assert.NotNil(t, points)
		assert.Empty(t, points)
	})

	t.Run("histórico limitado aos seis últimos meses", func(t *testing.T) {
		records := make([]*domain.SalesRecord, 0, 10)
		for month := 1; month <= 10; month++ {
			records = append(records, sale("A", domain.RegionEMEA, "UK", float64(month*10), date(2023, time.Month(month), 5)))
		}

		points := Forecast(records, 0, referenceNow)

		require.Len(t, points, ForecastHistoryPoints)
		assert.Equal(t, "2023-05", points[0].Period)
		assert.Equal(t, "2023-10", points[5].Period)
	})

	t.Run("tendência de queda projeta receita negativa com banda invertida", func(t *testing.T) {
		falling := []*domain.SalesRecord{
			sale("A", domain.RegionAPAC, "Japan", 300, date(2024, 1, 10)),
			sale("B", domain.RegionAPAC, "Japan", 200, date(2024, 2, 10)),
			sale("C", domain.RegionAPAC, "Japan", 100, date(2024, 3, 10)),
		}

		points := Forecast(falling, 2, referenceNow)

		require.Len(t, points, 5)
		last := points[4]
		require.NotNil(t, last.ForecastedRevenue)
		assert.InDelta(t, -100.0, *last.ForecastedRevenue, 1e-9)
		assert.InDelta(t, -80.0, last.ConfidenceInterval.Lower, 1e-9)
		assert.InDelta(t, -120.0, last.ConfidenceInterval.Upper, 1e-9)
	})

	t.Run("intervalo contém a previsão", func(t *testing.T) {
		points := Forecast(threeMonths, DefaultForecastMonths, referenceNow)

		for _, point := range points[3:] {
			require.NotNil(t, point.ForecastedRevenue)
			assert.LessOrEqual(t, point.ConfidenceInterval.Lower, *point.ForecastedRevenue)
			assert.GreaterOrEqual(t, point.ConfidenceInterval.Upper, *point.ForecastedRevenue)
		}
	})
}
