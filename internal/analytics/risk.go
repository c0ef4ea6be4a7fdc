// Package analytics contém os cálculos de risco, agregação e previsão sobre o ledger de vendas.
// Todas as funções são puras: recebem os registros já buscados e não guardam estado entre chamadas.
package analytics

import (
	"math"
	"time"

	"github.com/vfg2006/sales-risk-analytics/internal/domain"
)

const (
	LowRiskThreshold  = 30.0
	HighRiskThreshold = 60.0
	MaxRiskScore      = 100.0

	maxRecencyPoints    = 30.0
	paymentWeight       = 0.4
	maxVolatilityPoints = 30.0
	recencyHorizonDays  = 365.0

	hoursPerDay = 24
)

// VolatilitySource fornece valores uniformes em [0, 1). *rand.Rand satisfaz a interface.
type VolatilitySource interface {
	Float64() float64
}

// RiskAssessment é o resultado da pontuação de risco de um cliente
type RiskAssessment struct {
	OrderCount          int
	OverdueCount        int
	PaymentHistoryScore float64
	RiskScore           float64
	RiskCategory        domain.RiskCategory
	LastOrderDate       *time.Time
	DaysSinceLastOrder  int
}

type RiskScorer struct {
	volatility VolatilitySource
}

func NewRiskScorer(volatility VolatilitySource) *RiskScorer {
	return &RiskScorer{volatility: volatility}
}

// Score calcula o risco do cliente sorteando o fator de volatilidade na fonte injetada
func (s *RiskScorer) Score(orders []*domain.SalesRecord, now time.Time) RiskAssessment {
	return s.ScoreWithVolatility(orders, now, s.volatility.Float64()*maxVolatilityPoints)
}

// ScoreWithVolatility aplica a fórmula com um fator de volatilidade fixo (0-30)
func (*RiskScorer) ScoreWithVolatility(orders []*domain.SalesRecord, now time.Time, volatility float64) RiskAssessment {
	assessment := RiskAssessment{
		OrderCount:          len(orders),
		PaymentHistoryScore: 100,
		RiskCategory:        domain.RiskLow,
	}
	if len(orders) == 0 {
		return assessment
	}

	lastOrder := orders[0].OrderDate
	for _, order := range orders {
		if order.IsOverdue() {
			assessment.OverdueCount++
		}
		if order.OrderDate.After(lastOrder) {
			lastOrder = order.OrderDate
		}
	}

	overdueRatio := float64(assessment.OverdueCount) / float64(assessment.OrderCount)
	assessment.PaymentHistoryScore = math.Max(0, 100-overdueRatio*100)
	assessment.LastOrderDate = &lastOrder
	assessment.DaysSinceLastOrder = DaysBetween(lastOrder, now)

	recencyFactor := math.Min(float64(assessment.DaysSinceLastOrder)/recencyHorizonDays, 1) * maxRecencyPoints
	paymentFactor := (100 - assessment.PaymentHistoryScore) * paymentWeight

	assessment.RiskScore = clampRiskScore(recencyFactor + paymentFactor + volatility)
	assessment.RiskCategory = Categorize(assessment.RiskScore)

	return assessment
}

// Categorize aplica os limites fixos: <30 Low, [30,60) Medium, >=60 High
func Categorize(score float64) domain.RiskCategory {
	switch {
	case score < LowRiskThreshold:
		return domain.RiskLow
	case score < HighRiskThreshold:
		return domain.RiskMedium
	default:
		return domain.RiskHigh
	}
}

func clampRiskScore(score float64) float64 {
	return math.Min(math.Max(score, 0), MaxRiskScore)
}

// DaysBetween retorna os dias inteiros decorridos de from até to, nunca negativo
func DaysBetween(from, to time.Time) int {
	days := int(math.Floor(to.Sub(from).Hours() / hoursPerDay))
	if days < 0 {
		return 0
	}
	return days
}
