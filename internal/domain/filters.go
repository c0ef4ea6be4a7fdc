package domain

import "time"

// SalesFilter filtra vendas por igualdade (região, país, status) e por intervalo de data.
// StartDate é inclusivo e EndDate exclusivo.
type SalesFilter struct {
	Region        Region
	Country       string
	PaymentStatus PaymentStatus
	StartDate     *time.Time
	EndDate       *time.Time
}

func (f SalesFilter) Matches(record *SalesRecord) bool {
	if f.Region != "" && record.Region != f.Region {
		return false
	}
	if f.Country != "" && record.Country != f.Country {
		return false
	}
	if f.PaymentStatus != "" && record.PaymentStatus != f.PaymentStatus {
		return false
	}
	if f.StartDate != nil && record.OrderDate.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && !record.OrderDate.Before(*f.EndDate) {
		return false
	}
	return true
}

type CustomerFilter struct {
	Region       Region
	Country      string
	RiskCategory RiskCategory
}

func (f CustomerFilter) Matches(profile *CustomerProfile) bool {
	if f.Region != "" && profile.Region != f.Region {
		return false
	}
	if f.Country != "" && profile.Country != f.Country {
		return false
	}
	if f.RiskCategory != "" && profile.RiskCategory != f.RiskCategory {
		return false
	}
	return true
}
