package analytics

import (
	"time"

	"github.com/vfg2006/sales-risk-analytics/internal/domain"
)

var referenceNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type fixedVolatility float64

func (f fixedVolatility) Float64() float64 {
	return float64(f)
}

func sale(customerID string, region domain.Region, country string, revenue float64, orderDate time.Time) *domain.SalesRecord {
	return &domain.SalesRecord{
		ID:            customerID + "-" + orderDate.Format(time.DateOnly),
		Region:        region,
		Country:       country,
		CustomerID:    customerID,
		CustomerName:  "Cliente " + customerID,
		OrderDate:     orderDate,
		Revenue:       revenue,
		Quantity:      1,
		DealSize:      revenue,
		PaymentStatus: domain.PaymentStatusPaid,
	}
}

func overdueSale(customerID string, revenue float64, orderDate time.Time) *domain.SalesRecord {
	record := sale(customerID, domain.RegionEMEA, "Germany", revenue, orderDate)
	record.PaymentStatus = domain.PaymentStatusOverdue
	return record
}

func profile(customerID string, region domain.Region, country string, category domain.RiskCategory) *domain.CustomerProfile {
	return &domain.CustomerProfile{
		CustomerID:   customerID,
		Region:       region,
		Country:      country,
		RiskCategory: category,
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
