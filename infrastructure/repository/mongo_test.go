package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-risk-analytics/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
)

func TestSalesRecordDocumentFilter(t *testing.T) {
	start := time.Date(2024, 4, 16, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		filter   domain.SalesFilter
		expected bson.D
	}{
		{
			name:     "sem filtros busca tudo",
			filter:   domain.SalesFilter{},
			expected: bson.D{},
		},
		{
			name:   "status de pagamento",
			filter: domain.SalesFilter{PaymentStatus: domain.PaymentStatusOverdue},
			expected: bson.D{
				{Key: "payment_status", Value: domain.PaymentStatusOverdue},
			},
		},
		{
			name:   "região com janela de datas",
			filter: domain.SalesFilter{Region: domain.RegionAmericas, StartDate: &start, EndDate: &end},
			expected: bson.D{
				{Key: "region", Value: domain.RegionAmericas},
				{Key: "order_date", Value: bson.D{
					{Key: "$gte", Value: start},
					{Key: "$lt", Value: end},
				}},
			},
		},
		{
			name:   "apenas início",
			filter: domain.SalesFilter{Country: "Chile", StartDate: &start},
			expected: bson.D{
				{Key: "country", Value: "Chile"},
				{Key: "order_date", Value: bson.D{{Key: "$gte", Value: start}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, salesRecordDocumentFilter(tt.filter))
		})
	}
}

func TestCustomerProfileDocumentFilter(t *testing.T) {
	filter := domain.CustomerFilter{Region: domain.RegionEMEA, RiskCategory: domain.RiskMedium}

	assert.Equal(t, bson.D{
		{Key: "region", Value: domain.RegionEMEA},
		{Key: "risk_category", Value: domain.RiskMedium},
	}, customerProfileDocumentFilter(filter))
	assert.Equal(t, bson.D{}, customerProfileDocumentFilter(domain.CustomerFilter{}))
}
