package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-risk-analytics/internal/domain"
)

func TestSalesRecordConditions(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		filter       domain.SalesFilter
		expectedSQL  string
		expectedArgs []interface{}
	}{
		{
			name:        "sem filtros",
			filter:      domain.SalesFilter{},
			expectedSQL: "SELECT COUNT(*) FROM sales_records WHERE (1=1)",
		},
		{
			name:         "região e status",
			filter:       domain.SalesFilter{Region: domain.RegionEMEA, PaymentStatus: domain.PaymentStatusOverdue},
			expectedSQL:  "SELECT COUNT(*) FROM sales_records WHERE (region = $1 AND payment_status = $2)",
			expectedArgs: []interface{}{domain.RegionEMEA, domain.PaymentStatusOverdue},
		},
		{
			name:         "janela de datas com início inclusivo e fim exclusivo",
			filter:       domain.SalesFilter{Country: "Japan", StartDate: &start, EndDate: &end},
			expectedSQL:  "SELECT COUNT(*) FROM sales_records WHERE (country = $1 AND order_date >= $2 AND order_date < $3)",
			expectedArgs: []interface{}{"Japan", start, end},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := squirrel.
				Select("COUNT(*)").
				From(salesRecordsTable).
				Where(salesRecordConditions(tt.filter)).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()

			require.NoError(t, err)
			assert.Equal(t, tt.expectedSQL, query)
			if len(tt.expectedArgs) == 0 {
				assert.Empty(t, args)
				return
			}
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

func TestCustomerProfileConditions(t *testing.T) {
	query, args, err := squirrel.
		Select("id").
		From(customerProfilesTable).
		Where(customerProfileConditions(domain.CustomerFilter{Region: domain.RegionAPAC, RiskCategory: domain.RiskHigh})).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM customer_profiles WHERE (region = $1 AND risk_category = $2)", query)
	assert.Equal(t, []interface{}{domain.RegionAPAC, domain.RiskHigh}, args)
}

func TestBuildSalesRecordInsert(t *testing.T) {
	orderDate := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	records := []*domain.SalesRecord{
		{ID: "a", Region: domain.RegionAPAC, OrderDate: orderDate, PaymentDueDate: orderDate},
		{ID: "b", Region: domain.RegionEMEA, OrderDate: orderDate, PaymentDueDate: orderDate},
	}

	query, args, err := buildSalesRecordInsert(records)

	require.NoError(t, err)
	assert.Contains(t, query, "INSERT INTO sales_records (id,region,country")
	assert.Contains(t, query, "($17,$18,")
	assert.Len(t, args, len(records)*len(salesRecordColumns))
	assert.Equal(t, "b", args[len(salesRecordColumns)])
}

func TestBuildCustomerProfileInsert_NullLastOrderDate(t *testing.T) {
	lastOrder := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	profiles := []*domain.CustomerProfile{
		{ID: "p1", CustomerID: "CUST_APAC_1000", LastOrderDate: &lastOrder},
		{ID: "p2", CustomerID: "CUST_APAC_1001"},
	}

	_, args, err := buildCustomerProfileInsert(profiles)

	require.NoError(t, err)
	lastOrderIdx := 12
	assert.Equal(t, sql.NullTime{Time: lastOrder, Valid: true}, args[lastOrderIdx])
	assert.Equal(t, sql.NullTime{}, args[len(customerProfileColumns)+lastOrderIdx])
}

func TestBatches(t *testing.T) {
	items := make([]int, 1201)

	chunks := batches(items, insertBatchSize)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 500)
	assert.Len(t, chunks[1], 500)
	assert.Len(t, chunks[2], 201)
	assert.Empty(t, batches([]int{}, insertBatchSize))
}
