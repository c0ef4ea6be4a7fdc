package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-risk-analytics/internal/domain"
)

func TestMemorySalesRecordRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStore().SalesRecords()

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	records := []*domain.SalesRecord{
		{ID: "3", Region: domain.RegionEMEA, Country: "UK", OrderDate: base.AddDate(0, 0, 2), PaymentStatus: domain.PaymentStatusOverdue},
		{ID: "1", Region: domain.RegionAPAC, Country: "Japan", OrderDate: base, PaymentStatus: domain.PaymentStatusPaid},
		{ID: "2", Region: domain.RegionEMEA, Country: "France", OrderDate: base.AddDate(0, 0, 1), PaymentStatus: domain.PaymentStatusPaid},
	}
	require.NoError(t, repo.InsertMany(ctx, records))

	t.Run("busca ordenada por data do pedido", func(t *testing.T) {
		found, err := repo.Find(ctx, domain.SalesFilter{})
		require.NoError(t, err)

		ids := make([]string, 0, len(found))
		for _, record := range found {
			ids = append(ids, record.ID)
		}
		assert.Equal(t, []string{"1", "2", "3"}, ids)
	})

	t.Run("filtra por região e janela", func(t *testing.T) {
		start := base.AddDate(0, 0, 1)
		end := base.AddDate(0, 0, 2)

		found, err := repo.Find(ctx, domain.SalesFilter{Region: domain.RegionEMEA, StartDate: &start, EndDate: &end})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "2", found[0].ID)

		count, err := repo.Count(ctx, domain.SalesFilter{PaymentStatus: domain.PaymentStatusOverdue})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("registros retornados são cópias", func(t *testing.T) {
		found, err := repo.Find(ctx, domain.SalesFilter{Country: "Japan"})
		require.NoError(t, err)
		found[0].Revenue = 999

		again, err := repo.Find(ctx, domain.SalesFilter{Country: "Japan"})
		require.NoError(t, err)
		assert.Zero(t, again[0].Revenue)
	})

	t.Run("remove tudo", func(t *testing.T) {
		deleted, err := repo.DeleteAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), deleted)

		count, err := repo.Count(ctx, domain.SalesFilter{})
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestMemoryCustomerProfileRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStore().CustomerProfiles()

	require.NoError(t, repo.InsertMany(ctx, []*domain.CustomerProfile{
		{CustomerID: "A", Region: domain.RegionAPAC, RiskScore: 12, RiskCategory: domain.RiskLow},
		{CustomerID: "B", Region: domain.RegionEMEA, RiskScore: 75, RiskCategory: domain.RiskHigh},
		{CustomerID: "C", Region: domain.RegionEMEA, RiskScore: 64, RiskCategory: domain.RiskHigh},
	}))

	found, err := repo.Find(ctx, domain.CustomerFilter{RiskCategory: domain.RiskHigh})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "B", found[0].CustomerID)
	assert.Equal(t, "C", found[1].CustomerID)

	count, err := repo.Count(ctx, domain.CustomerFilter{Region: domain.RegionAPAC})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryStore()

	_, err := store.SalesRecords().Find(ctx, domain.SalesFilter{})
	assert.ErrorIs(t, err, context.Canceled)

	err = store.CustomerProfiles().InsertMany(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
