package synthesizing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-risk-analytics/infrastructure/repository"
	"github.com/vfg2006/sales-risk-analytics/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-risk-analytics/internal/config"
	"github.com/vfg2006/sales-risk-analytics/internal/domain"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func testConfig(records int) config.Synthesis {
	return config.Synthesis{
		RecordCount:     records,
		HistoryDays:     730,
		MeanRecencyDays: 180,
		Seed:            99,
	}
}

func TestService_Generate_ReplacesLedgerInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSalesRepo := mocks.NewMockSalesRecordRepository(ctrl)
	mockCustomerRepo := mocks.NewMockCustomerProfileRepository(ctrl)

	service := NewService(mockSalesRepo, mockCustomerRepo, testConfig(50))
	service.now = func() time.Time { return fixedNow }

	var insertedProfiles []*domain.CustomerProfile
	gomock.InOrder(
		mockSalesRepo.EXPECT().DeleteAll(gomock.Any()).Return(int64(10), nil),
		mockCustomerRepo.EXPECT().DeleteAll(gomock.Any()).Return(int64(4), nil),
		mockSalesRepo.EXPECT().InsertMany(gomock.Any(), gomock.Len(50)).Return(nil),
		mockCustomerRepo.EXPECT().InsertMany(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, profiles []*domain.CustomerProfile) error {
				insertedProfiles = profiles
				return nil
			}),
	)

	result, err := service.Generate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 50, result.SalesRecords)
	assert.Equal(t, len(insertedProfiles), result.CustomerProfiles)
	assert.Contains(t, result.Message, "Generated 50 sales records and")
}

func TestService_Generate_StopsOnRepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSalesRepo := mocks.NewMockSalesRecordRepository(ctrl)
	mockCustomerRepo := mocks.NewMockCustomerProfileRepository(ctrl)

	service := NewService(mockSalesRepo, mockCustomerRepo, testConfig(5))

	dbErr := errors.New("conexão recusada")
	mockSalesRepo.EXPECT().DeleteAll(gomock.Any()).Return(int64(0), nil)
	mockCustomerRepo.EXPECT().DeleteAll(gomock.Any()).Return(int64(0), nil)
	mockSalesRepo.EXPECT().InsertMany(gomock.Any(), gomock.Any()).Return(dbErr)

	result, err := service.Generate(context.Background())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "erro ao inserir vendas")
}

func TestService_Generate_ConcurrentCallsLeaveOneLedger(t *testing.T) {
	store := repository.NewMemoryStore()
	service := NewService(store.SalesRecords(), store.CustomerProfiles(), testConfig(200))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Generate(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := store.SalesRecords().Count(context.Background(), domain.SalesFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(200), count)
}

func TestService_IsEmpty(t *testing.T) {
	store := repository.NewMemoryStore()
	service := NewService(store.SalesRecords(), store.CustomerProfiles(), testConfig(3))

	empty, err := service.IsEmpty(context.Background())
	require.NoError(t, err)
	assert.True(t, empty)

	_, err = service.Generate(context.Background())
	require.NoError(t, err)

	empty, err = service.IsEmpty(context.Background())
	require.NoError(t, err)
	assert.False(t, empty)
}
