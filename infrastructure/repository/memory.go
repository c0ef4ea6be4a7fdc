package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/vfg2006/sales-risk-analytics/internal/domain"
)

// MemoryStore guarda o ledger em memória, usado com DATABASE_DRIVER=memory e nos testes
type MemoryStore struct {
	mu        sync.RWMutex
	sales     []*domain.SalesRecord
	customers []*domain.CustomerProfile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) SalesRecords() SalesRecordRepository {
	return &memorySalesRecordRepository{store: s}
}

func (s *MemoryStore) CustomerProfiles() CustomerProfileRepository {
	return &memoryCustomerProfileRepository{store: s}
}

type memorySalesRecordRepository struct {
	store *MemoryStore
}

func (r *memorySalesRecordRepository) DeleteAll(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	deleted := int64(len(r.store.sales))
	r.store.sales = nil
	return deleted, nil
}

func (r *memorySalesRecordRepository) InsertMany(ctx context.Context, records []*domain.SalesRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, record := range records {
		copied := *record
		r.store.sales = append(r.store.sales, &copied)
	}
	return nil
}

func (r *memorySalesRecordRepository) Find(ctx context.Context, filter domain.SalesFilter) ([]*domain.SalesRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records := make([]*domain.SalesRecord, 0)
	for _, record := range r.store.sales {
		if filter.Matches(record) {
			copied := *record
			records = append(records, &copied)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].OrderDate.Before(records[j].OrderDate)
	})

	return records, nil
}

func (r *memorySalesRecordRepository) Count(ctx context.Context, filter domain.SalesFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var count int64
	for _, record := range r.store.sales {
		if filter.Matches(record) {
			count++
		}
	}
	return count, nil
}

type memoryCustomerProfileRepository struct {
	store *MemoryStore
}

func (r *memoryCustomerProfileRepository) DeleteAll(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	deleted := int64(len(r.store.customers))
	r.store.customers = nil
	return deleted, nil
}

func (r *memoryCustomerProfileRepository) InsertMany(ctx context.Context, profiles []*domain.CustomerProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, profile := range profiles {
		copied := *profile
		r.store.customers = append(r.store.customers, &copied)
	}
	return nil
}

func (r *memoryCustomerProfileRepository) Find(ctx context.Context, filter domain.CustomerFilter) ([]*domain.CustomerProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	profiles := make([]*domain.CustomerProfile, 0)
	for _, profile := range r.store.customers {
		if filter.Matches(profile) {
			copied := *profile
			profiles = append(profiles, &copied)
		}
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].RiskScore > profiles[j].RiskScore
	})

	return profiles, nil
}

func (r *memoryCustomerProfileRepository) Count(ctx context.Context, filter domain.CustomerFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var count int64
	for _, profile := range r.store.customers {
		if filter.Matches(profile) {
			count++
		}
	}
	return count, nil
}
