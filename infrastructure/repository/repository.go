package repository

import (
	"context"

	"github.com/vfg2006/sales-risk-analytics/internal/domain"
)

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

// insertBatchSize limita o número de linhas por INSERT em lote
const insertBatchSize = 500

type SalesRecordRepository interface {
	DeleteAll(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, records []*domain.SalesRecord) error
	Find(ctx context.Context, filter domain.SalesFilter) ([]*domain.SalesRecord, error)
	Count(ctx context.Context, filter domain.SalesFilter) (int64, error)
}

type CustomerProfileRepository interface {
	DeleteAll(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, profiles []*domain.CustomerProfile) error
	Find(ctx context.Context, filter domain.CustomerFilter) ([]*domain.CustomerProfile, error)
	Count(ctx context.Context, filter domain.CustomerFilter) (int64, error)
}

func batches[T any](items []T, size int) [][]T {
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
