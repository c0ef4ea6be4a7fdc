package repository

import (
	"context"
	"fmt"

	mongodb "github.com/vfg2006/sales-risk-analytics/infrastructure/database/mongo"
	"github.com/vfg2006/sales-risk-analytics/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoSalesRecordRepository struct {
	collection *mongo.Collection
}

func NewMongoSalesRecordRepository(db *mongo.Database) SalesRecordRepository {
	return &mongoSalesRecordRepository{
		collection: db.Collection(mongodb.SalesRecordsCollection),
	}
}

func (r *mongoSalesRecordRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("erro ao remover vendas: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *mongoSalesRecordRepository) InsertMany(ctx context.Context, records []*domain.SalesRecord) error {
	for _, batch := range batches(records, insertBatchSize) {
		documents := make([]interface{}, len(batch))
		for i, record := range batch {
			documents[i] = record
		}

		if _, err := r.collection.InsertMany(ctx, documents, options.InsertMany().SetOrdered(false)); err != nil {
			return fmt.Errorf("erro ao inserir vendas: %w", err)
		}
	}
	return nil
}

func (r *mongoSalesRecordRepository) Find(ctx context.Context, filter domain.SalesFilter) ([]*domain.SalesRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order_date", Value: 1}, {Key: "id", Value: 1}})

	cursor, err := r.collection.Find(ctx, salesRecordDocumentFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar vendas: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]*domain.SalesRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("erro ao decodificar vendas: %w", err)
	}

	return records, nil
}

func (r *mongoSalesRecordRepository) Count(ctx context.Context, filter domain.SalesFilter) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, salesRecordDocumentFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("erro ao contar vendas: %w", err)
	}
	return count, nil
}

func salesRecordDocumentFilter(filter domain.SalesFilter) bson.D {
	document := bson.D{}
	if filter.Region != "" {
		document = append(document, bson.E{Key: "region", Value: filter.Region})
	}
	if filter.Country != "" {
		document = append(document, bson.E{Key: "country", Value: filter.Country})
	}
	if filter.PaymentStatus != "" {
		document = append(document, bson.E{Key: "payment_status", Value: filter.PaymentStatus})
	}

	dateRange := bson.D{}
	if filter.StartDate != nil {
		dateRange = append(dateRange, bson.E{Key: "$gte", Value: *filter.StartDate})
	}
	if filter.EndDate != nil {
		dateRange = append(dateRange, bson.E{Key: "$lt", Value: *filter.EndDate})
	}
	if len(dateRange) > 0 {
		document = append(document, bson.E{Key: "order_date", Value: dateRange})
	}

	return document
}
