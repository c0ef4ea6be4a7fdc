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

type mongoCustomerProfileRepository struct {
	collection *mongo.Collection
}

func NewMongoCustomerProfileRepository(db *mongo.Database) CustomerProfileRepository {
	return &mongoCustomerProfileRepository{
		collection: db.Collection(mongodb.CustomerProfilesCollection),
	}
}

func (r *mongoCustomerProfileRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("erro ao remover perfis: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *mongoCustomerProfileRepository) InsertMany(ctx context.Context, profiles []*domain.CustomerProfile) error {
	for _, batch := range batches(profiles, insertBatchSize) {
		documents := make([]interface{}, len(batch))
		for i, profile := range batch {
			documents[i] = profile
		}

		if _, err := r.collection.InsertMany(ctx, documents); err != nil {
			return fmt.Errorf("erro ao inserir perfis: %w", err)
		}
	}
	return nil
}

func (r *mongoCustomerProfileRepository) Find(ctx context.Context, filter domain.CustomerFilter) ([]*domain.CustomerProfile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "risk_score", Value: -1}, {Key: "customer_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, customerProfileDocumentFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar perfis: %w", err)
	}
	defer cursor.Close(ctx)

	profiles := make([]*domain.CustomerProfile, 0)
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("erro ao decodificar perfis: %w", err)
	}

	return profiles, nil
}

func (r *mongoCustomerProfileRepository) Count(ctx context.Context, filter domain.CustomerFilter) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, customerProfileDocumentFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("erro ao contar perfis: %w", err)
	}
	return count, nil
}

func customerProfileDocumentFilter(filter domain.CustomerFilter) bson.D {
	document := bson.D{}
	if filter.Region != "" {
		document = append(document, bson.E{Key: "region", Value: filter.Region})
	}
	if filter.Country != "" {
		document = append(document, bson.E{Key: "country", Value: filter.Country})
	}
	if filter.RiskCategory != "" {
		document = append(document, bson.E{Key: "risk_category", Value: filter.RiskCategory})
	}
	return document
}
