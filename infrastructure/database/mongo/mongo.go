package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-risk-analytics/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	SalesRecordsCollection     = "sales_records"
	CustomerProfilesCollection = "customer_profiles"
)

var ErrEmptyURI = errors.New("mongo uri vazia")

type Connection struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewConnection conecta ao MongoDB com pool limitado e valida a conexão com ping
func NewConnection(ctx context.Context, cfg config.Mongo) (*Connection, error) {
	if cfg.URI == "" {
		return nil, ErrEmptyURI
	}

	clientOptions := options.Client().ApplyURI(cfg.URI).
		SetMaxPoolSize(50).
		SetMinPoolSize(5).
		SetConnectTimeout(5 * time.Second).
		SetSocketTimeout(30 * time.Second)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar ao MongoDB: %w", err)
	}

	pingCtx, cancelPing := context.WithTimeout(ctx, 2*time.Second)
	defer cancelPing()

	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("erro ao testar conexão com MongoDB: %w", err)
	}

	return &Connection{
		Client:   client,
		Database: client.Database(cfg.Database),
	}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx, nil)
}

func (c *Connection) Close(ctx context.Context) error {
	if err := c.Client.Disconnect(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao desconectar do MongoDB")
		return err
	}
	logrus.Info("Conexão com MongoDB encerrada")
	return nil
}

// EnsureIndexes cria os índices usados pelos filtros das consultas analíticas
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		SalesRecordsCollection: {
			{Keys: bson.D{{Key: "region", Value: 1}}},
			{Keys: bson.D{{Key: "country", Value: 1}}},
			{Keys: bson.D{{Key: "order_date", Value: -1}}},
			{Keys: bson.D{{Key: "payment_status", Value: 1}}},
		},
		CustomerProfilesCollection: {
			{Keys: bson.D{{Key: "customer_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "risk_category", Value: 1}, {Key: "region", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("erro ao criar índices de %s: %w", collection, err)
		}
	}

	return nil
}
