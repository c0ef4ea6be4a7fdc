package main

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-risk-analytics/infrastructure/database/mongo"
	"github.com/vfg2006/sales-risk-analytics/infrastructure/database/postgres"
	"github.com/vfg2006/sales-risk-analytics/infrastructure/repository"
	"github.com/vfg2006/sales-risk-analytics/internal/api"
	"github.com/vfg2006/sales-risk-analytics/internal/api/handler"
	"github.com/vfg2006/sales-risk-analytics/internal/config"
	"github.com/vfg2006/sales-risk-analytics/internal/scheduler"
	"github.com/vfg2006/sales-risk-analytics/internal/usecases/analyzing"
	"github.com/vfg2006/sales-risk-analytics/internal/usecases/authenticating"
	"github.com/vfg2006/sales-risk-analytics/internal/usecases/synthesizing"
	"github.com/vfg2006/sales-risk-analytics/pkg/log"
)

// store agrupa os repositórios do driver escolhido e como encerrá-lo
type store struct {
	salesRepo    repository.SalesRecordRepository
	customerRepo repository.CustomerProfileRepository
	pinger       handler.Pinger
	close        func()
}

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logCloser := configureLogger(cfg.App)
	if logCloser != nil {
		defer logCloser.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st := openStore(ctx, cfg)
	defer st.close()

	generator := synthesizing.NewService(st.salesRepo, st.customerRepo, cfg.Synthesis)
	if cfg.Synthesis.SeedOnStartup {
		seedIfEmpty(ctx, generator)
	}

	analyzer := analyzing.NewService(st.salesRepo, st.customerRepo)
	authenticator := authenticating.NewService(cfg.Auth)

	ledgerRefreshService := scheduler.NewLedgerRefreshService(generator, cfg.LedgerRefresh)
	if err := ledgerRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de atualização do ledger")
	} else {
		logrus.Info("Agendador de atualização do ledger iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Dependencies{
		Analyzer:             analyzer,
		Generator:            generator,
		Authenticator:        authenticator,
		LedgerRefreshService: ledgerRefreshService,
		Pinger:               st.pinger,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato, o nível e a rotação de arquivo dos logs
func configureLogger(cfg config.App) io.Closer {
	closer, err := log.Setup(log.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.LogLevel)
	}

	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())
	return closer
}

// openStore conecta ao banco definido em DATABASE_DRIVER e prepara o schema
func openStore(ctx context.Context, cfg *config.Config) store {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		conn := mongoconn(ctx, cfg.Mongo)
		return store{
			salesRepo:    repository.NewMongoSalesRecordRepository(conn.Database),
			customerRepo: repository.NewMongoCustomerProfileRepository(conn.Database),
			pinger:       conn,
			close: func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := conn.Close(shutdownCtx); err != nil {
					logrus.WithError(err).Warn("Erro ao desconectar do MongoDB")
				}
			},
		}

	case config.DriverMemory:
		logrus.Warn("Usando armazenamento em memória, os dados serão perdidos ao reiniciar")
		memory := repository.NewMemoryStore()
		return store{
			salesRepo:    memory.SalesRecords(),
			customerRepo: memory.CustomerProfiles(),
			close:        func() {},
		}

	default:
		conn := pgconn(ctx, cfg.Database)
		return store{
			salesRepo:    repository.NewPostgresSalesRecordRepository(conn),
			customerRepo: repository.NewPostgresCustomerProfileRepository(conn),
			pinger:       conn,
			close: func() {
				if err := conn.Close(); err != nil {
					logrus.WithError(err).Warn("Erro ao fechar conexão com PostgreSQL")
				}
			},
		}
	}
}

// seedIfEmpty gera o primeiro ledger para o dashboard não subir vazio
func seedIfEmpty(ctx context.Context, generator synthesizing.Generator) {
	empty, err := generator.IsEmpty(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao verificar se o ledger está vazio")
		return
	}

	if !empty {
		logrus.Info("Ledger já populado, geração inicial ignorada")
		return
	}

	result, err := generator.Generate(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro na geração inicial do ledger")
		return
	}

	logrus.Info(result.Message)
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := postgres.EnsureSchema(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("Erro ao criar as tabelas do ledger")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// mongoconn cria a conexão com o MongoDB e garante os índices das coleções
func mongoconn(ctx context.Context, mongoConfig config.Mongo) *mongo.Connection {
	conn, err := mongo.NewConnection(ctx, mongoConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao MongoDB")
	}

	if err := mongo.EnsureIndexes(ctx, conn.Database); err != nil {
		logrus.WithError(err).Fatal("Erro ao criar os índices do MongoDB")
	}

	logrus.Info("Conexão com MongoDB estabelecida com sucesso")
	return conn
}
