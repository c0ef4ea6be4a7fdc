package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-risk-analytics/infrastructure/database/mongo"
	"github.com/vfg2006/sales-risk-analytics/infrastructure/database/postgres"
	"github.com/vfg2006/sales-risk-analytics/infrastructure/repository"
	"github.com/vfg2006/sales-risk-analytics/internal/config"
	"github.com/vfg2006/sales-risk-analytics/internal/domain"
)

// ledger é um par de repositórios de origem ou destino da migração
type ledger struct {
	sales     repository.SalesRecordRepository
	customers repository.CustomerProfileRepository
}

type migrationReport struct {
	SalesRecords     int
	CustomerProfiles int
	Elapsed          time.Duration
}

func setupLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.Info("Iniciando script de migração do ledger MongoDB -> PostgreSQL...")
}

func main() {
	dryRun := flag.Bool("dry-run", false, "apenas conta os documentos da origem, sem gravar no destino")
	flag.Parse()

	setupLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	mongoConn, err := mongo.NewConnection(ctx, cfg.Mongo)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao conectar ao MongoDB")
	}
	defer mongoConn.Close(context.Background())

	pgConn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao conectar ao PostgreSQL")
	}
	defer pgConn.Close()

	if err := postgres.EnsureSchema(ctx, pgConn); err != nil {
		logrus.WithError(err).Fatal("ERRO ao criar as tabelas do ledger")
	}

	source := ledger{
		sales:     repository.NewMongoSalesRecordRepository(mongoConn.Database),
		customers: repository.NewMongoCustomerProfileRepository(mongoConn.Database),
	}
	target := ledger{
		sales:     repository.NewPostgresSalesRecordRepository(pgConn),
		customers: repository.NewPostgresCustomerProfileRepository(pgConn),
	}

	report, err := migrate(ctx, source, target, *dryRun)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO na migração do ledger")
	}

	logrus.Infof("Migração concluída em %v. Vendas: %d, Perfis: %d", report.Elapsed, report.SalesRecords, report.CustomerProfiles)
}

// migrate substitui o ledger do destino pelo da origem e confere as contagens ao final
func migrate(ctx context.Context, source, target ledger, dryRun bool) (migrationReport, error) {
	startTime := time.Now()

	sales, err := source.sales.Find(ctx, domain.SalesFilter{})
	if err != nil {
		return migrationReport{}, fmt.Errorf("erro ao ler vendas da origem: %w", err)
	}

	profiles, err := source.customers.Find(ctx, domain.CustomerFilter{})
	if err != nil {
		return migrationReport{}, fmt.Errorf("erro ao ler perfis da origem: %w", err)
	}

	report := migrationReport{SalesRecords: len(sales), CustomerProfiles: len(profiles)}
	logrus.Infof("Origem contém %d vendas e %d perfis", report.SalesRecords, report.CustomerProfiles)

	if dryRun {
		logrus.Info("Dry run: nenhuma alteração gravada no destino")
		report.Elapsed = time.Since(startTime)
		return report, nil
	}

	deletedSales, err := target.sales.DeleteAll(ctx)
	if err != nil {
		return report, fmt.Errorf("erro ao limpar vendas do destino: %w", err)
	}

	deletedProfiles, err := target.customers.DeleteAll(ctx)
	if err != nil {
		return report, fmt.Errorf("erro ao limpar perfis do destino: %w", err)
	}
	logrus.Infof("Destino limpo. Vendas removidas: %d, Perfis removidos: %d", deletedSales, deletedProfiles)

	if err := target.sales.InsertMany(ctx, sales); err != nil {
		return report, fmt.Errorf("erro ao gravar vendas no destino: %w", err)
	}

	if err := target.customers.InsertMany(ctx, profiles); err != nil {
		return report, fmt.Errorf("erro ao gravar perfis no destino: %w", err)
	}

	if err := verifyCounts(ctx, target, report); err != nil {
		return report, err
	}

	report.Elapsed = time.Since(startTime)
	return report, nil
}

func verifyCounts(ctx context.Context, target ledger, expected migrationReport) error {
	salesCount, err := target.sales.Count(ctx, domain.SalesFilter{})
	if err != nil {
		return fmt.Errorf("erro ao contar vendas no destino: %w", err)
	}

	profilesCount, err := target.customers.Count(ctx, domain.CustomerFilter{})
	if err != nil {
		return fmt.Errorf("erro ao contar perfis no destino: %w", err)
	}

	if int(salesCount) != expected.SalesRecords || int(profilesCount) != expected.CustomerProfiles {
		return fmt.Errorf("contagem divergente no destino: vendas %d/%d, perfis %d/%d",
			salesCount, expected.SalesRecords, profilesCount, expected.CustomerProfiles)
	}

	return nil
}
