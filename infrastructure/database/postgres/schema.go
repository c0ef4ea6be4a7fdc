package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS sales_records (
		id               TEXT PRIMARY KEY,
		region           TEXT NOT NULL,
		country          TEXT NOT NULL,
		customer_id      TEXT NOT NULL,
		customer_name    TEXT NOT NULL,
		product_category TEXT NOT NULL,
		product_name     TEXT NOT NULL,
		sales_rep        TEXT NOT NULL,
		order_date       TIMESTAMPTZ NOT NULL,
		revenue          DOUBLE PRECISION NOT NULL,
		quantity         INTEGER NOT NULL,
		deal_size        DOUBLE PRECISION NOT NULL,
		currency         TEXT NOT NULL,
		payment_status   TEXT NOT NULL,
		payment_due_date TIMESTAMPTZ NOT NULL,
		days_overdue     INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_records_region ON sales_records (region)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_records_order_date ON sales_records (order_date)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_records_payment_status ON sales_records (payment_status)`,
	`CREATE TABLE IF NOT EXISTS customer_profiles (
		id                    TEXT PRIMARY KEY,
		customer_id           TEXT NOT NULL UNIQUE,
		customer_name         TEXT NOT NULL,
		region                TEXT NOT NULL,
		country               TEXT NOT NULL,
		industry              TEXT NOT NULL,
		company_size          TEXT NOT NULL,
		total_revenue         DOUBLE PRECISION NOT NULL,
		avg_deal_size         DOUBLE PRECISION NOT NULL,
		payment_history_score DOUBLE PRECISION NOT NULL,
		risk_score            DOUBLE PRECISION NOT NULL,
		risk_category         TEXT NOT NULL,
		last_order_date       TIMESTAMPTZ,
		days_since_last_order INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_customer_profiles_risk ON customer_profiles (risk_category, region)`,
}

// EnsureSchema cria as tabelas do ledger caso ainda não existam
func EnsureSchema(ctx context.Context, conn Conn) error {
	return conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, statement := range schema {
			if _, err := tx.ExecContext(ctx, statement); err != nil {
				return fmt.Errorf("erro ao criar schema: %w", err)
			}
		}
		return nil
	})
}
