package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/sales-risk-analytics/infrastructure/database/postgres"
	"github.com/vfg2006/sales-risk-analytics/internal/domain"
)

const salesRecordsTable = "sales_records"

var salesRecordColumns = []string{
	"id", "region", "country", "customer_id", "customer_name", "product_category",
	"product_name", "sales_rep", "order_date", "revenue", "quantity", "deal_size",
	"currency", "payment_status", "payment_due_date", "days_overdue",
}

type postgresSalesRecordRepository struct {
	conn postgres.Conn
}

func NewPostgresSalesRecordRepository(conn postgres.Conn) SalesRecordRepository {
	return &postgresSalesRecordRepository{
		conn: conn,
	}
}

func (r *postgresSalesRecordRepository) DeleteAll(ctx context.Context) (int64, error) {
	query, args, err := squirrel.
		Delete(salesRecordsTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *postgresSalesRecordRepository) InsertMany(ctx context.Context, records []*domain.SalesRecord) error {
	if len(records) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, batch := range batches(records, insertBatchSize) {
			query, args, err := buildSalesRecordInsert(batch)
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				if pqErr, ok := err.(*pq.Error); ok {
					return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
				}
				return fmt.Errorf("erro ao inserir vendas: %w", err)
			}
		}
		return nil
	})
}

func (r *postgresSalesRecordRepository) Find(ctx context.Context, filter domain.SalesFilter) ([]*domain.SalesRecord, error) {
	query, args, err := squirrel.
		Select(salesRecordColumns...).
		From(salesRecordsTable).
		Where(salesRecordConditions(filter)).
		OrderBy("order_date ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.SalesRecord, 0)
	for rows.Next() {
		record := &domain.SalesRecord{}
		err := rows.Scan(
			&record.ID,
			&record.Region,
			&record.Country,
			&record.CustomerID,
			&record.CustomerName,
			&record.ProductCategory,
			&record.ProductName,
			&record.SalesRep,
			&record.OrderDate,
			&record.Revenue,
			&record.Quantity,
			&record.DealSize,
			&record.Currency,
			&record.PaymentStatus,
			&record.PaymentDueDate,
			&record.DaysOverdue,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear venda: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

func (r *postgresSalesRecordRepository) Count(ctx context.Context, filter domain.SalesFilter) (int64, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(salesRecordsTable).
		Where(salesRecordConditions(filter)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar vendas: %w", err)
	}

	return count, nil
}

func buildSalesRecordInsert(records []*domain.SalesRecord) (string, []interface{}, error) {
	builder := squirrel.
		Insert(salesRecordsTable).
		Columns(salesRecordColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, record := range records {
		builder = builder.Values(
			record.ID,
			record.Region,
			record.Country,
			record.CustomerID,
			record.CustomerName,
			record.ProductCategory,
			record.ProductName,
			record.SalesRep,
			record.OrderDate,
			record.Revenue,
			record.Quantity,
			record.DealSize,
			record.Currency,
			record.PaymentStatus,
			record.PaymentDueDate,
			record.DaysOverdue,
		)
	}

	return builder.ToSql()
}

func salesRecordConditions(filter domain.SalesFilter) squirrel.And {
	conditions := squirrel.And{}
	if filter.Region != "" {
		conditions = append(conditions, squirrel.Eq{"region": filter.Region})
	}
	if filter.Country != "" {
		conditions = append(conditions, squirrel.Eq{"country": filter.Country})
	}
	if filter.PaymentStatus != "" {
		conditions = append(conditions, squirrel.Eq{"payment_status": filter.PaymentStatus})
	}
	if filter.StartDate != nil {
		conditions = append(conditions, squirrel.GtOrEq{"order_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		conditions = append(conditions, squirrel.Lt{"order_date": *filter.EndDate})
	}
	return conditions
}
