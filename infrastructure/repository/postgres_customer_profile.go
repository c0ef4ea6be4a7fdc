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

const customerProfilesTable = "customer_profiles"

var customerProfileColumns = []string{
	"id", "customer_id", "customer_name", "region", "country", "industry", "company_size",
	"total_revenue", "avg_deal_size", "payment_history_score", "risk_score", "risk_category",
	"last_order_date", "days_since_last_order",
}

type postgresCustomerProfileRepository struct {
	conn postgres.Conn
}

func NewPostgresCustomerProfileRepository(conn postgres.Conn) CustomerProfileRepository {
	return &postgresCustomerProfileRepository{
		conn: conn,
	}
}

func (r *postgresCustomerProfileRepository) DeleteAll(ctx context.Context) (int64, error) {
	query, args, err := squirrel.
		Delete(customerProfilesTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return result.RowsAffected()
}

func (r *postgresCustomerProfileRepository) InsertMany(ctx context.Context, profiles []*domain.CustomerProfile) error {
	if len(profiles) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, batch := range batches(profiles, insertBatchSize) {
			query, args, err := buildCustomerProfileInsert(batch)
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				if pqErr, ok := err.(*pq.Error); ok {
					return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
				}
				return fmt.Errorf("erro ao inserir perfis: %w", err)
			}
		}
		return nil
	})
}

func (r *postgresCustomerProfileRepository) Find(ctx context.Context, filter domain.CustomerFilter) ([]*domain.CustomerProfile, error) {
	query, args, err := squirrel.
		Select(customerProfileColumns...).
		From(customerProfilesTable).
		Where(customerProfileConditions(filter)).
		OrderBy("risk_score DESC", "customer_id ASC").
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

	profiles := make([]*domain.CustomerProfile, 0)
	for rows.Next() {
		profile := &domain.CustomerProfile{}
		var lastOrderDate sql.NullTime

		err := rows.Scan(
			&profile.ID,
			&profile.CustomerID,
			&profile.CustomerName,
			&profile.Region,
			&profile.Country,
			&profile.Industry,
			&profile.CompanySize,
			&profile.TotalRevenue,
			&profile.AvgDealSize,
			&profile.PaymentHistoryScore,
			&profile.RiskScore,
			&profile.RiskCategory,
			&lastOrderDate,
			&profile.DaysSinceLastOrder,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear perfil: %w", err)
		}

		if lastOrderDate.Valid {
			profile.LastOrderDate = &lastOrderDate.Time
		}
		profiles = append(profiles, profile)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return profiles, nil
}

func (r *postgresCustomerProfileRepository) Count(ctx context.Context, filter domain.CustomerFilter) (int64, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(customerProfilesTable).
		Where(customerProfileConditions(filter)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar perfis: %w", err)
	}

	return count, nil
}

func buildCustomerProfileInsert(profiles []*domain.CustomerProfile) (string, []interface{}, error) {
	builder := squirrel.
		Insert(customerProfilesTable).
		Columns(customerProfileColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, profile := range profiles {
		var lastOrderDate sql.NullTime
		if profile.LastOrderDate != nil {
			lastOrderDate = sql.NullTime{Time: *profile.LastOrderDate, Valid: true}
		}

		builder = builder.Values(
			profile.ID,
			profile.CustomerID,
			profile.CustomerName,
			profile.Region,
			profile.Country,
			profile.Industry,
			profile.CompanySize,
			profile.TotalRevenue,
			profile.AvgDealSize,
			profile.PaymentHistoryScore,
			profile.RiskScore,
			profile.RiskCategory,
			lastOrderDate,
			profile.DaysSinceLastOrder,
		)
	}

	return builder.ToSql()
}

func customerProfileConditions(filter domain.CustomerFilter) squirrel.And {
	conditions := squirrel.And{}
	if filter.Region != "" {
		conditions = append(conditions, squirrel.Eq{"region": filter.Region})
	}
	if filter.Country != "" {
		conditions = append(conditions, squirrel.Eq{"country": filter.Country})
	}
	if filter.RiskCategory != "" {
		conditions = append(conditions, squirrel.Eq{"risk_category": filter.RiskCategory})
	}
	return conditions
}
