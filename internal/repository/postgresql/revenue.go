package postgresql

import (
	"context"
	"fmt"

	"github.com/kep-sistemas/kep-backend-go/internal/domain/revenue"
	"github.com/kep-sistemas/kep-backend-go/internal/pkg/database"
)

type revenueRepository struct {
	db *database.DB
}

func NewRevenueRepository(db *database.DB) revenue.Repository {
	return &revenueRepository{db: db}
}

// Create implements revenue.Repository.
func (r *revenueRepository) Create(ctx context.Context, rev revenue.ActivityRevenue) (revenue.ActivityRevenue, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO activity_revenues (activity, amount, kind, month, year)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		rev.Activity,
		rev.Amount,
		rev.Kind,
		rev.Month,
		rev.Year,
	).Scan(&rev.ID, &rev.CreatedAt)

	if err != nil {
		return revenue.ActivityRevenue{}, fmt.Errorf("failed to create activity revenue: %w", err)
	}

	return rev, nil
}

// List implements revenue.Repository. year = 0 lists everything.
func (r *revenueRepository) List(ctx context.Context, year int) ([]revenue.ActivityRevenue, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, activity, amount, kind, month, year, created_at
		FROM activity_revenues
		WHERE ($1 = 0 OR year = $1)
		ORDER BY year DESC, month DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity revenues: %w", err)
	}
	defer rows.Close()

	var revenues []revenue.ActivityRevenue
	for rows.Next() {
		var rev revenue.ActivityRevenue
		if err := rows.Scan(&rev.ID, &rev.Activity, &rev.Amount, &rev.Kind, &rev.Month, &rev.Year, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity revenue: %w", err)
		}
		revenues = append(revenues, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activity revenues: %w", err)
	}

	return revenues, nil
}

// SumByMonthRange implements revenue.Repository.
func (r *revenueRepository) SumByMonthRange(ctx context.Context, startYear, startMonth, endYear, endMonth int) (revenue.Totals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN kind = $3 THEN amount ELSE 0 END), 0) AS direct,
			COALESCE(SUM(CASE WHEN kind = $4 THEN amount ELSE 0 END), 0) AS indirect
		FROM activity_revenues
		WHERE (year * 12 + month) BETWEEN $1 AND $2
	`

	startOrdinal := startYear*12 + startMonth
	endOrdinal := endYear*12 + endMonth

	var totals revenue.Totals
	err := q.QueryRow(ctx, query, startOrdinal, endOrdinal, revenue.KindDirect, revenue.KindIndirect).Scan(
		&totals.Direct, &totals.Indirect,
	)
	if err != nil {
		return revenue.Totals{}, fmt.Errorf("failed to sum activity revenues: %w", err)
	}

	return totals, nil
}
