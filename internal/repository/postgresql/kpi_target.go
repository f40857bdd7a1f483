package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kep-sistemas/kep-backend-go/internal/domain/kpi"
	"github.com/kep-sistemas/kep-backend-go/internal/pkg/database"
)

type kpiTargetRepository struct {
	db *database.DB
}

func NewKpiTargetRepository(db *database.DB) kpi.TargetRepository {
	return &kpiTargetRepository{db: db}
}

// Create implements kpi.TargetRepository.
func (r *kpiTargetRepository) Create(ctx context.Context, t kpi.Target) (kpi.Target, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO kpi_targets (kpi_code, period, target_value, min_value, max_value)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, updated_at
	`

	err := q.QueryRow(ctx, query, string(t.Code), t.Period, t.TargetValue, t.MinValue, t.MaxValue).
		Scan(&t.ID, &t.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return kpi.Target{}, kpi.ErrDuplicateTarget
		}
		return kpi.Target{}, fmt.Errorf("failed to create KPI target: %w", err)
	}

	return t, nil
}

// List implements kpi.TargetRepository.
func (r *kpiTargetRepository) List(ctx context.Context) ([]kpi.Target, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, kpi_code, period, target_value, min_value, max_value, updated_at
		FROM kpi_targets
		ORDER BY kpi_code, period
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list KPI targets: %w", err)
	}
	defer rows.Close()

	var targets []kpi.Target
	for rows.Next() {
		var t kpi.Target
		var code string
		if err := rows.Scan(&t.ID, &code, &t.Period, &t.TargetValue, &t.MinValue, &t.MaxValue, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan KPI target: %w", err)
		}
		t.Code = kpi.Code(code)
		targets = append(targets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read KPI targets: %w", err)
	}

	return targets, nil
}

// Update implements kpi.TargetRepository.
func (r *kpiTargetRepository) Update(ctx context.Context, t kpi.Target) (kpi.Target, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE kpi_targets
		SET kpi_code = $2, period = $3, target_value = $4, min_value = $5, max_value = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query, t.ID, string(t.Code), t.Period, t.TargetValue, t.MinValue, t.MaxValue).
		Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kpi.Target{}, kpi.ErrTargetNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return kpi.Target{}, kpi.ErrDuplicateTarget
		}
		return kpi.Target{}, fmt.Errorf("failed to update KPI target: %w", err)
	}

	return t, nil
}

// Delete implements kpi.TargetRepository.
func (r *kpiTargetRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM kpi_targets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete KPI target: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return kpi.ErrTargetNotFound
	}

	return nil
}

// ExistsForPeriod implements kpi.TargetRepository.
func (r *kpiTargetRepository) ExistsForPeriod(ctx context.Context, code kpi.Code, period time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM kpi_targets WHERE kpi_code = $1 AND period = $2)`

	var exists bool
	err := q.QueryRow(ctx, query, string(code), period).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check for duplicate target: %w", err)
	}

	return exists, nil
}
