package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kep-sistemas/kep-backend-go/internal/domain/kpi"
	"github.com/kep-sistemas/kep-backend-go/internal/pkg/database"
)

type kpiInputRepository struct {
	db *database.DB
}

func NewKpiInputRepository(db *database.DB) kpi.InputRepository {
	return &kpiInputRepository{db: db}
}

const kpiInputColumns = `
	id, month, year, file_type,
	total_billable_hours, total_billed_hours, total_plant_hours,
	cost_per_hour, total_profit,
	employee_count, billable_employee_count, days_worked,
	status, created_at, updated_at
`

// Create implements kpi.InputRepository. The unique index on
// (month, year, file_type) backs the duplicate-bundle rejection.
func (r *kpiInputRepository) Create(ctx context.Context, in kpi.ManualInput) (kpi.ManualInput, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO kpi_inputs (
			month, year, file_type,
			total_billable_hours, total_billed_hours, total_plant_hours,
			cost_per_hour, total_profit,
			employee_count, billable_employee_count, days_worked
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, status, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		in.Month, in.Year, in.FileType,
		in.TotalBillableHours, in.TotalBilledHours, in.TotalPlantHours,
		in.CostPerHour, in.TotalProfit,
		in.EmployeeCount, in.BillableEmployeeCount, in.DaysWorked,
	).Scan(&in.ID, &in.Status, &in.CreatedAt, &in.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return kpi.ManualInput{}, kpi.ErrDuplicateBundle
		}
		return kpi.ManualInput{}, fmt.Errorf("failed to create manual KPI input: %w", err)
	}

	return in, nil
}

// List implements kpi.InputRepository.
func (r *kpiInputRepository) List(ctx context.Context) ([]kpi.ManualInput, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + kpiInputColumns + ` FROM kpi_inputs ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list manual KPI inputs: %w", err)
	}
	defer rows.Close()

	var inputs []kpi.ManualInput
	for rows.Next() {
		in, err := scanKpiInput(rows)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manual KPI inputs: %w", err)
	}

	return inputs, nil
}

// GetByID implements kpi.InputRepository.
func (r *kpiInputRepository) GetByID(ctx context.Context, id string) (kpi.ManualInput, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + kpiInputColumns + ` FROM kpi_inputs WHERE id = $1`

	in, err := scanKpiInput(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kpi.ManualInput{}, kpi.ErrManualInputNotFound
		}
		return kpi.ManualInput{}, err
	}

	return in, nil
}

// ExistsForPeriod implements kpi.InputRepository.
func (r *kpiInputRepository) ExistsForPeriod(ctx context.Context, month, year int, fileType string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM kpi_inputs WHERE month = $1 AND year = $2 AND file_type = $3)`

	var exists bool
	err := q.QueryRow(ctx, query, month, year, fileType).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check for duplicate bundle: %w", err)
	}

	return exists, nil
}

func scanKpiInput(row pgx.Row) (kpi.ManualInput, error) {
	var in kpi.ManualInput
	err := row.Scan(
		&in.ID, &in.Month, &in.Year, &in.FileType,
		&in.TotalBillableHours, &in.TotalBilledHours, &in.TotalPlantHours,
		&in.CostPerHour, &in.TotalProfit,
		&in.EmployeeCount, &in.BillableEmployeeCount, &in.DaysWorked,
		&in.Status, &in.CreatedAt, &in.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kpi.ManualInput{}, err
		}
		return kpi.ManualInput{}, fmt.Errorf("failed to scan manual KPI input: %w", err)
	}
	return in, nil
}
