package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kep-sistemas/kep-backend-go/internal/domain/timesheet"
	"github.com/kep-sistemas/kep-backend-go/internal/pkg/database"
)

type timeEntryRepository struct {
	db *database.DB
}

func NewTimeEntryRepository(db *database.DB) timesheet.EntryRepository {
	return &timeEntryRepository{db: db}
}

// Upsert implements timesheet.EntryRepository. The natural key
// (work_date, employee_name, task) is enforced by a unique constraint; a
// conflict overwrites every non-key field (last writer wins).
func (r *timeEntryRepository) Upsert(ctx context.Context, rec timesheet.Record) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_entries (
			work_date, employee_name, task, hours_worked, submission_status,
			employee_group, manager, project_active, order_ticket, plant_code
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), NULLIF($10, '')
		)
		ON CONFLICT (work_date, employee_name, task) DO UPDATE SET
			hours_worked      = EXCLUDED.hours_worked,
			submission_status = EXCLUDED.submission_status,
			employee_group    = EXCLUDED.employee_group,
			manager           = EXCLUDED.manager,
			project_active    = EXCLUDED.project_active,
			order_ticket      = EXCLUDED.order_ticket,
			plant_code        = EXCLUDED.plant_code,
			updated_at        = NOW()
		RETURNING (xmax = 0) AS inserted
	`

	var inserted bool
	err := q.QueryRow(ctx, query,
		rec.WorkDate,
		rec.EmployeeName,
		rec.Task,
		rec.HoursWorked,
		rec.SubmissionStatus,
		rec.EmployeeGroup,
		rec.Manager,
		rec.ProjectActive,
		rec.OrderTicket,
		rec.PlantCode,
	).Scan(&inserted)

	if err != nil {
		return false, fmt.Errorf("failed to upsert time entry: %w", err)
	}

	return inserted, nil
}

// MaxWorkDate implements timesheet.EntryRepository.
func (r *timeEntryRepository) MaxWorkDate(ctx context.Context) (*time.Time, error) {
	q := GetQuerier(ctx, r.db)

	var max *time.Time
	err := q.QueryRow(ctx, `SELECT MAX(work_date) FROM time_entries`).Scan(&max)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get watermark date: %w", err)
	}

	return max, nil
}

// Count implements timesheet.EntryRepository.
func (r *timeEntryRepository) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM time_entries`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count time entries: %w", err)
	}

	return count, nil
}

// SumSubmittedHours implements timesheet.EntryRepository.
func (r *timeEntryRepository) SumSubmittedHours(ctx context.Context, start, end time.Time) (float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(hours_worked), 0)
		FROM time_entries
		WHERE work_date >= $1 AND work_date <= $2
		  AND submission_status = 'Submitted'
	`

	var total float64
	err := q.QueryRow(ctx, query, start, end).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum submitted hours: %w", err)
	}

	return total, nil
}

// SumBilledHours implements timesheet.EntryRepository.
func (r *timeEntryRepository) SumBilledHours(ctx context.Context, start, end time.Time) (float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(hours_worked), 0)
		FROM time_entries
		WHERE work_date >= $1 AND work_date <= $2
		  AND submission_status = 'Submitted'
		  AND project_active = TRUE
		  AND order_ticket IS NOT NULL
		  AND order_ticket <> ''
	`

	var total float64
	err := q.QueryRow(ctx, query, start, end).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum billed hours: %w", err)
	}

	return total, nil
}

// SumHoursForEmployees implements timesheet.EntryRepository.
func (r *timeEntryRepository) SumHoursForEmployees(ctx context.Context, start, end time.Time, names []string) (float64, error) {
	if len(names) == 0 {
		return 0, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(hours_worked), 0)
		FROM time_entries
		WHERE work_date >= $1 AND work_date <= $2
		  AND submission_status = 'Submitted'
		  AND employee_name = ANY($3)
	`

	var total float64
	err := q.QueryRow(ctx, query, start, end, names).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum hours for employees: %w", err)
	}

	return total, nil
}

// List implements timesheet.EntryRepository.
func (r *timeEntryRepository) List(ctx context.Context, start, end time.Time, limit int) ([]timesheet.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, work_date, employee_name, task, hours_worked,
		       submission_status, employee_group, manager, project_active,
		       order_ticket, plant_code, created_at, updated_at
		FROM time_entries
		WHERE work_date >= $1 AND work_date <= $2
		ORDER BY work_date DESC, employee_name, task
		LIMIT $3
	`

	rows, err := q.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	var entries []timesheet.Entry
	for rows.Next() {
		var e timesheet.Entry
		err := rows.Scan(
			&e.ID,
			&e.WorkDate,
			&e.EmployeeName,
			&e.Task,
			&e.HoursWorked,
			&e.SubmissionStatus,
			&e.EmployeeGroup,
			&e.Manager,
			&e.ProjectActive,
			&e.OrderTicket,
			&e.PlantCode,
			&e.CreatedAt,
			&e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read time entries: %w", err)
	}

	return entries, nil
}

// CountDistinctWorkDates implements timesheet.EntryRepository.
func (r *timeEntryRepository) CountDistinctWorkDates(ctx context.Context, start, end time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(DISTINCT work_date)
		FROM time_entries
		WHERE work_date >= $1 AND work_date <= $2
		  AND submission_status = 'Submitted'
	`

	var count int
	err := q.QueryRow(ctx, query, start, end).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count distinct work dates: %w", err)
	}

	return count, nil
}
