package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kep-sistemas/kep-backend-go/internal/domain/employee"
	"github.com/kep-sistemas/kep-backend-go/internal/pkg/database"
)

type rosterRepository struct {
	db *database.DB
}

func NewRosterRepository(db *database.DB) employee.RosterRepository {
	return &rosterRepository{db: db}
}

// billableFilter matches departments whose name classifies employees as
// billable, built from the domain keyword list.
var billableFilter = func() string {
	clauses := make([]string, len(employee.BillableDepartmentKeywords))
	for i, kw := range employee.BillableDepartmentKeywords {
		clauses[i] = fmt.Sprintf("d.name ILIKE '%%%s%%'", kw)
	}
	return "(" + strings.Join(clauses, " OR ") + ")"
}()

// ListActive implements employee.RosterRepository.
func (r *rosterRepository) ListActive(ctx context.Context, asOf time.Time) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.full_name, e.position, e.email, e.hire_date,
		       e.active, e.salary, d.name,
		       COALESCE(` + billableFilter + `, FALSE),
		       e.created_at, e.updated_at
		FROM employees e
		LEFT JOIN departments d ON d.id = e.department_id
		WHERE e.active = TRUE AND e.hire_date <= $1
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		err := rows.Scan(
			&e.ID,
			&e.FullName,
			&e.Position,
			&e.Email,
			&e.HireDate,
			&e.Active,
			&e.Salary,
			&e.DepartmentName,
			&e.Billable,
			&e.CreatedAt,
			&e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}

	return employees, nil
}

// CountActive implements employee.RosterRepository.
func (r *rosterRepository) CountActive(ctx context.Context, asOf time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM employees
		WHERE active = TRUE AND hire_date <= $1
	`

	var count int
	err := q.QueryRow(ctx, query, asOf).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active employees: %w", err)
	}

	return count, nil
}

// BillableNames implements employee.RosterRepository.
func (r *rosterRepository) BillableNames(ctx context.Context, asOf time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.full_name
		FROM employees e
		JOIN departments d ON d.id = e.department_id
		WHERE e.active = TRUE AND e.hire_date <= $1 AND ` + billableFilter + `
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list billable employees: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan billable employee: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read billable employees: %w", err)
	}

	return names, nil
}

// SumSalaries implements employee.RosterRepository.
func (r *rosterRepository) SumSalaries(ctx context.Context, asOf time.Time, billableOnly bool) (float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(e.salary), 0)
		FROM employees e
		LEFT JOIN departments d ON d.id = e.department_id
		WHERE e.active = TRUE AND e.hire_date <= $1
	`
	if billableOnly {
		query += ` AND ` + billableFilter
	}

	var total float64
	err := q.QueryRow(ctx, query, asOf).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum salaries: %w", err)
	}

	return total, nil
}
