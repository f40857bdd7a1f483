package employee

import (
	"context"
	"time"
)

// Departments whose name contains one of these (case-insensitive) classify
// their employees as billable.
var BillableDepartmentKeywords = []string{"ingenieria", "diseño"}

// Service is the read-only roster surface.
type Service interface {
	// ListActive returns employees active and hired on or before asOf,
	// with derived billability.
	ListActive(ctx context.Context, asOf time.Time) ([]Employee, error)
}

// RosterRepository exposes the roster reads the KPI collector needs.
type RosterRepository interface {
	// ListActive returns employees active and hired on or before asOf.
	ListActive(ctx context.Context, asOf time.Time) ([]Employee, error)

	// CountActive counts employees active and hired on or before asOf.
	CountActive(ctx context.Context, asOf time.Time) (int, error)

	// BillableNames returns full names of active billable employees as of
	// asOf, matched by department-name keyword.
	BillableNames(ctx context.Context, asOf time.Time) ([]string, error)

	// SumSalaries totals salaries of active employees as of asOf;
	// billableOnly restricts to the billable set.
	SumSalaries(ctx context.Context, asOf time.Time, billableOnly bool) (float64, error)
}
