package revenue

import "context"

// Service is the revenue-activity surface used by the HTTP layer.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (ActivityRevenue, error)

	// List returns records for a year, or all records when year is zero.
	List(ctx context.Context, year int) ([]ActivityRevenue, error)
}

// Repository stores revenue-activity records. SumByMonthRange feeds the KPI
// collector; an empty range or missing months simply contribute zero.
type Repository interface {
	Create(ctx context.Context, rev ActivityRevenue) (ActivityRevenue, error)
	List(ctx context.Context, year int) ([]ActivityRevenue, error)

	// SumByMonthRange sums amounts by kind over every (month, year) whose
	// ordinal (year*12 + month) falls between the bounds inclusive.
	SumByMonthRange(ctx context.Context, startYear, startMonth, endYear, endMonth int) (Totals, error)
}
