package kpi

import (
	"context"
	"fmt"
	"time"

	"github.com/kep-sistemas/kep-backend-go/internal/domain/employee"
	domain "github.com/kep-sistemas/kep-backend-go/internal/domain/kpi"
	"github.com/kep-sistemas/kep-backend-go/internal/domain/revenue"
	"github.com/kep-sistemas/kep-backend-go/internal/domain/timesheet"
)

type collectorImpl struct {
	entries  timesheet.EntryRepository
	roster   employee.RosterRepository
	revenues revenue.Repository
}

// NewCollector builds the period data collector over the persisted stores.
func NewCollector(
	entries timesheet.EntryRepository,
	roster employee.RosterRepository,
	revenues revenue.Repository,
) domain.Collector {
	return &collectorImpl{
		entries:  entries,
		roster:   roster,
		revenues: revenues,
	}
}

// Collect implements kpi.Collector. The bundle is assembled fresh per call;
// a data source with nothing in range contributes zero rather than failing.
func (c *collectorImpl) Collect(ctx context.Context, start, end time.Time, defaultCostPerHour float64) (domain.InputBundle, error) {
	var bundle domain.InputBundle

	// Roster state as of the end of the period.
	employeeCount, err := c.roster.CountActive(ctx, end)
	if err != nil {
		return bundle, fmt.Errorf("failed to collect roster size: %w", err)
	}

	billableNames, err := c.roster.BillableNames(ctx, end)
	if err != nil {
		return bundle, fmt.Errorf("failed to collect billable roster: %w", err)
	}

	totalPayroll, err := c.roster.SumSalaries(ctx, end, false)
	if err != nil {
		return bundle, fmt.Errorf("failed to collect total payroll: %w", err)
	}

	billablePayroll, err := c.roster.SumSalaries(ctx, end, true)
	if err != nil {
		return bundle, fmt.Errorf("failed to collect billable payroll: %w", err)
	}

	// Hour aggregates over the period.
	plantHours, err := c.entries.SumSubmittedHours(ctx, start, end)
	if err != nil {
		return bundle, fmt.Errorf("failed to collect plant hours: %w", err)
	}

	billedHours, err := c.entries.SumBilledHours(ctx, start, end)
	if err != nil {
		return bundle, fmt.Errorf("failed to collect billed hours: %w", err)
	}

	billableHours, err := c.entries.SumHoursForEmployees(ctx, start, end, billableNames)
	if err != nil {
		return bundle, fmt.Errorf("failed to collect billable hours: %w", err)
	}

	daysWorked, err := c.entries.CountDistinctWorkDates(ctx, start, end)
	if err != nil {
		return bundle, fmt.Errorf("failed to collect worked days: %w", err)
	}

	// Revenue over every (month, year) the range touches.
	totals, err := c.revenues.SumByMonthRange(ctx,
		start.Year(), int(start.Month()),
		end.Year(), int(end.Month()),
	)
	if err != nil {
		return bundle, fmt.Errorf("failed to collect revenues: %w", err)
	}

	// Cost per hour derives from the billable payroll when the period has
	// billable hours; otherwise the caller-supplied default applies.
	costPerHour := defaultCostPerHour
	if len(billableNames) > 0 && billableHours > 0 {
		costPerHour = billablePayroll / billableHours
	}

	direct := totals.Direct
	indirect := totals.Indirect

	bundle = domain.InputBundle{
		TotalBillableHours:    billableHours,
		TotalBilledHours:      billedHours,
		TotalPlantHours:       plantHours,
		CostPerHour:           costPerHour,
		TotalProfit:           totals.Total(),
		EmployeeCount:         employeeCount,
		BillableEmployeeCount: len(billableNames),
		DaysWorked:            daysWorked,
		TotalPayrollCost:      &totalPayroll,
		DirectRevenue:         &direct,
		IndirectRevenue:       &indirect,
	}

	return bundle, nil
}
