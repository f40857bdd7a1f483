package kpi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kep-sistemas/kep-backend-go/internal/domain/employee"
	"github.com/kep-sistemas/kep-backend-go/internal/domain/revenue"
	"github.com/kep-sistemas/kep-backend-go/internal/domain/timesheet"
)

type fakeEntryStore struct {
	plantHours    float64
	billedHours   float64
	billableHours float64
	daysWorked    int
}

func (f *fakeEntryStore) Upsert(ctx context.Context, rec timesheet.Record) (bool, error) {
	return false, nil
}

func (f *fakeEntryStore) MaxWorkDate(ctx context.Context) (*time.Time, error) { return nil, nil }

func (f *fakeEntryStore) Count(ctx context.Context) (int64, error) { return 0, nil }

func (f *fakeEntryStore) SumSubmittedHours(ctx context.Context, start, end time.Time) (float64, error) {
	return f.plantHours, nil
}

func (f *fakeEntryStore) SumBilledHours(ctx context.Context, start, end time.Time) (float64, error) {
	return f.billedHours, nil
}

func (f *fakeEntryStore) SumHoursForEmployees(ctx context.Context, start, end time.Time, names []string) (float64, error) {
	if len(names) == 0 {
		return 0, nil
	}
	return f.billableHours, nil
}

func (f *fakeEntryStore) CountDistinctWorkDates(ctx context.Context, start, end time.Time) (int, error) {
	return f.daysWorked, nil
}

func (f *fakeEntryStore) List(ctx context.Context, start, end time.Time, limit int) ([]timesheet.Entry, error) {
	return nil, nil
}

type fakeRoster struct {
	count           int
	billableNames   []string
	totalPayroll    float64
	billablePayroll float64
}

func (f *fakeRoster) ListActive(ctx context.Context, asOf time.Time) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeRoster) CountActive(ctx context.Context, asOf time.Time) (int, error) {
	return f.count, nil
}

func (f *fakeRoster) BillableNames(ctx context.Context, asOf time.Time) ([]string, error) {
	return f.billableNames, nil
}

func (f *fakeRoster) SumSalaries(ctx context.Context, asOf time.Time, billableOnly bool) (float64, error) {
	if billableOnly {
		return f.billablePayroll, nil
	}
	return f.totalPayroll, nil
}

type fakeRevenueStore struct {
	totals revenue.Totals
}

func (f *fakeRevenueStore) Create(ctx context.Context, rev revenue.ActivityRevenue) (revenue.ActivityRevenue, error) {
	return rev, nil
}

func (f *fakeRevenueStore) List(ctx context.Context, year int) ([]revenue.ActivityRevenue, error) {
	return nil, nil
}

func (f *fakeRevenueStore) SumByMonthRange(ctx context.Context, startYear, startMonth, endYear, endMonth int) (revenue.Totals, error) {
	return f.totals, nil
}

func TestCollectDerivesCostPerHour(t *testing.T) {
	collector := NewCollector(
		&fakeEntryStore{plantHours: 400, billedHours: 170, billableHours: 200, daysWorked: 20},
		&fakeRoster{count: 10, billableNames: []string{"Juan Perez", "Maria Lopez"}, totalPayroll: 80000, billablePayroll: 50000},
		&fakeRevenueStore{totals: revenue.Totals{Direct: 90000, Indirect: 10000}},
	)

	bundle, err := collector.Collect(context.Background(), mustDate(t, "2024-03-01"), mustDate(t, "2024-03-31"), 100)
	require.NoError(t, err)

	assert.Equal(t, 10, bundle.EmployeeCount)
	assert.Equal(t, 2, bundle.BillableEmployeeCount)
	assert.Equal(t, 20, bundle.DaysWorked)
	assert.InDelta(t, 400.0, bundle.TotalPlantHours, 0.001)
	assert.InDelta(t, 170.0, bundle.TotalBilledHours, 0.001)
	assert.InDelta(t, 200.0, bundle.TotalBillableHours, 0.001)
	assert.InDelta(t, 100000.0, bundle.TotalProfit, 0.001)

	// Billable payroll over billable hours, not the supplied default.
	assert.InDelta(t, 250.0, bundle.CostPerHour, 0.001)

	require.NotNil(t, bundle.TotalPayrollCost)
	assert.InDelta(t, 80000.0, *bundle.TotalPayrollCost, 0.001)
	require.NotNil(t, bundle.DirectRevenue)
	assert.InDelta(t, 90000.0, *bundle.DirectRevenue, 0.001)
}

func TestCollectFallsBackToDefaultCostPerHour(t *testing.T) {
	// No billable employees: the derived rate is undefined, the caller's
	// default applies.
	collector := NewCollector(
		&fakeEntryStore{plantHours: 40, daysWorked: 5},
		&fakeRoster{count: 3, totalPayroll: 30000},
		&fakeRevenueStore{},
	)

	bundle, err := collector.Collect(context.Background(), mustDate(t, "2024-03-01"), mustDate(t, "2024-03-31"), 300)
	require.NoError(t, err)

	assert.InDelta(t, 300.0, bundle.CostPerHour, 0.001)
	assert.Equal(t, 0, bundle.BillableEmployeeCount)
	assert.InDelta(t, 0.0, bundle.TotalBillableHours, 0.001)
}
