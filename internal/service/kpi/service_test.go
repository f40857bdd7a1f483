package kpi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/kep-sistemas/kep-backend-go/internal/domain/kpi"
)

type fakeCollector struct {
	bundle          domain.InputBundle
	lastCostPerHour float64
}

func (f *fakeCollector) Collect(ctx context.Context, start, end time.Time, defaultCostPerHour float64) (domain.InputBundle, error) {
	f.lastCostPerHour = defaultCostPerHour
	return f.bundle, nil
}

type fakeInputRepo struct {
	inputs []domain.ManualInput
}

func (f *fakeInputRepo) Create(ctx context.Context, in domain.ManualInput) (domain.ManualInput, error) {
	in.ID = "fake-id"
	f.inputs = append(f.inputs, in)
	return in, nil
}

func (f *fakeInputRepo) List(ctx context.Context) ([]domain.ManualInput, error) {
	return f.inputs, nil
}

func (f *fakeInputRepo) GetByID(ctx context.Context, id string) (domain.ManualInput, error) {
	for _, in := range f.inputs {
		if in.ID == id {
			return in, nil
		}
	}
	return domain.ManualInput{}, domain.ErrManualInputNotFound
}

func (f *fakeInputRepo) ExistsForPeriod(ctx context.Context, month, year int, fileType string) (bool, error) {
	for _, in := range f.inputs {
		if in.Month == month && in.Year == year && in.FileType == fileType {
			return true, nil
		}
	}
	return false, nil
}

type fakeTargetRepo struct {
	targets []domain.Target
}

func (f *fakeTargetRepo) Create(ctx context.Context, t domain.Target) (domain.Target, error) {
	t.ID = "fake-target-id"
	f.targets = append(f.targets, t)
	return t, nil
}

func (f *fakeTargetRepo) List(ctx context.Context) ([]domain.Target, error) {
	return f.targets, nil
}

func (f *fakeTargetRepo) Update(ctx context.Context, t domain.Target) (domain.Target, error) {
	for i, existing := range f.targets {
		if existing.ID == t.ID {
			f.targets[i] = t
			return t, nil
		}
	}
	return domain.Target{}, domain.ErrTargetNotFound
}

func (f *fakeTargetRepo) Delete(ctx context.Context, id string) error {
	for i, existing := range f.targets {
		if existing.ID == id {
			f.targets = append(f.targets[:i], f.targets[i+1:]...)
			return nil
		}
	}
	return domain.ErrTargetNotFound
}

func (f *fakeTargetRepo) ExistsForPeriod(ctx context.Context, code domain.Code, period time.Time) (bool, error) {
	for _, existing := range f.targets {
		if existing.Code == code && existing.Period.Equal(period) {
			return true, nil
		}
	}
	return false, nil
}

func newTestService(collector *fakeCollector) (domain.Service, *fakeInputRepo, *fakeTargetRepo) {
	inputs := &fakeInputRepo{}
	targets := &fakeTargetRepo{}
	return NewKpiService(nil, collector, inputs, targets, 250), inputs, targets
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func TestComputeAllCodes(t *testing.T) {
	collector := &fakeCollector{bundle: fullBundle()}
	svc, _, _ := newTestService(collector)

	resp, err := svc.Compute(context.Background(), domain.ComputeRequest{
		StartDate: mustDate(t, "2024-03-01"),
		EndDate:   mustDate(t, "2024-03-31"),
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01", resp.StartDate)
	assert.Equal(t, "2024-03-31", resp.EndDate)
	assert.Len(t, resp.Results, len(domain.Codes))
	assert.Equal(t, 250.0, collector.lastCostPerHour)
	assert.Equal(t, fullBundle().Snapshot(), resp.Bundle)
}

func TestComputeSingleCodeWithCostOverride(t *testing.T) {
	collector := &fakeCollector{bundle: fullBundle()}
	svc, _, _ := newTestService(collector)

	resp, err := svc.Compute(context.Background(), domain.ComputeRequest{
		StartDate:   mustDate(t, "2024-03-01"),
		EndDate:     mustDate(t, "2024-03-31"),
		CostPerHour: floatPtr(300),
		Code:        domain.UBH,
	})
	require.NoError(t, err)

	assert.Equal(t, 300.0, collector.lastCostPerHour)
	require.Len(t, resp.Results, 1)
	assert.InDelta(t, 85.0, resp.Results[domain.UBH].Value, 0.001)
}

func TestComputeRejectsInvertedPeriod(t *testing.T) {
	collector := &fakeCollector{bundle: fullBundle()}
	svc, _, _ := newTestService(collector)

	_, err := svc.Compute(context.Background(), domain.ComputeRequest{
		StartDate: mustDate(t, "2024-04-01"),
		EndDate:   mustDate(t, "2024-03-01"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestCreateManualInputRejectsDuplicate(t *testing.T) {
	svc, _, _ := newTestService(&fakeCollector{})

	req := domain.ManualInputRequest{
		Month:              3,
		Year:               2024,
		FileType:           "total",
		TotalBillableHours: 100,
		EmployeeCount:      5,
	}

	created, err := svc.CreateManualInput(context.Background(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = svc.CreateManualInput(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrDuplicateBundle)
}

func TestCreateManualInputValidation(t *testing.T) {
	svc, _, _ := newTestService(&fakeCollector{})

	_, err := svc.CreateManualInput(context.Background(), domain.ManualInputRequest{
		Month:    13,
		Year:     2024,
		FileType: "total",
	})
	require.Error(t, err)

	var validationErr domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestTargetLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(&fakeCollector{})

	req := domain.TargetRequest{
		Code:        domain.UBH,
		Period:      "2024-03-01",
		TargetValue: 80,
	}

	target, err := svc.CreateTarget(ctx, req)
	require.NoError(t, err)

	_, err = svc.CreateTarget(ctx, req)
	assert.ErrorIs(t, err, domain.ErrDuplicateTarget)

	req.TargetValue = 85
	updated, err := svc.UpdateTarget(ctx, target.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 85.0, updated.TargetValue)

	require.NoError(t, svc.DeleteTarget(ctx, target.ID))
	assert.ErrorIs(t, svc.DeleteTarget(ctx, target.ID), domain.ErrTargetNotFound)
}
