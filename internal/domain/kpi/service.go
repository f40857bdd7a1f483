package kpi

import (
	"context"
	"time"
)

// Service is the KPI query surface: collect a period bundle, run the
// formulas, manage manual bundles and targets.
type Service interface {
	// Compute evaluates one code, or all seven when req.Code is empty, over
	// the bundle collected for the request period.
	Compute(ctx context.Context, req ComputeRequest) (ComputeResponse, error)

	// CreateManualInput stores a pre-aggregated bundle, rejecting
	// duplicates per (month, year, file_type).
	CreateManualInput(ctx context.Context, req ManualInputRequest) (ManualInput, error)

	ListManualInputs(ctx context.Context) ([]ManualInput, error)
	GetManualInput(ctx context.Context, id string) (ManualInput, error)

	CreateTarget(ctx context.Context, req TargetRequest) (Target, error)
	ListTargets(ctx context.Context) ([]Target, error)
	UpdateTarget(ctx context.Context, id string, req TargetRequest) (Target, error)
	DeleteTarget(ctx context.Context, id string) error
}

// Collector builds one InputBundle per query from the time-entry store,
// the roster and the revenue records. Missing sources contribute zero.
type Collector interface {
	Collect(ctx context.Context, start, end time.Time, defaultCostPerHour float64) (InputBundle, error)
}

// InputRepository stores manual bundles.
type InputRepository interface {
	Create(ctx context.Context, in ManualInput) (ManualInput, error)
	List(ctx context.Context) ([]ManualInput, error)
	GetByID(ctx context.Context, id string) (ManualInput, error)
	ExistsForPeriod(ctx context.Context, month, year int, fileType string) (bool, error)
}

// TargetRepository stores KPI targets.
type TargetRepository interface {
	Create(ctx context.Context, t Target) (Target, error)
	List(ctx context.Context) ([]Target, error)
	Update(ctx context.Context, t Target) (Target, error)
	Delete(ctx context.Context, id string) error
	ExistsForPeriod(ctx context.Context, code Code, period time.Time) (bool, error)
}
