package kpi

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	domain "github.com/kep-sistemas/kep-backend-go/internal/domain/kpi"
	"github.com/kep-sistemas/kep-backend-go/internal/pkg/database"
	"github.com/kep-sistemas/kep-backend-go/internal/repository/postgresql"
)

type kpiServiceImpl struct {
	db                 *database.DB
	collector          domain.Collector
	calculator         *Calculator
	inputs             domain.InputRepository
	targets            domain.TargetRepository
	defaultCostPerHour float64
}

// NewKpiService builds the KPI surface. db backs the transaction wrap
// around the check-then-insert writes; a nil db runs those writes
// untransacted (the in-memory test stores have no transactions).
func NewKpiService(
	db *database.DB,
	collector domain.Collector,
	inputs domain.InputRepository,
	targets domain.TargetRepository,
	defaultCostPerHour float64,
) domain.Service {
	return &kpiServiceImpl{
		db:                 db,
		collector:          collector,
		calculator:         NewCalculator(),
		inputs:             inputs,
		targets:            targets,
		defaultCostPerHour: defaultCostPerHour,
	}
}

// inTransaction runs fn inside one database transaction, with the tx
// threaded through the context for the repository querier.
func (s *kpiServiceImpl) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		return fn(postgresql.ContextWithTx(ctx, tx))
	})
}

// Compute implements kpi.Service.
func (s *kpiServiceImpl) Compute(ctx context.Context, req domain.ComputeRequest) (domain.ComputeResponse, error) {
	if err := req.Validate(); err != nil {
		return domain.ComputeResponse{}, err
	}

	costPerHour := s.defaultCostPerHour
	if req.CostPerHour != nil {
		costPerHour = *req.CostPerHour
	}

	bundle, err := s.collector.Collect(ctx, req.StartDate, req.EndDate, costPerHour)
	if err != nil {
		return domain.ComputeResponse{}, err
	}

	resp := domain.ComputeResponse{
		StartDate: req.StartDate.Format("2006-01-02"),
		EndDate:   req.EndDate.Format("2006-01-02"),
		Bundle:    bundle.Snapshot(),
	}

	if req.Code != "" {
		result, err := s.calculator.Compute(req.Code, bundle)
		if err != nil {
			return domain.ComputeResponse{}, err
		}
		resp.Results = map[domain.Code]domain.Result{req.Code: result}
		return resp, nil
	}

	resp.Results = s.calculator.ComputeAll(bundle)
	return resp, nil
}

// CreateManualInput implements kpi.Service.
func (s *kpiServiceImpl) CreateManualInput(ctx context.Context, req domain.ManualInputRequest) (domain.ManualInput, error) {
	if err := req.Validate(); err != nil {
		return domain.ManualInput{}, err
	}

	in := domain.ManualInput{
		Month:                 req.Month,
		Year:                  req.Year,
		FileType:              req.FileType,
		TotalBillableHours:    req.TotalBillableHours,
		TotalBilledHours:      req.TotalBilledHours,
		TotalPlantHours:       req.TotalPlantHours,
		CostPerHour:           req.CostPerHour,
		TotalProfit:           req.TotalProfit,
		EmployeeCount:         req.EmployeeCount,
		BillableEmployeeCount: req.BillableEmployeeCount,
		DaysWorked:            req.DaysWorked,
	}

	var created domain.ManualInput
	err := s.inTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.inputs.ExistsForPeriod(ctx, in.Month, in.Year, in.FileType)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateBundle
		}

		created, err = s.inputs.Create(ctx, in)
		return err
	})
	if err != nil {
		return domain.ManualInput{}, err
	}
	return created, nil
}

// ListManualInputs implements kpi.Service.
func (s *kpiServiceImpl) ListManualInputs(ctx context.Context) ([]domain.ManualInput, error) {
	return s.inputs.List(ctx)
}

// GetManualInput implements kpi.Service.
func (s *kpiServiceImpl) GetManualInput(ctx context.Context, id string) (domain.ManualInput, error) {
	return s.inputs.GetByID(ctx, id)
}

// CreateTarget implements kpi.Service.
func (s *kpiServiceImpl) CreateTarget(ctx context.Context, req domain.TargetRequest) (domain.Target, error) {
	if err := req.Validate(); err != nil {
		return domain.Target{}, err
	}

	period, _ := time.Parse("2006-01-02", req.Period)

	var created domain.Target
	err := s.inTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.targets.ExistsForPeriod(ctx, req.Code, period)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateTarget
		}

		created, err = s.targets.Create(ctx, domain.Target{
			Code:        req.Code,
			Period:      period,
			TargetValue: req.TargetValue,
			MinValue:    req.MinValue,
			MaxValue:    req.MaxValue,
		})
		return err
	})
	if err != nil {
		return domain.Target{}, err
	}
	return created, nil
}

// ListTargets implements kpi.Service.
func (s *kpiServiceImpl) ListTargets(ctx context.Context) ([]domain.Target, error) {
	return s.targets.List(ctx)
}

// UpdateTarget implements kpi.Service.
func (s *kpiServiceImpl) UpdateTarget(ctx context.Context, id string, req domain.TargetRequest) (domain.Target, error) {
	if err := req.Validate(); err != nil {
		return domain.Target{}, err
	}

	period, _ := time.Parse("2006-01-02", req.Period)

	return s.targets.Update(ctx, domain.Target{
		ID:          id,
		Code:        req.Code,
		Period:      period,
		TargetValue: req.TargetValue,
		MinValue:    req.MinValue,
		MaxValue:    req.MaxValue,
	})
}

// DeleteTarget implements kpi.Service.
func (s *kpiServiceImpl) DeleteTarget(ctx context.Context, id string) error {
	return s.targets.Delete(ctx, id)
}
