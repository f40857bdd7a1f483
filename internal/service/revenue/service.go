package revenue

import (
	"context"

	domain "github.com/kep-sistemas/kep-backend-go/internal/domain/revenue"
)

type revenueServiceImpl struct {
	repo domain.Repository
}

func NewRevenueService(repo domain.Repository) domain.Service {
	return &revenueServiceImpl{repo: repo}
}

// Create implements domain.Service.
func (s *revenueServiceImpl) Create(ctx context.Context, req domain.CreateRequest) (domain.ActivityRevenue, error) {
	if err := req.Validate(); err != nil {
		return domain.ActivityRevenue{}, err
	}

	return s.repo.Create(ctx, domain.ActivityRevenue{
		Activity: req.Activity,
		Amount:   req.Amount,
		Kind:     req.Kind,
		Month:    req.Month,
		Year:     req.Year,
	})
}

// List implements domain.Service.
func (s *revenueServiceImpl) List(ctx context.Context, year int) ([]domain.ActivityRevenue, error) {
	return s.repo.List(ctx, year)
}
