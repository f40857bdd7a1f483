package employee

import (
	"context"
	"time"

	domain "github.com/kep-sistemas/kep-backend-go/internal/domain/employee"
)

type rosterServiceImpl struct {
	repo domain.RosterRepository
}

func NewRosterService(repo domain.RosterRepository) domain.Service {
	return &rosterServiceImpl{repo: repo}
}

// ListActive implements domain.Service.
func (s *rosterServiceImpl) ListActive(ctx context.Context, asOf time.Time) ([]domain.Employee, error) {
	return s.repo.ListActive(ctx, asOf)
}
