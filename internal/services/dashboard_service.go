package services

import (
	"context"
	"fmt"
	"strings"

	"hobbyhub/internal/models"
	"hobbyhub/internal/repositories"
)

// DashboardService computes the aggregate counts shown on the dashboard.
type DashboardService struct {
	repo repositories.GroupRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(repo repositories.GroupRepository) *DashboardService {
	return &DashboardService{
		repo: repo,
	}
}

// Summary returns the total group count, the count owned by email, and
// the count of pending groups. The three counts are independent queries;
// there is no transactional snapshot across them.
func (s *DashboardService) Summary(ctx context.Context, email string) (*models.DashboardSummary, error) {
	if email == "" {
		return nil, NewValidationError("email is required")
	}

	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count groups: %w", err)
	}
	mine, err := s.repo.CountByCreator(ctx, strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("failed to count owned groups: %w", err)
	}
	pending, err := s.repo.CountByStatus(ctx, "pending")
	if err != nil {
		return nil, fmt.Errorf("failed to count pending groups: %w", err)
	}

	return &models.DashboardSummary{
		TotalGroups:   total,
		MyGroups:      mine,
		PendingGroups: pending,
	}, nil
}
