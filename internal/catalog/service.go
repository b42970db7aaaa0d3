package catalog

import (
	"context"

	"planwise-backend/internal/recommendations/engine"
)

// Service contains business logic for the plan catalog.
type Service struct {
	Repo PlansRepo
}

// ByCategory returns plans for a category. The category must parse.
func (s *Service) ByCategory(ctx context.Context, category string) ([]Plan, error) {
	cat, ok := engine.ParseCategory(category)
	if !ok {
		return nil, ErrInvalidCategory
	}
	return s.Repo.ListByCategory(ctx, string(cat))
}

// All returns the full catalog.
func (s *Service) All(ctx context.Context) ([]Plan, error) {
	return s.Repo.ListAll(ctx)
}

// ByID fetches one plan.
func (s *Service) ByID(ctx context.Context, planID string) (Plan, error) {
	return s.Repo.GetByID(ctx, planID)
}
