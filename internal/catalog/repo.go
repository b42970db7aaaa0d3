package catalog

import "context"

// PlansRepo defines persistence operations for the plan catalog.
type PlansRepo interface {
	ListByCategory(ctx context.Context, category string) ([]Plan, error)
	ListAll(ctx context.Context) ([]Plan, error)
	GetByID(ctx context.Context, planID string) (Plan, error)
}
