package catalog

import (
	"context"
	"sync"
)

// MemoryRepo implements PlansRepo using the embedded seed catalog.
type MemoryRepo struct {
	mu    sync.RWMutex
	plans []Plan
}

// NewMemoryRepo constructs a MemoryRepo preloaded with the seed catalog.
func NewMemoryRepo() (*MemoryRepo, error) {
	plans, err := SeedPlans()
	if err != nil {
		return nil, err
	}
	return &MemoryRepo{plans: plans}, nil
}

// ListByCategory returns plans in the given category, catalog order.
func (r *MemoryRepo) ListByCategory(ctx context.Context, category string) ([]Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Plan, 0)
	for _, p := range r.plans {
		if p.Category == category {
			out = append(out, copyPlan(p))
		}
	}
	return out, nil
}

// ListAll returns every plan in catalog order.
func (r *MemoryRepo) ListAll(ctx context.Context) ([]Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Plan, 0, len(r.plans))
	for _, p := range r.plans {
		out = append(out, copyPlan(p))
	}
	return out, nil
}

// GetByID fetches a plan by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, planID string) (Plan, error) {
	if err := ctx.Err(); err != nil {
		return Plan{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.plans {
		if p.ID == planID {
			return copyPlan(p), nil
		}
	}
	return Plan{}, ErrNotFound
}

func copyPlan(p Plan) Plan {
	out := p
	out.Features = append([]string(nil), p.Features...)
	if p.Price != nil {
		price := *p.Price
		out.Price = &price
	}
	return out
}

var _ PlansRepo = (*MemoryRepo)(nil)
