package requests

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo implements RequestsRepo in memory for local development and tests.
type MemoryRepo struct {
	mu       sync.RWMutex
	requests map[string]ServiceRequest
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{requests: make(map[string]ServiceRequest)}
}

// Create stores a new service request.
func (r *MemoryRepo) Create(ctx context.Context, req ServiceRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[req.ID] = req
	return nil
}

// GetByID fetches a service request by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (ServiceRequest, error) {
	if err := ctx.Err(); err != nil {
		return ServiceRequest{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.requests[id]
	if !ok {
		return ServiceRequest{}, ErrNotFound
	}
	return req, nil
}

// ListByUser lists a user's requests, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]ServiceRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []ServiceRequest
	for _, req := range r.requests {
		if req.UserID == userID {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ListByStatus lists requests in a given status, oldest first.
func (r *MemoryRepo) ListByStatus(ctx context.Context, status string, limit int) ([]ServiceRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []ServiceRequest
	for _, req := range r.requests {
		if req.Status == status {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// UpdateStatus sets a request's status and note.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, id, status, note string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return ErrNotFound
	}
	req.Status = status
	req.StatusNote = note
	req.UpdatedAt = time.Now().UTC()
	r.requests[id] = req
	return nil
}

// SetPoAKey records the storage key of the generated power of attorney.
func (r *MemoryRepo) SetPoAKey(ctx context.Context, id, poaKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return ErrNotFound
	}
	req.PoAKey = poaKey
	req.UpdatedAt = time.Now().UTC()
	r.requests[id] = req
	return nil
}

// CountByStatus returns request counts grouped by status.
func (r *MemoryRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]int)
	for _, req := range r.requests {
		out[req.Status]++
	}
	return out, nil
}

var _ RequestsRepo = (*MemoryRepo)(nil)
