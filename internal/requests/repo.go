package requests

import "context"

// RequestsRepo defines persistence operations for service requests.
type RequestsRepo interface {
	Create(ctx context.Context, req ServiceRequest) error
	GetByID(ctx context.Context, id string) (ServiceRequest, error)
	ListByUser(ctx context.Context, userID string) ([]ServiceRequest, error)
	ListByStatus(ctx context.Context, status string, limit int) ([]ServiceRequest, error)
	UpdateStatus(ctx context.Context, id, status, note string) error
	SetPoAKey(ctx context.Context, id, poaKey string) error
	CountByStatus(ctx context.Context) (map[string]int, error)
}
