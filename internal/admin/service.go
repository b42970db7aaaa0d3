package admin

import (
	"context"
	"fmt"
	"math"

	"planwise-backend/internal/catalog"
	"planwise-backend/internal/requests"
)

// Service exposes back-office operations over service requests.
type Service struct {
	Requests requests.RequestsRepo
	Plans    catalog.PlansRepo
}

// ListRequests returns requests in a status, oldest first.
func (s *Service) ListRequests(ctx context.Context, status string, limit int) ([]requests.ServiceRequest, error) {
	if !requests.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %s", requests.ErrInvalidInput, status)
	}
	return s.Requests.ListByStatus(ctx, status, limit)
}

// UpdateStatus moves a request to a new status after checking the transition.
func (s *Service) UpdateStatus(ctx context.Context, id, status, note string) (requests.ServiceRequest, error) {
	if !requests.ValidStatus(status) {
		return requests.ServiceRequest{}, fmt.Errorf("%w: %s", requests.ErrInvalidInput, status)
	}

	current, err := s.Requests.GetByID(ctx, id)
	if err != nil {
		return requests.ServiceRequest{}, err
	}
	if !requests.CanTransition(current.Status, status) {
		return requests.ServiceRequest{}, fmt.Errorf("%w: %s -> %s", requests.ErrInvalidTransition, current.Status, status)
	}

	if err := s.Requests.UpdateStatus(ctx, id, status, note); err != nil {
		return requests.ServiceRequest{}, err
	}
	return s.Requests.GetByID(ctx, id)
}

// Stats summarizes marketplace activity.
type Stats struct {
	RequestsByStatus   map[string]int     `json:"requestsByStatus"`
	PlanCount          int                `json:"planCount"`
	AvgPriceByCategory map[string]float64 `json:"avgPriceByCategory"`
}

// Overview collects marketplace stats for the dashboard.
func (s *Service) Overview(ctx context.Context) (Stats, error) {
	counts, err := s.Requests.CountByStatus(ctx)
	if err != nil {
		return Stats{}, err
	}
	plans, err := s.Plans.ListAll(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		RequestsByStatus:   counts,
		PlanCount:          len(plans),
		AvgPriceByCategory: avgPriceByCategory(plans),
	}, nil
}

// avgPriceByCategory averages listed prices only; quote-on-request plans
// carry no price and are excluded.
func avgPriceByCategory(plans []catalog.Plan) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, p := range plans {
		if p.Price == nil {
			continue
		}
		sums[p.Category] += *p.Price
		counts[p.Category]++
	}
	out := make(map[string]float64, len(sums))
	for cat, sum := range sums {
		avg := sum / float64(counts[cat])
		out[cat] = math.Round(avg*100) / 100
	}
	return out
}
