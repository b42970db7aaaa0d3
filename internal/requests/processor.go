package requests

import (
	"context"
	"fmt"
	"strings"
	"time"

	"planwise-backend/internal/shared/telemetry"
)

// Process files a pending request with the provider: it renders the power
// of attorney, stores it next to the signature and marks the request
// submitted. Re-processing a non-pending request is a no-op so queue
// redeliveries stay safe.
func (s *Service) Process(ctx context.Context, id string) error {
	req, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if req.Status != StatusPending {
		telemetry.Info("request.process_skipped", map[string]any{
			"service_request_id": req.ID,
			"status":             req.Status,
		})
		return nil
	}

	doc := BuildPoA(req, time.Now().UTC())
	poaKey := fmt.Sprintf("requests/%s/poa.txt", req.ID)
	if _, err := s.Store.SaveWithKey(ctx, poaKey, "text/plain; charset=utf-8", strings.NewReader(doc)); err != nil {
		return fmt.Errorf("store poa: %w", err)
	}

	if err := s.Repo.SetPoAKey(ctx, req.ID, poaKey); err != nil {
		return err
	}
	if err := s.Repo.UpdateStatus(ctx, req.ID, StatusSubmitted, "power of attorney generated"); err != nil {
		return err
	}

	telemetry.Info("request.submitted", map[string]any{
		"service_request_id": req.ID,
		"category":           req.Category,
		"company":            req.PlanCompany,
	})
	return nil
}

// SweepPending processes requests that never made it onto the queue,
// oldest first. Returns how many were processed.
func (s *Service) SweepPending(ctx context.Context, limit int) (int, error) {
	pending, err := s.Repo.ListByStatus(ctx, StatusPending, limit)
	if err != nil {
		return 0, err
	}
	processed := 0
	for _, req := range pending {
		if err := s.Process(ctx, req.ID); err != nil {
			telemetry.Error("request.sweep_failed", map[string]any{
				"service_request_id": req.ID,
				"error":              err.Error(),
			})
			continue
		}
		processed++
	}
	return processed, nil
}
