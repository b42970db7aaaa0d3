package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"planwise-backend/internal/catalog"
	"planwise-backend/internal/requests"
)

func testAdmin(t *testing.T) (*Service, *requests.MemoryRepo) {
	t.Helper()
	plans, err := catalog.NewMemoryRepo()
	if err != nil {
		t.Fatalf("catalog repo: %v", err)
	}
	repo := requests.NewMemoryRepo()
	return &Service{Requests: repo, Plans: plans}, repo
}

func seedRequest(t *testing.T, repo *requests.MemoryRepo, id, status string) {
	t.Helper()
	now := time.Now().UTC()
	err := repo.Create(context.Background(), requests.ServiceRequest{
		ID:        id,
		UserID:    "guest:abc",
		Category:  "electricity",
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed request: %v", err)
	}
}

func TestUpdateStatusAllowsPendingToSubmitted(t *testing.T) {
	svc, repo := testAdmin(t)
	seedRequest(t, repo, "req-1", requests.StatusPending)

	req, err := svc.UpdateStatus(context.Background(), "req-1", requests.StatusSubmitted, "filed with provider")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if req.Status != requests.StatusSubmitted {
		t.Fatalf("expected submitted, got %q", req.Status)
	}
	if req.StatusNote != "filed with provider" {
		t.Fatalf("expected note, got %q", req.StatusNote)
	}
}

func TestUpdateStatusRejectsSkippingSubmission(t *testing.T) {
	svc, repo := testAdmin(t)
	seedRequest(t, repo, "req-2", requests.StatusPending)

	_, err := svc.UpdateStatus(context.Background(), "req-2", requests.StatusCompleted, "")
	if !errors.Is(err, requests.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, repo := testAdmin(t)
	seedRequest(t, repo, "req-3", requests.StatusPending)

	_, err := svc.UpdateStatus(context.Background(), "req-3", "closed", "")
	if !errors.Is(err, requests.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestOverviewCountsRequestsAndPlans(t *testing.T) {
	svc, repo := testAdmin(t)
	seedRequest(t, repo, "req-4", requests.StatusPending)
	seedRequest(t, repo, "req-5", requests.StatusPending)
	seedRequest(t, repo, "req-6", requests.StatusSubmitted)

	stats, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if stats.RequestsByStatus[requests.StatusPending] != 2 {
		t.Fatalf("expected 2 pending, got %d", stats.RequestsByStatus[requests.StatusPending])
	}
	if stats.RequestsByStatus[requests.StatusSubmitted] != 1 {
		t.Fatalf("expected 1 submitted, got %d", stats.RequestsByStatus[requests.StatusSubmitted])
	}
	if stats.PlanCount == 0 {
		t.Fatalf("expected plan count from catalog")
	}
	for _, cat := range []string{"electricity", "internet", "mobile", "tv"} {
		if stats.AvgPriceByCategory[cat] <= 0 {
			t.Fatalf("expected average price for %s, got %v", cat, stats.AvgPriceByCategory[cat])
		}
	}
}

func TestAvgPriceSkipsQuoteOnRequestPlans(t *testing.T) {
	price := func(v float64) *float64 { return &v }
	plans := []catalog.Plan{
		{ID: "a", Category: "electricity", Price: price(100)},
		{ID: "b", Category: "electricity", Price: price(200)},
		{ID: "c", Category: "electricity", Price: nil},
	}

	avgs := avgPriceByCategory(plans)
	if got := avgs["electricity"]; got != 150 {
		t.Fatalf("expected average 150, got %v", got)
	}
}
