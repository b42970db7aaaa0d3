package requests

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"planwise-backend/internal/catalog"
	"planwise-backend/internal/queue"
	"planwise-backend/internal/shared/storage/object/local"
)

func testService(t *testing.T) (*Service, *MemoryRepo, *queue.MemoryClient) {
	t.Helper()
	plans, err := catalog.NewMemoryRepo()
	if err != nil {
		t.Fatalf("catalog repo: %v", err)
	}
	repo := NewMemoryRepo()
	q := queue.NewMemoryClient()
	svc := &Service{
		Repo:  repo,
		Plans: plans,
		Store: local.New(t.TempDir()),
		Queue: q,
	}
	return svc, repo, q
}

func validInput() CreateInput {
	sig := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	return CreateInput{
		UserID:     "guest:abc",
		PlanID:     "elec-electra-fixed-7",
		FullName:   "Dana Levi",
		NationalID: "012345678",
		Phone:      "050-1234567",
		Signature:  "data:image/png;base64," + sig,
	}
}

func TestCreateStoresSignatureAndEnqueues(t *testing.T) {
	svc, repo, q := testService(t)

	req, err := svc.Create(context.Background(), validInput(), "http-req-1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if req.Status != StatusPending {
		t.Fatalf("expected pending status, got %q", req.Status)
	}
	if req.Category != "electricity" {
		t.Fatalf("expected category from plan, got %q", req.Category)
	}
	if req.PlanCompany != "Electra Power" {
		t.Fatalf("expected plan company snapshot, got %q", req.PlanCompany)
	}
	if req.SignatureKey == "" {
		t.Fatalf("expected signature key")
	}

	stored, err := repo.GetByID(context.Background(), req.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.FullName != "Dana Levi" {
		t.Fatalf("unexpected stored name %q", stored.FullName)
	}

	msgs := q.Drain()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 queued message, got %d", len(msgs))
	}
	if msgs[0].ServiceRequestID != req.ID {
		t.Fatalf("queued wrong request: %q", msgs[0].ServiceRequestID)
	}
	if msgs[0].RequestID != "http-req-1" {
		t.Fatalf("expected http request id propagated, got %q", msgs[0].RequestID)
	}
}

func TestCreateRejectsBadNationalID(t *testing.T) {
	svc, _, _ := testService(t)

	tests := []string{"", "1234", "12345678a", "12345678901"}
	for _, id := range tests {
		in := validInput()
		in.NationalID = id
		if _, err := svc.Create(context.Background(), in, ""); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("nationalId %q: expected ErrInvalidInput, got %v", id, err)
		}
	}
}

func TestCreateRejectsUnknownPlan(t *testing.T) {
	svc, _, _ := testService(t)

	in := validInput()
	in.PlanID = "no-such-plan"
	if _, err := svc.Create(context.Background(), in, ""); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected catalog.ErrNotFound, got %v", err)
	}
}

func TestCreateRejectsGarbageSignature(t *testing.T) {
	svc, _, _ := testService(t)

	in := validInput()
	in.Signature = "%%% not base64 %%%"
	if _, err := svc.Create(context.Background(), in, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	svc, _, _ := testService(t)

	req, err := svc.Create(context.Background(), validInput(), "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Get(context.Background(), "guest:other", req.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign user, got %v", err)
	}
	got, err := svc.Get(context.Background(), "guest:abc", req.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != req.ID {
		t.Fatalf("unexpected request %q", got.ID)
	}
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusSubmitted, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCompleted, false},
		{StatusSubmitted, StatusCompleted, true},
		{StatusSubmitted, StatusRejected, true},
		{StatusSubmitted, StatusPending, false},
		{StatusCompleted, StatusRejected, false},
		{StatusRejected, StatusSubmitted, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
