package requests

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"planwise-backend/internal/catalog"
	"planwise-backend/internal/queue"
	"planwise-backend/internal/shared/metrics"
	"planwise-backend/internal/shared/storage/object"
	"planwise-backend/internal/shared/telemetry"
)

// Service contains business logic for provider-switch requests.
type Service struct {
	Repo  RequestsRepo
	Plans catalog.PlansRepo
	Store object.ObjectStore
	Queue queue.Client
}

// CreateInput captures the fields needed to open a switch request.
type CreateInput struct {
	UserID          string
	PlanID          string
	FullName        string
	NationalID      string
	Phone           string
	Email           string
	Address         string
	CurrentProvider string
	// Signature is the canvas signature as a data URL or raw base64 PNG.
	Signature string
}

// Create validates the input, stores the signature, records the request
// and enqueues it for the worker.
func (s *Service) Create(ctx context.Context, in CreateInput, requestID string) (ServiceRequest, error) {
	if err := validateCreateInput(in); err != nil {
		return ServiceRequest{}, err
	}

	plan, err := s.Plans.GetByID(ctx, in.PlanID)
	if err != nil {
		return ServiceRequest{}, err
	}

	sigBytes, err := decodeSignature(in.Signature)
	if err != nil {
		return ServiceRequest{}, fmt.Errorf("%w: signature must be a base64 PNG", ErrInvalidInput)
	}

	id := uuid.NewString()
	sigKey := fmt.Sprintf("requests/%s/signature.png", id)
	if _, err := s.Store.SaveWithKey(ctx, sigKey, "image/png", bytes.NewReader(sigBytes)); err != nil {
		return ServiceRequest{}, fmt.Errorf("store signature: %w", err)
	}

	now := time.Now().UTC()
	req := ServiceRequest{
		ID:              id,
		UserID:          in.UserID,
		Category:        plan.Category,
		PlanID:          plan.ID,
		PlanCompany:     plan.Company,
		PlanName:        plan.Name,
		FullName:        strings.TrimSpace(in.FullName),
		NationalID:      strings.TrimSpace(in.NationalID),
		Phone:           strings.TrimSpace(in.Phone),
		Email:           strings.TrimSpace(in.Email),
		Address:         strings.TrimSpace(in.Address),
		CurrentProvider: strings.TrimSpace(in.CurrentProvider),
		SignatureKey:    sigKey,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.Repo.Create(ctx, req); err != nil {
		return ServiceRequest{}, err
	}

	metrics.IncServiceRequestCreated()

	msg := queue.Message{
		ServiceRequestID: req.ID,
		RequestID:        requestID,
		EnqueuedAt:       now.Format(time.RFC3339),
		Version:          1,
	}
	if err := s.Queue.Send(ctx, msg); err != nil {
		// The request is persisted; the worker sweep will pick it up.
		telemetry.Warn("request.enqueue_failed", map[string]any{
			"service_request_id": req.ID,
			"error":              err.Error(),
		})
	}

	return req, nil
}

// Get returns a request if it belongs to the user.
func (s *Service) Get(ctx context.Context, userID, id string) (ServiceRequest, error) {
	req, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return ServiceRequest{}, err
	}
	if req.UserID != userID {
		return ServiceRequest{}, ErrNotFound
	}
	return req, nil
}

// Mine lists the user's requests, newest first.
func (s *Service) Mine(ctx context.Context, userID string) ([]ServiceRequest, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func validateCreateInput(in CreateInput) error {
	if strings.TrimSpace(in.PlanID) == "" {
		return fmt.Errorf("%w: planId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.FullName) == "" {
		return fmt.Errorf("%w: fullName is required", ErrInvalidInput)
	}
	if !validNationalID(in.NationalID) {
		return fmt.Errorf("%w: nationalId must be 9 digits", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Signature) == "" {
		return fmt.Errorf("%w: signature is required", ErrInvalidInput)
	}
	return nil
}

func validNationalID(id string) bool {
	id = strings.TrimSpace(id)
	if len(id) != 9 {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func decodeSignature(sig string) ([]byte, error) {
	sig = strings.TrimSpace(sig)
	if idx := strings.Index(sig, ";base64,"); idx >= 0 {
		sig = sig[idx+len(";base64,"):]
	}
	out, err := base64.StdEncoding.DecodeString(sig)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty signature")
	}
	return out, nil
}
