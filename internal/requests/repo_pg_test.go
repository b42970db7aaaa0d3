package requests

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer mockDB.Close()

	now := time.Now().UTC()
	req := ServiceRequest{
		ID:          "req-1",
		UserID:      "guest:abc",
		Category:    "electricity",
		PlanID:      "elec-1",
		PlanCompany: "Electra Power",
		PlanName:    "Fixed 7%",
		FullName:    "Dana Levi",
		NationalID:  "012345678",
		Phone:       "050-1234567",
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	mock.ExpectExec(`INSERT INTO service_requests`).
		WithArgs(
			req.ID, req.UserID, req.Category, req.PlanID, req.PlanCompany, req.PlanName,
			req.FullName, req.NationalID, req.Phone, req.Email, req.Address, req.CurrentProvider,
			req.SignatureKey, req.PoAKey, req.Status, req.StatusNote, req.CreatedAt, req.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &PGRepo{DB: mockDB}
	if err := repo.Create(context.Background(), req); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGRepoUpdateStatusNotFound(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer mockDB.Close()

	mock.ExpectExec(`UPDATE service_requests`).
		WithArgs("missing", StatusSubmitted, "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := &PGRepo{DB: mockDB}
	if err := repo.UpdateStatus(context.Background(), "missing", StatusSubmitted, ""); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
