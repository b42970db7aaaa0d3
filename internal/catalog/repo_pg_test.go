package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoListByCategory(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer mockDB.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "category", "company", "name", "price", "features", "created_at", "updated_at"}).
		AddRow("elec-1", "electricity", "Electra Power", "Fixed 7%", 520.0, []byte(`["fixed rate all day"]`), now, now).
		AddRow("elec-2", "electricity", "Cellcom Energy", "Night Saver", nil, []byte(`["20% discount at night"]`), now, now)

	mock.ExpectQuery(`SELECT .+ FROM plans\s+WHERE category = \$1`).
		WithArgs("electricity").
		WillReturnRows(rows)

	repo := &PGRepo{DB: mockDB}
	plans, err := repo.ListByCategory(context.Background(), "electricity")
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(plans))
	}
	if plans[0].Price == nil || *plans[0].Price != 520.0 {
		t.Fatalf("expected price 520, got %v", plans[0].Price)
	}
	if plans[1].Price != nil {
		t.Fatalf("expected nil price for quote-only plan")
	}
	if len(plans[0].Features) != 1 || plans[0].Features[0] != "fixed rate all day" {
		t.Fatalf("unexpected features: %v", plans[0].Features)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT .+ FROM plans\s+WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "category", "company", "name", "price", "features", "created_at", "updated_at"}))

	repo := &PGRepo{DB: mockDB}
	if _, err := repo.GetByID(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
