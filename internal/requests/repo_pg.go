package requests

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements RequestsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const requestColumns = `id, user_id, category, plan_id, plan_company, plan_name, full_name, national_id, phone, email, address, current_provider, signature_key, poa_key, status, status_note, created_at, updated_at`

// Create inserts a new service request.
func (r *PGRepo) Create(ctx context.Context, req ServiceRequest) error {
	const query = `
INSERT INTO service_requests (
    id, user_id, category, plan_id, plan_company, plan_name,
    full_name, national_id, phone, email, address, current_provider,
    signature_key, poa_key, status, status_note, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		req.ID,
		req.UserID,
		req.Category,
		req.PlanID,
		req.PlanCompany,
		req.PlanName,
		req.FullName,
		req.NationalID,
		req.Phone,
		req.Email,
		req.Address,
		req.CurrentProvider,
		req.SignatureKey,
		req.PoAKey,
		req.Status,
		req.StatusNote,
		req.CreatedAt,
		req.UpdatedAt,
	)
	return err
}

// GetByID fetches a service request by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (ServiceRequest, error) {
	const query = `
SELECT ` + requestColumns + `
FROM service_requests
WHERE id = $1
LIMIT 1`

	row := r.DB.QueryRowContext(ctx, query, id)
	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ServiceRequest{}, ErrNotFound
		}
		return ServiceRequest{}, err
	}
	return req, nil
}

// ListByUser lists a user's requests, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]ServiceRequest, error) {
	const query = `
SELECT ` + requestColumns + `
FROM service_requests
WHERE user_id = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

// ListByStatus lists requests in a given status, oldest first.
func (r *PGRepo) ListByStatus(ctx context.Context, status string, limit int) ([]ServiceRequest, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	const query = `
SELECT ` + requestColumns + `
FROM service_requests
WHERE status = $1
ORDER BY created_at
LIMIT $2`

	rows, err := r.DB.QueryContext(ctx, query, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

// UpdateStatus sets a request's status and note.
func (r *PGRepo) UpdateStatus(ctx context.Context, id, status, note string) error {
	const query = `
UPDATE service_requests
SET status = $2, status_note = $3, updated_at = $4
WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, query, id, status, note, time.Now().UTC())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPoAKey records the storage key of the generated power of attorney.
func (r *PGRepo) SetPoAKey(ctx context.Context, id, poaKey string) error {
	const query = `
UPDATE service_requests
SET poa_key = $2, updated_at = $3
WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, query, id, poaKey, time.Now().UTC())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByStatus returns request counts grouped by status.
func (r *PGRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	const query = `
SELECT status, COUNT(*)
FROM service_requests
GROUP BY status`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		out[status] = count
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (ServiceRequest, error) {
	var req ServiceRequest
	err := row.Scan(
		&req.ID,
		&req.UserID,
		&req.Category,
		&req.PlanID,
		&req.PlanCompany,
		&req.PlanName,
		&req.FullName,
		&req.NationalID,
		&req.Phone,
		&req.Email,
		&req.Address,
		&req.CurrentProvider,
		&req.SignatureKey,
		&req.PoAKey,
		&req.Status,
		&req.StatusNote,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	return req, err
}

func scanRequests(rows *sql.Rows) ([]ServiceRequest, error) {
	var out []ServiceRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

var _ RequestsRepo = (*PGRepo)(nil)
