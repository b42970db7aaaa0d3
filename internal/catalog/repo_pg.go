package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements PlansRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const planColumns = `id, category, company, name, price, features, created_at, updated_at`

// ListByCategory returns plans in the given category, catalog order.
func (r *PGRepo) ListByCategory(ctx context.Context, category string) ([]Plan, error) {
	const query = `
SELECT ` + planColumns + `
FROM plans
WHERE category = $1
ORDER BY created_at, id`

	rows, err := r.DB.QueryContext(ctx, query, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlans(rows)
}

// ListAll returns every plan.
func (r *PGRepo) ListAll(ctx context.Context) ([]Plan, error) {
	const query = `
SELECT ` + planColumns + `
FROM plans
ORDER BY category, created_at, id`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlans(rows)
}

// GetByID fetches a plan by ID.
func (r *PGRepo) GetByID(ctx context.Context, planID string) (Plan, error) {
	const query = `
SELECT ` + planColumns + `
FROM plans
WHERE id = $1
LIMIT 1`

	var p Plan
	var price sql.NullFloat64
	var features []byte
	err := r.DB.QueryRowContext(ctx, query, planID).Scan(
		&p.ID,
		&p.Category,
		&p.Company,
		&p.Name,
		&price,
		&features,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Plan{}, ErrNotFound
		}
		return Plan{}, err
	}
	if price.Valid {
		v := price.Float64
		p.Price = &v
	}
	if len(features) > 0 {
		if err := json.Unmarshal(features, &p.Features); err != nil {
			return Plan{}, fmt.Errorf("decode plan features: %w", err)
		}
	}
	return p, nil
}

func scanPlans(rows *sql.Rows) ([]Plan, error) {
	var out []Plan
	for rows.Next() {
		var p Plan
		var price sql.NullFloat64
		var features []byte
		if err := rows.Scan(
			&p.ID,
			&p.Category,
			&p.Company,
			&p.Name,
			&price,
			&features,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if price.Valid {
			v := price.Float64
			p.Price = &v
		}
		if len(features) > 0 {
			if err := json.Unmarshal(features, &p.Features); err != nil {
				return nil, fmt.Errorf("decode plan features: %w", err)
			}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

var _ PlansRepo = (*PGRepo)(nil)
