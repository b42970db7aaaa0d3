package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"
)

//go:embed seed_plans.json
var seedPlansJSON []byte

type seedPlan struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Company  string   `json:"company"`
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Features []string `json:"features"`
}

// SeedPlans decodes the embedded starter catalog.
func SeedPlans() ([]Plan, error) {
	var seeds []seedPlan
	if err := json.Unmarshal(seedPlansJSON, &seeds); err != nil {
		return nil, fmt.Errorf("decode seed plans: %w", err)
	}
	now := time.Now().UTC()
	plans := make([]Plan, 0, len(seeds))
	for _, s := range seeds {
		plans = append(plans, Plan{
			ID:        s.ID,
			Category:  s.Category,
			Company:   s.Company,
			Name:      s.Name,
			Price:     s.Price,
			Features:  append([]string(nil), s.Features...),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return plans, nil
}
