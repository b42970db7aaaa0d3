package catalog

// PlanResponse is the outward-facing representation of a plan.
type PlanResponse struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Company  string   `json:"company"`
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Features []string `json:"features"`
}

func toResponse(p Plan) PlanResponse {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return PlanResponse{
		ID:       p.ID,
		Category: p.Category,
		Company:  p.Company,
		Name:     p.Name,
		Price:    p.Price,
		Features: features,
	}
}
