package requests

import "time"

// CreateRequest is the request body for opening a switch request.
type CreateRequest struct {
	PlanID          string `json:"planId"`
	FullName        string `json:"fullName"`
	NationalID      string `json:"nationalId"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Address         string `json:"address"`
	CurrentProvider string `json:"currentProvider"`
	Signature       string `json:"signature"`
}

// RequestResponse is the outward-facing representation of a service request.
type RequestResponse struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	PlanID      string    `json:"planId"`
	PlanCompany string    `json:"planCompany"`
	PlanName    string    `json:"planName"`
	Status      string    `json:"status"`
	StatusNote  string    `json:"statusNote,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toResponse(req ServiceRequest) RequestResponse {
	return RequestResponse{
		ID:          req.ID,
		Category:    req.Category,
		PlanID:      req.PlanID,
		PlanCompany: req.PlanCompany,
		PlanName:    req.PlanName,
		Status:      req.Status,
		StatusNote:  req.StatusNote,
		CreatedAt:   req.CreatedAt,
		UpdatedAt:   req.UpdatedAt,
	}
}
