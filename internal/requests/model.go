package requests

import "time"

// Statuses a service request moves through. Requests start pending,
// become submitted once the worker files them with the provider, and
// end completed or rejected.
const (
	StatusPending   = "pending"
	StatusSubmitted = "submitted"
	StatusCompleted = "completed"
	StatusRejected  = "rejected"
)

// ServiceRequest is a signed provider-switch request.
type ServiceRequest struct {
	ID              string
	UserID          string
	Category        string
	PlanID          string
	PlanCompany     string
	PlanName        string
	FullName        string
	NationalID      string
	Phone           string
	Email           string
	Address         string
	CurrentProvider string
	SignatureKey    string
	PoAKey          string
	Status          string
	StatusNote      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ValidStatus reports whether s is a known request status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusSubmitted, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// CanTransition reports whether a request may move from one status to another.
func CanTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusSubmitted || to == StatusRejected
	case StatusSubmitted:
		return to == StatusCompleted || to == StatusRejected
	}
	return false
}
