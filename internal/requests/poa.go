package requests

import (
	"fmt"
	"strings"
	"time"
)

// BuildPoA renders the plain-text power of attorney the provider receives.
// The document authorizes the new provider to cancel the customer's
// existing plan on their behalf.
func BuildPoA(req ServiceRequest, now time.Time) string {
	var b strings.Builder
	b.WriteString("POWER OF ATTORNEY\n")
	b.WriteString("=================\n\n")
	fmt.Fprintf(&b, "Date: %s\n", now.Format("02/01/2006"))
	fmt.Fprintf(&b, "Request: %s\n\n", req.ID)
	fmt.Fprintf(&b, "I, %s, holder of Israeli ID %s,\n", req.FullName, req.NationalID)
	fmt.Fprintf(&b, "residing at %s,\n", valueOr(req.Address, "address on file"))
	fmt.Fprintf(&b, "hereby authorize %s to act on my behalf in all matters\n", req.PlanCompany)
	fmt.Fprintf(&b, "related to transferring my %s service", req.Category)
	if req.CurrentProvider != "" {
		fmt.Fprintf(&b, " from %s", req.CurrentProvider)
	}
	b.WriteString(",\nincluding cancelling my existing plan and enrolling me in:\n\n")
	fmt.Fprintf(&b, "    %s - %s\n\n", req.PlanCompany, req.PlanName)
	fmt.Fprintf(&b, "Contact phone: %s\n", req.Phone)
	if req.Email != "" {
		fmt.Fprintf(&b, "Contact email: %s\n", req.Email)
	}
	b.WriteString("\nThis authorization is valid for 90 days from the date above.\n")
	b.WriteString("A digital signature is attached to this request.\n")
	return b.String()
}

func valueOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
