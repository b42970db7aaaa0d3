package catalog

import "time"

// Plan is a marketplace offer from an Israeli utility provider.
// Price is the advertised monthly price in NIS; nil means the provider
// quotes on request only.
type Plan struct {
	ID        string
	Category  string
	Company   string
	Name      string
	Price     *float64
	Features  []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
