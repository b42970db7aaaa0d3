package engine

import "strings"

// strategy is the per-category scoring contract. Each category contributes
// a fit score, the feature keywords the profile implies, and the priority
// dimension that scales the feature component. Adding a category means
// adding a strategy here, nothing else changes.
type strategy interface {
	// Score returns the category-fit component in [0,100] plus a short
	// detail string reused verbatim by the explanation generator.
	Score(ctx Context, p Plan) (float64, string)
	// Keywords returns the feature keywords the profile makes relevant.
	Keywords(ctx Context) []string
	// SecondaryPriority names the dimension blended with "features" when
	// weighting the feature-fit component.
	SecondaryPriority() string
}

var strategies = map[Category]strategy{
	CategoryElectricity: electricityStrategy{},
	CategoryInternet:    internetStrategy{},
	CategoryMobile:      mobileStrategy{},
	CategoryTV:          tvStrategy{},
}

func strategyFor(category Category) strategy {
	if s, ok := strategies[category]; ok {
		return s
	}
	return neutralStrategy{}
}

// neutralStrategy backs unknown categories so scoring still degrades to a
// price-driven ranking instead of failing.
type neutralStrategy struct{}

func (neutralStrategy) Score(Context, Plan) (float64, string) {
	return 50, "no category-specific signals"
}

func (neutralStrategy) Keywords(Context) []string { return nil }

func (neutralStrategy) SecondaryPriority() string { return PriorityReliability }

// planHasFeature reports whether any feature contains the keyword,
// case-insensitively.
func planHasFeature(p Plan, keyword string) bool {
	k := strings.ToLower(keyword)
	if k == "" {
		return false
	}
	if strings.Contains(strings.ToLower(p.Name), k) {
		return true
	}
	for _, f := range p.Features {
		if strings.Contains(strings.ToLower(f), k) {
			return true
		}
	}
	return false
}

// flagKeywords maps the boolean usage flags to feature keywords shared by
// all categories.
func flagKeywords(ctx Context) []string {
	var out []string
	if ctx.StreamingHeavy {
		out = append(out, "streaming")
	}
	if ctx.GamingHeavy {
		out = append(out, "gaming")
	}
	if ctx.RemoteWork {
		out = append(out, "upload")
	}
	return out
}
