package engine

import "fmt"

// tvStrategy matches the declared package tier preference against the
// plan's advertised tier.
type tvStrategy struct{}

func (tvStrategy) Score(ctx Context, p Plan) (float64, string) {
	tier := ""
	if ctx.TV != nil {
		tier = normalizeToken(ctx.TV.PackageTier)
	}
	if tier == "" {
		return 50, "no package tier preference declared"
	}

	if planHasFeature(p, tier) {
		return 100, fmt.Sprintf("includes the %s package you asked for", tier)
	}
	return 45, fmt.Sprintf("does not advertise a %s package", tier)
}

func (tvStrategy) Keywords(ctx Context) []string {
	out := flagKeywords(ctx)
	if ctx.TV != nil {
		if tier := normalizeToken(ctx.TV.PackageTier); tier != "" {
			out = append(out, tier)
		}
	}
	if ctx.HouseholdSize >= 4 {
		out = append(out, "kids")
	}
	return out
}

func (tvStrategy) SecondaryPriority() string { return PriorityFeatures }
