package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// internetStrategy checks whether a plan's advertised speed meets the
// declared required Mbps. Speed is parsed out of the plan name and features
// since the catalog carries it as free text.
type internetStrategy struct{}

var mbpsPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:mbps|mb)`)

func (internetStrategy) Score(ctx Context, p Plan) (float64, string) {
	required := 0.0
	if ctx.Internet != nil {
		required = ctx.Internet.RequiredMbps
	}
	if required <= 0 {
		return 50, "no required speed declared"
	}

	speed := planMbps(p)
	if speed <= 0 {
		return 45, "plan speed not published"
	}

	if speed >= required {
		return 100, fmt.Sprintf("%.0f Mbps meets your required %.0f Mbps", speed, required)
	}

	// Below requirement: partial credit proportional to coverage.
	score := speed / required * 70
	return clampScore(score), fmt.Sprintf("%.0f Mbps falls short of your required %.0f Mbps", speed, required)
}

func (internetStrategy) Keywords(ctx Context) []string {
	out := flagKeywords(ctx)
	if ctx.TechnologyPref == "fiber" {
		out = append(out, "fiber")
	}
	if ctx.HouseholdSize >= 4 || ctx.UsageLevel == "heavy" || ctx.UsageLevel == "extreme" {
		out = append(out, "unlimited")
	}
	return out
}

func (internetStrategy) SecondaryPriority() string { return PrioritySpeed }

// planMbps extracts the advertised downstream speed from free text.
// "giga"/"gigabit" counts as 1000.
func planMbps(p Plan) float64 {
	texts := append([]string{p.Name}, p.Features...)
	best := 0.0
	for _, t := range texts {
		lower := strings.ToLower(t)
		if strings.Contains(lower, "giga") {
			best = maxFloat(best, 1000)
		}
		for _, m := range mbpsPattern.FindAllStringSubmatch(lower, -1) {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				best = maxFloat(best, v)
			}
		}
	}
	return best
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
