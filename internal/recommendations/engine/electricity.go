package engine

import "fmt"

// electricityStrategy matches declared consumption and usage-hours pattern
// against the discount structure advertised in plan features. Israeli
// electricity offers are discount plans keyed to time windows, so the
// dominant signal is whether the plan's window covers when the household
// actually consumes.
type electricityStrategy struct{}

func (electricityStrategy) Score(ctx Context, p Plan) (float64, string) {
	if ctx.Electricity == nil && ctx.UsageHours == "" {
		return 50, "no electricity usage details provided"
	}

	score := 50.0
	detail := "partial usage match"

	if hk := hoursKeyword(ctx.UsageHours); hk != "" {
		if planHasFeature(p, hk) {
			score += 30
			detail = fmt.Sprintf("discount window covers your %s usage", ctx.UsageHours)
		} else if planHasFeature(p, "all day") {
			score += 15
			detail = "flat discount regardless of usage hours"
		} else {
			score -= 10
			detail = fmt.Sprintf("discount window misses your %s usage", ctx.UsageHours)
		}
	}

	if ctx.Electricity != nil && ctx.Electricity.MonthlyKWh > 0 {
		switch band := consumptionBand(ctx.Electricity.MonthlyKWh); band {
		case "high":
			if planHasFeature(p, "all day") || planHasFeature(p, "fixed") {
				score += 20
				detail = "flat discount suits your high consumption"
			}
		case "low":
			if planHasFeature(p, "night") || planHasFeature(p, "weekend") {
				score += 20
				detail = "time-window discount suits your low consumption"
			}
		}
	}

	return clampScore(score), detail
}

func (electricityStrategy) Keywords(ctx Context) []string {
	out := flagKeywords(ctx)
	if hk := hoursKeyword(ctx.UsageHours); hk != "" {
		out = append(out, hk)
	}
	if ctx.HouseholdSize >= 4 {
		out = append(out, "family")
	}
	if ctx.TechnologyPref == "smart" {
		out = append(out, "smart meter")
	}
	return out
}

func (electricityStrategy) SecondaryPriority() string { return PriorityReliability }

func hoursKeyword(usageHours string) string {
	switch usageHours {
	case "day":
		return "day"
	case "evening":
		return "evening"
	case "night":
		return "night"
	case "allday":
		return "all day"
	default:
		return ""
	}
}

func consumptionBand(monthlyKWh float64) string {
	switch {
	case monthlyKWh >= 600:
		return "high"
	case monthlyKWh > 0 && monthlyKWh < 300:
		return "low"
	default:
		return "medium"
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
