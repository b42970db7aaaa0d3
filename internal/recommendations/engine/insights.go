package engine

import "fmt"

const maxTips = 4

// buildInsights produces the templated top-line insight strings for an
// analysis. Purely derived from the ranked output and market stats.
func buildInsights(recs []Recommendation, market MarketAnalysis) []string {
	if len(recs) == 0 {
		return []string{fmt.Sprintf("No %s plans are currently available for comparison.", market.Category)}
	}

	top := recs[0]
	insights := []string{
		fmt.Sprintf("Top pick: %s %s, scoring %.1f/100 with %s confidence.", top.Plan.Company, top.Plan.Name, top.Score, top.Confidence),
	}

	if market.AvgPrice > 0 {
		delta := market.AvgPrice - top.Plan.PriceValue()
		if delta > 0 {
			insights = append(insights, fmt.Sprintf("The recommended plan saves ₪%.0f/year relative to the market average.", delta*12))
		} else {
			insights = append(insights, "The recommended plan is priced at or above the market average; it wins on fit, not price.")
		}
	}

	if market.PlanCount > 1 {
		insights = append(insights, fmt.Sprintf("Compared %d %s plans priced ₪%.0f-₪%.0f a month.", market.PlanCount, market.Category, market.MinPrice, market.MaxPrice))
	}

	if top.Savings.Annual > 0 {
		insights = append(insights, fmt.Sprintf("Switching would free up ₪%.0f a year against what you pay today.", top.Savings.Annual))
	}

	return insights
}

// buildTips produces deterministic, profile-driven guidance strings.
func buildTips(ctx Context) []string {
	var tips []string

	if ctx.Budget <= 0 {
		tips = append(tips, "Add a monthly budget to your profile to sharpen price matching.")
	}
	if ctx.CurrentAmount <= 0 {
		tips = append(tips, "Tell us what you pay today, or upload a recent bill, to unlock savings projections.")
	}
	if ctx.CurrentProvider != "" {
		tips = append(tips, fmt.Sprintf("Ask %s for a retention offer before you switch; it sets a useful floor price.", ctx.CurrentProvider))
	}
	if ctx.Priorities[PriorityPrice] >= 4 && ctx.PriceFlexibility != "strict" {
		tips = append(tips, "You weighted price highly; marking your budget as strict will filter out over-budget plans harder.")
	}
	if ctx.StreamingHeavy && ctx.Category == CategoryInternet {
		tips = append(tips, "Heavy streaming benefits more from a stable fiber line than from raw top speed.")
	}
	if ctx.GamingHeavy && ctx.Category == CategoryInternet {
		tips = append(tips, "For gaming, prefer plans that advertise low latency over headline bandwidth.")
	}
	if ctx.Category == CategoryElectricity && ctx.UsageHours == "" {
		tips = append(tips, "Declaring when you use most electricity lets us match time-window discount plans.")
	}

	if len(tips) > maxTips {
		tips = tips[:maxTips]
	}
	return tips
}
