package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Component keys. The explanation generator keys off these.
const (
	componentPriceFit    = "priceFit"
	componentFeatureFit  = "featureFit"
	componentCategoryFit = "categoryFit"
)

// scorePlan computes the composite score and its component breakdown for a
// single rankable plan. Components are each in [0,100]; their weights are
// re-normalized to total 100 before combining, so the result is in [0,100].
func (e *Engine) scorePlan(ctx Context, p Plan) (float64, []Component) {
	strat := strategyFor(ctx.Category)

	priceScore, priceDetail := e.priceFit(ctx, p.PriceValue())
	featureScore, featureDetail := featureFit(ctx, strat, p)
	categoryScore, categoryDetail := strat.Score(ctx, p)

	priceMult := priorityMultiplier(ctx, PriorityPrice)
	featureMult := (priorityMultiplier(ctx, PriorityFeatures) + priorityMultiplier(ctx, strat.SecondaryPriority())) / 2

	raw := []Component{
		{Key: componentPriceFit, Label: "price fit", Score: priceScore, Weight: e.weights.PriceWeight * priceMult, Detail: priceDetail},
		{Key: componentFeatureFit, Label: "feature fit", Score: featureScore, Weight: e.weights.FeatureWeight * featureMult, Detail: featureDetail},
		{Key: componentCategoryFit, Label: "category fit", Score: categoryScore, Weight: e.weights.CategoryWeight, Detail: categoryDetail},
	}

	sumW := 0.0
	for _, c := range raw {
		sumW += c.Weight
	}
	if sumW <= 0 {
		return 50, raw
	}

	total := 0.0
	components := make([]Component, 0, len(raw))
	for _, c := range raw {
		normalized := c.Weight / sumW * 100
		total += c.Score * normalized / 100
		c.Weight = round1(normalized)
		components = append(components, c)
	}

	return round1(clampScore(total)), components
}

// priceFit scores the distance between plan price and the user's budget
// (current spend when no budget is declared). At or below the reference
// scores maximum; overshoot is penalized proportionally, floored at 0,
// with a steeper slope for price-strict users.
func (e *Engine) priceFit(ctx Context, price float64) (float64, string) {
	ref := ctx.Budget
	refName := "budget"
	if ref <= 0 {
		ref = ctx.CurrentAmount
		refName = "current spend"
	}
	if ref <= 0 {
		return 60, "no budget or current spend declared"
	}

	if price <= ref {
		return 100, fmt.Sprintf("₪%.0f fits within your %s of ₪%.0f", price, refName, ref)
	}

	slope := e.weights.FlexibleOvershootSlope
	if ctx.PriceFlexibility == "strict" {
		slope = e.weights.StrictOvershootSlope
	}
	overshoot := (price - ref) / ref
	score := 100 - overshoot*slope
	return clampScore(score), fmt.Sprintf("₪%.0f is %.0f%% above your %s", price, overshoot*100, refName)
}

// featureFit counts plan features matching the keywords the profile
// implies, normalized by the larger of matched and expected counts so plans
// listing many unrelated features gain nothing.
func featureFit(ctx Context, strat strategy, p Plan) (float64, string) {
	keywords := dedupeKeywords(strat.Keywords(ctx))
	if len(keywords) == 0 {
		return 50, "no feature preferences declared"
	}

	var matched []string
	for _, k := range keywords {
		if planHasFeature(p, k) {
			matched = append(matched, k)
		}
	}
	if len(matched) == 0 {
		return 0, fmt.Sprintf("none of %d expected features covered", len(keywords))
	}

	denom := len(keywords)
	if len(matched) > denom {
		denom = len(matched)
	}
	score := float64(len(matched)) / float64(denom) * 100
	return clampScore(score), "covers " + strings.Join(matched, ", ")
}

// priorityMultiplier maps a 1-5 priority weight onto a 0.2-1.0 multiplier.
func priorityMultiplier(ctx Context, key string) float64 {
	w := ctx.Priorities[key]
	if w < 1 {
		w = defaultPriorityWeight
	}
	if w > 5 {
		w = 5
	}
	return float64(w) / 5
}

func dedupeKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = normalizeToken(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
