package engine

// Market computes descriptive price statistics over the rankable plans of a
// category. Independent of any user profile, so results are cache-safe per
// category. An empty set yields zeros plus an explicit note instead of an
// error.
func Market(category Category, rankable []Plan) MarketAnalysis {
	out := MarketAnalysis{Category: category, PlanCount: len(rankable)}
	if len(rankable) == 0 {
		out.Note = "no plans available"
		return out
	}

	sum := 0.0
	min := rankable[0].PriceValue()
	max := min
	for _, p := range rankable {
		price := p.PriceValue()
		sum += price
		if price < min {
			min = price
		}
		if price > max {
			max = price
		}
	}

	out.AvgPrice = round2(sum / float64(len(rankable)))
	out.MinPrice = min
	out.MaxPrice = max
	return out
}
