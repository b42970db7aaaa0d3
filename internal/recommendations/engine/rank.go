package engine

import (
	"math"
	"sort"
)

// rank sorts recommendations descending by score. Scores within the tie
// margin fall through to larger monthly savings, then lower price. The sort
// is stable, so remaining ties keep catalog order. Pure reorder; fields are
// never rewritten.
func (e *Engine) rank(recs []Recommendation) {
	margin := e.weights.TieMargin
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if math.Abs(a.Score-b.Score) > margin {
			return a.Score > b.Score
		}
		if a.Savings.Monthly != b.Savings.Monthly {
			return a.Savings.Monthly > b.Savings.Monthly
		}
		if a.Plan.PriceValue() != b.Plan.PriceValue() {
			return a.Plan.PriceValue() < b.Plan.PriceValue()
		}
		return false
	})
}
