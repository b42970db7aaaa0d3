package engine

import "math"

// computeSavings projects savings for one plan price. The reference is the
// declared current spend, falling back to the budget when current spend is
// unknown. A plan that costs more than the reference reports zero savings,
// never negative, and stays rankable. The percentage is always relative to
// the actual current spend and is 0 when that is unknown.
func computeSavings(ctx Context, price float64) Savings {
	ref := ctx.CurrentAmount
	if ref <= 0 {
		ref = ctx.Budget
	}
	if ref <= 0 {
		return Savings{}
	}

	monthly := ref - price
	if monthly < 0 {
		monthly = 0
	}
	monthly = round2(monthly)

	percent := 0.0
	if ctx.CurrentAmount > 0 {
		percent = monthly / ctx.CurrentAmount * 100
		if percent < 0 {
			percent = 0
		}
		if percent > 100 {
			percent = 100
		}
		percent = round2(percent)
	}

	return Savings{
		Monthly: monthly,
		Annual:  monthly * 12,
		Percent: percent,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
