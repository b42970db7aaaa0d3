package engine

import (
	"fmt"
	"sort"
)

// explain derives match reasons and warnings from the component breakdown.
// Reasons come from components at or above the reason floor, ordered by
// weighted contribution; warnings from components at or below the warning
// ceiling. Everything is read off the same breakdown the score used, so the
// explanation can never disagree with the score.
func (e *Engine) explain(components []Component, s Savings) (reasons []string, warnings []string) {
	ordered := make([]Component, len(components))
	copy(ordered, components)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score*ordered[i].Weight > ordered[j].Score*ordered[j].Weight
	})

	for _, c := range ordered {
		switch {
		case c.Score >= e.weights.ReasonFloor:
			reasons = append(reasons, reasonText(c))
		case c.Score <= e.weights.WarningCeiling:
			warnings = append(warnings, warningText(c))
		}
	}

	if s.Monthly > 0 {
		reasons = append(reasons, fmt.Sprintf("saves ₪%.0f a month (₪%.0f a year)", s.Monthly, s.Annual))
	}

	return reasons, warnings
}

func reasonText(c Component) string {
	if c.Detail != "" {
		return c.Detail
	}
	switch c.Key {
	case componentPriceFit:
		return "fits your declared budget"
	case componentFeatureFit:
		return "covers the features you care about"
	default:
		return "strong " + c.Label
	}
}

func warningText(c Component) string {
	switch c.Key {
	case componentPriceFit:
		if c.Detail != "" {
			return c.Detail
		}
		return "priced above your stated budget"
	case componentFeatureFit:
		return "covers few of the features you care about"
	default:
		if c.Detail != "" {
			return c.Detail
		}
		return "weak " + c.Label
	}
}
