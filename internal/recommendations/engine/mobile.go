package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// mobileStrategy checks whether a plan's line allowance covers the declared
// line count. Plans that do not advertise an allowance are treated as
// per-line offers and score slightly above neutral.
type mobileStrategy struct{}

var linesPattern = regexp.MustCompile(`(\d+)\s*lines?`)

func (mobileStrategy) Score(ctx Context, p Plan) (float64, string) {
	lines := 0
	if ctx.Mobile != nil {
		lines = ctx.Mobile.Lines
	}
	if lines <= 0 {
		return 50, "no line count declared"
	}

	allowance := planLineAllowance(p)
	if allowance <= 0 {
		return 60, "per-line plan, works for any line count"
	}
	if allowance >= lines {
		return 100, fmt.Sprintf("covers all %d of your lines", lines)
	}
	return 30, fmt.Sprintf("covers only %d of your %d lines", allowance, lines)
}

func (mobileStrategy) Keywords(ctx Context) []string {
	out := flagKeywords(ctx)
	if ctx.UsageLevel == "heavy" || ctx.UsageLevel == "extreme" {
		out = append(out, "unlimited")
	}
	if ctx.TechnologyPref == "5g" {
		out = append(out, "5g")
	}
	return out
}

func (mobileStrategy) SecondaryPriority() string { return PriorityFlexibility }

func planLineAllowance(p Plan) int {
	texts := append([]string{p.Name}, p.Features...)
	best := 0
	for _, t := range texts {
		for _, m := range linesPattern.FindAllStringSubmatch(strings.ToLower(t), -1) {
			if v, err := strconv.Atoi(m[1]); err == nil && v > best {
				best = v
			}
		}
	}
	return best
}
