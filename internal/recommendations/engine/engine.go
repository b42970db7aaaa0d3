package engine

import (
	"planwise-backend/internal/shared/telemetry"
)

// Engine ranks catalog plans against a user profile. It is a stateless pure
// function of its inputs: identical (profile, plan set, category) calls
// produce identical output, so instances are safe to share across
// goroutines and results are safe to memoize.
type Engine struct {
	weights Weights
}

// New constructs an Engine, filling unset weight fields from defaults.
func New(weights Weights) *Engine {
	return &Engine{weights: weights.withDefaults()}
}

// Weights exposes the effective scoring policy.
func (e *Engine) Weights() Weights {
	return e.weights
}

// Generate scores and ranks the rankable plans of the context's category.
// A plan that fails to score is logged and skipped rather than aborting the
// request; an empty candidate set yields an empty, non-nil slice.
func (e *Engine) Generate(plans []Plan, ctx Context) []Recommendation {
	rankable, _ := Filter(plans, ctx.Category)

	recs := make([]Recommendation, 0, len(rankable))
	for _, p := range rankable {
		rec, ok := e.scoreSafe(ctx, p)
		if !ok {
			continue
		}
		recs = append(recs, rec)
	}

	e.rank(recs)
	return recs
}

// Analyze wraps Generate with market aggregation, templated insights, and
// personalized tips for the multi-category wizard. Fails closed: zero
// candidates still produce a valid envelope.
func (e *Engine) Analyze(plans []Plan, profile UserProfile, category Category) Analysis {
	ctx := BuildContext(profile, category)
	rankable, onRequest := Filter(plans, category)

	recs := e.Generate(plans, ctx)
	if len(recs) > e.weights.TopN {
		recs = recs[:e.weights.TopN]
	}

	market := Market(category, rankable)

	return Analysis{
		Recommendations: recs,
		OnRequest:       onRequest,
		Market:          market,
		Insights:        buildInsights(recs, market),
		Tips:            buildTips(ctx),
	}
}

// scoreSafe assembles one recommendation, isolating panics from malformed
// plans so a single bad catalog row cannot take down the whole request.
func (e *Engine) scoreSafe(ctx Context, p Plan) (rec Recommendation, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			telemetry.Error("recommendation.score_failed", map[string]any{
				"plan_id":  p.ID,
				"category": string(ctx.Category),
				"panic":    r,
			})
			ok = false
		}
	}()

	score, components := e.scorePlan(ctx, p)
	savings := computeSavings(ctx, p.PriceValue())
	reasons, warnings := e.explain(components, savings)

	return Recommendation{
		Plan:       p,
		Score:      score,
		Confidence: e.classifyConfidence(score, ctx.Completeness),
		Savings:    savings,
		Reasons:    reasons,
		Warnings:   warnings,
		Components: components,
	}, true
}
