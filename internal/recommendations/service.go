package recommendations

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"planwise-backend/internal/assistant"
	"planwise-backend/internal/catalog"
	"planwise-backend/internal/recommendations/engine"
	"planwise-backend/internal/shared/metrics"
	"planwise-backend/internal/shared/telemetry"
)

// Service generates personalized plan recommendations.
type Service struct {
	Plans     catalog.PlansRepo
	Engine    *engine.Engine
	Assistant assistant.Client
}

// Generate runs the deterministic ranking engine for a category and profile.
func (s *Service) Generate(ctx context.Context, category string, profile engine.UserProfile) (engine.Analysis, error) {
	cat, ok := engine.ParseCategory(category)
	if !ok {
		return engine.Analysis{}, ErrInvalidCategory
	}

	plans, err := s.Plans.ListByCategory(ctx, string(cat))
	if err != nil {
		return engine.Analysis{}, err
	}

	metrics.IncRecommendationRequest()
	start := time.Now()
	analysis := s.Engine.Analyze(toEnginePlans(plans), profile, cat)
	metrics.ObserveRecommendationDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)

	return analysis, nil
}

// AnalyzeAdvanced runs Generate and then asks the AI assistant to enrich
// the insights and tips. Assistant failures fall back to the rule-based
// output so the endpoint always answers.
func (s *Service) AnalyzeAdvanced(ctx context.Context, category string, profile engine.UserProfile) (engine.Analysis, error) {
	analysis, err := s.Generate(ctx, category, profile)
	if err != nil {
		return engine.Analysis{}, err
	}
	if s.Assistant == nil {
		return analysis, nil
	}

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return analysis, nil
	}
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return analysis, nil
	}

	out, err := s.Assistant.EnhanceAnalysis(ctx, assistant.AnalysisInput{
		Category:     category,
		ProfileJSON:  profileJSON,
		AnalysisJSON: analysisJSON,
	})
	if err != nil {
		// The placeholder client is the configured-off state, not a failure.
		if !errors.Is(err, assistant.ErrNotImplemented) {
			telemetry.Warn("recommendation.assistant_fallback", map[string]any{
				"category": category,
				"error":    err.Error(),
			})
		}
		return analysis, nil
	}

	if len(out.Insights) > 0 {
		analysis.Insights = out.Insights
	}
	if len(out.Tips) > 0 {
		analysis.Tips = out.Tips
	}
	return analysis, nil
}

func toEnginePlans(plans []catalog.Plan) []engine.Plan {
	out := make([]engine.Plan, 0, len(plans))
	for _, p := range plans {
		out = append(out, engine.Plan{
			ID:       p.ID,
			Category: engine.Category(p.Category),
			Company:  p.Company,
			Name:     p.Name,
			Price:    p.Price,
			Features: p.Features,
		})
	}
	return out
}
