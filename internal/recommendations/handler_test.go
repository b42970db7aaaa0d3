package recommendations_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"planwise-backend/internal/bootstrap"
	"planwise-backend/internal/shared/config"
)

func buildTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "test-guest")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestGenerateRanksElectricityPlans(t *testing.T) {
	router := buildTestRouter(t)

	resp := postJSON(t, router, "/api/v1/recommendations", map[string]any{
		"category": "electricity",
		"profile": map[string]any{
			"householdSize":    3,
			"monthlyBudget":    450,
			"currentAmount":    520,
			"priceFlexibility": "strict",
			"usageLevel":       "medium",
		},
	})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var analysis struct {
		Recommendations []struct {
			Plan struct {
				ID       string `json:"id"`
				Category string `json:"category"`
			} `json:"plan"`
			Score      float64 `json:"score"`
			Confidence string  `json:"confidence"`
			Savings    struct {
				Monthly float64 `json:"monthlySavings"`
			} `json:"savings"`
		} `json:"recommendations"`
		Market struct {
			Category  string `json:"category"`
			PlanCount int    `json:"planCount"`
		} `json:"marketAnalysis"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(analysis.Recommendations) == 0 {
		t.Fatalf("expected recommendations, got none")
	}
	for i := 1; i < len(analysis.Recommendations); i++ {
		if analysis.Recommendations[i].Score > analysis.Recommendations[i-1].Score {
			t.Fatalf("recommendations not sorted by score: %v > %v at index %d",
				analysis.Recommendations[i].Score, analysis.Recommendations[i-1].Score, i)
		}
	}
	for _, rec := range analysis.Recommendations {
		if rec.Plan.Category != "electricity" {
			t.Fatalf("expected electricity plans only, got %s", rec.Plan.Category)
		}
	}
	if analysis.Market.Category != "electricity" {
		t.Fatalf("expected market category electricity, got %s", analysis.Market.Category)
	}
	if analysis.Market.PlanCount == 0 {
		t.Fatalf("expected market plan count > 0")
	}
}

func TestGenerateRejectsUnknownCategory(t *testing.T) {
	router := buildTestRouter(t)

	resp := postJSON(t, router, "/api/v1/recommendations", map[string]any{
		"category": "water",
		"profile":  map[string]any{"monthlyBudget": 100},
	})

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}

	var errResp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error, got %s", errResp.Error.Code)
	}
}

func TestAnalyzeFallsBackWithoutAssistant(t *testing.T) {
	router := buildTestRouter(t)

	resp := postJSON(t, router, "/api/v1/recommendations/analyze", map[string]any{
		"category": "internet",
		"profile": map[string]any{
			"monthlyBudget": 120,
			"usageLevel":    "heavy",
			"streamingHeavy": true,
		},
	})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var analysis struct {
		Recommendations []json.RawMessage `json:"recommendations"`
		Insights        []string          `json:"aiInsights"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(analysis.Recommendations) == 0 {
		t.Fatalf("expected recommendations even without an assistant provider")
	}
}
