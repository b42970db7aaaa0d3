package assistant_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"planwise-backend/internal/assistant"
	"planwise-backend/internal/catalog"
)

type fakeClient struct {
	lastChat assistant.ChatInput
	answer   string
	err      error
}

func (f *fakeClient) EnhanceAnalysis(ctx context.Context, input assistant.AnalysisInput) (assistant.AnalysisOutput, error) {
	return assistant.AnalysisOutput{}, assistant.ErrNotImplemented
}

func (f *fakeClient) Chat(ctx context.Context, input assistant.ChatInput) (assistant.ChatOutput, error) {
	f.lastChat = input
	if f.err != nil {
		return assistant.ChatOutput{}, f.err
	}
	return assistant.ChatOutput{Answer: f.answer}, nil
}

func chatRouter(t *testing.T, client assistant.Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	plans, err := catalog.NewMemoryRepo()
	if err != nil {
		t.Fatalf("seed catalog: %v", err)
	}

	r := gin.New()
	assistant.NewHandler(client, plans).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postChat(t *testing.T, router *gin.Engine, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestChatAnswersWithCatalogContext(t *testing.T) {
	client := &fakeClient{answer: "Bezeq fiber is the cheapest 1000Mbps plan."}
	router := chatRouter(t, client)

	resp := postChat(t, router, map[string]any{
		"question": "What is the cheapest fiber plan?",
		"category": "internet",
	})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var out struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Answer != client.answer {
		t.Fatalf("expected answer %q, got %q", client.answer, out.Answer)
	}

	if client.lastChat.Category != "internet" {
		t.Fatalf("expected category internet, got %q", client.lastChat.Category)
	}
	snapshot := string(client.lastChat.CatalogJSON)
	if !strings.Contains(snapshot, "net-bezeq-fiber-1000") {
		t.Fatalf("expected catalog snapshot to carry internet plans, got %s", snapshot)
	}
	if strings.Contains(snapshot, "elec-") {
		t.Fatalf("expected snapshot scoped to internet, found electricity plans")
	}
}

func TestChatValidation(t *testing.T) {
	router := chatRouter(t, &fakeClient{answer: "ok"})

	cases := []struct {
		name    string
		payload map[string]any
	}{
		{"missing question", map[string]any{"category": "internet"}},
		{"blank question", map[string]any{"question": "   "}},
		{"unknown category", map[string]any{"question": "hi", "category": "water"}},
		{"oversized question", map[string]any{"question": strings.Repeat("x", 2001)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postChat(t, router, tc.payload)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
			}
		})
	}
}

func TestChatUnavailableWithoutProvider(t *testing.T) {
	router := chatRouter(t, assistant.PlaceholderClient{})

	resp := postChat(t, router, map[string]any{"question": "cheapest mobile plan?"})
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d: %s", resp.Code, resp.Body.String())
	}

	var errResp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Error.Code != "assistant_unavailable" {
		t.Fatalf("expected assistant_unavailable, got %s", errResp.Error.Code)
	}
}
