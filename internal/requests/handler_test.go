package requests_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"planwise-backend/internal/bootstrap"
	"planwise-backend/internal/shared/config"
)

func buildTestApp(t *testing.T) *bootstrap.App {
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
	return app
}

func signatureDataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("signature-bytes"))
}

func postRequest(t *testing.T, router *gin.Engine, guestID string, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", guestID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func validPayload() map[string]any {
	return map[string]any{
		"planId":          "elec-electra-fixed-7",
		"fullName":        "Dana Levi",
		"nationalId":      "123456789",
		"phone":           "050-1234567",
		"email":           "dana@example.com",
		"address":         "Herzl 10, Tel Aviv",
		"currentProvider": "IEC",
		"signature":       signatureDataURL(),
	}
}

func TestCreateAndFetchRequest(t *testing.T) {
	app := buildTestApp(t)

	resp := postRequest(t, app.Router, "guest-a", validPayload())
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		ID       string `json:"id"`
		Category string `json:"category"`
		PlanID   string `json:"planId"`
		Status   string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected an id, got empty")
	}
	if created.Status != "pending" {
		t.Fatalf("expected status pending, got %s", created.Status)
	}
	if created.Category != "electricity" {
		t.Fatalf("expected category electricity, got %s", created.Category)
	}

	// Owner sees the request.
	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/requests/"+created.ID, nil)
	reqGet.Header.Set("X-Guest-Id", "guest-a")
	respGet := httptest.NewRecorder()
	app.Router.ServeHTTP(respGet, reqGet)
	if respGet.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respGet.Code)
	}

	// Another principal does not.
	reqOther := httptest.NewRequest(http.MethodGet, "/api/v1/requests/"+created.ID, nil)
	reqOther.Header.Set("X-Guest-Id", "guest-b")
	respOther := httptest.NewRecorder()
	app.Router.ServeHTTP(respOther, reqOther)
	if respOther.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for other user, got %d", respOther.Code)
	}
}

func TestCreateRequestValidation(t *testing.T) {
	app := buildTestApp(t)

	cases := []struct {
		name  string
		mod   func(map[string]any)
		wantC int
	}{
		{"missing plan", func(p map[string]any) { p["planId"] = "" }, http.StatusBadRequest},
		{"unknown plan", func(p map[string]any) { p["planId"] = "no-such-plan" }, http.StatusNotFound},
		{"short national id", func(p map[string]any) { p["nationalId"] = "12345" }, http.StatusBadRequest},
		{"missing signature", func(p map[string]any) { p["signature"] = "" }, http.StatusBadRequest},
		{"bad signature encoding", func(p map[string]any) { p["signature"] = "data:image/png;base64,!!!" }, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := validPayload()
			tc.mod(payload)
			resp := postRequest(t, app.Router, "guest-v", payload)
			if resp.Code != tc.wantC {
				t.Fatalf("expected status %d, got %d: %s", tc.wantC, resp.Code, resp.Body.String())
			}
		})
	}
}

func TestListRequestsScopedToUser(t *testing.T) {
	app := buildTestApp(t)

	if resp := postRequest(t, app.Router, "guest-a", validPayload()); resp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/requests", nil)
	req.Header.Set("X-Guest-Id", "guest-b")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var out struct {
		Requests []json.RawMessage `json:"requests"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.Requests) != 0 {
		t.Fatalf("expected no requests for other user, got %d", len(out.Requests))
	}
}
