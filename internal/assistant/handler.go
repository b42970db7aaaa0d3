package assistant

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"planwise-backend/internal/catalog"
	"planwise-backend/internal/recommendations/engine"
	"planwise-backend/internal/shared/server/respond"
	"planwise-backend/internal/shared/telemetry"
)

const maxQuestionLen = 2000

// Handler answers consumer questions with catalog context.
type Handler struct {
	Client Client
	Plans  catalog.PlansRepo
}

// NewHandler constructs a Handler.
func NewHandler(client Client, plans catalog.PlansRepo) *Handler {
	return &Handler{Client: client, Plans: plans}
}

// ChatRequest is the request body for the chat endpoint.
type ChatRequest struct {
	Question string `json:"question"`
	Category string `json:"category"`
}

// RegisterRoutes attaches assistant routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/assistant/chat", h.chat)
}

func (h *Handler) chat(c *gin.Context) {
	var body ChatRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	question := strings.TrimSpace(body.Question)
	if question == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "question is required", nil)
		return
	}
	if len(question) > maxQuestionLen {
		respond.Error(c, http.StatusBadRequest, "validation_error", "question is too long", nil)
		return
	}

	var (
		plans    []catalog.Plan
		category string
		err      error
	)
	if strings.TrimSpace(body.Category) != "" {
		cat, ok := engine.ParseCategory(body.Category)
		if !ok {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown category", nil)
			return
		}
		category = string(cat)
		c.Set("category", category)
		plans, err = h.Plans.ListByCategory(c.Request.Context(), category)
	} else {
		plans, err = h.Plans.ListAll(c.Request.Context())
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load catalog", nil)
		return
	}

	catalogJSON, err := json.Marshal(catalogSnapshot(plans))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to build catalog context", nil)
		return
	}

	out, err := h.Client.Chat(c.Request.Context(), ChatInput{
		Question:    question,
		Category:    category,
		CatalogJSON: catalogJSON,
	})
	if err != nil {
		if errors.Is(err, ErrNotImplemented) {
			respond.Error(c, http.StatusServiceUnavailable, "assistant_unavailable", "assistant is not configured", nil)
			return
		}
		telemetry.Warn("assistant.chat_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusBadGateway, "assistant_error", "assistant failed to answer", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"answer": out.Answer})
}

type snapshotPlan struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Company  string   `json:"company"`
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Features []string `json:"features"`
}

func catalogSnapshot(plans []catalog.Plan) []snapshotPlan {
	out := make([]snapshotPlan, 0, len(plans))
	for _, p := range plans {
		out = append(out, snapshotPlan{
			ID:       p.ID,
			Category: p.Category,
			Company:  p.Company,
			Name:     p.Name,
			Price:    p.Price,
			Features: p.Features,
		})
	}
	return out
}
