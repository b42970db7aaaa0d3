package recommendations

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"planwise-backend/internal/shared/metrics"
	"planwise-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommendations", h.generate)
	rg.POST("/recommendations/analyze", h.analyze)
}

func (h *Handler) generate(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	analysis, err := h.Svc.Generate(c.Request.Context(), req.Category, req.Profile)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, analysis)
}

func (h *Handler) analyze(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	analysis, err := h.Svc.AnalyzeAdvanced(c.Request.Context(), req.Category, req.Profile)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, analysis)
}

func (h *Handler) bindRequest(c *gin.Context) (GenerateRequest, bool) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return GenerateRequest{}, false
	}
	if err := req.Validate(); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request", validationDetails(err))
		return GenerateRequest{}, false
	}
	c.Set("category", req.Category)
	return req, true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidCategory):
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown category", nil)
	case errors.Is(err, ErrInvalidProfile):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		metrics.IncRecommendationFailed()
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate recommendations", nil)
	}
}
