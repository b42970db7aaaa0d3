package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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

// RegisterRoutes attaches catalog routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/plans", h.list)
	rg.GET("/plans/:id", h.get)
}

func (h *Handler) list(c *gin.Context) {
	category := c.Query("category")

	var (
		plans []Plan
		err   error
	)
	if category != "" {
		c.Set("category", category)
		plans, err = h.Svc.ByCategory(c.Request.Context(), category)
	} else {
		plans, err = h.Svc.All(c.Request.Context())
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCategory):
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown category", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list plans", nil)
		}
		return
	}

	resp := make([]PlanResponse, 0, len(plans))
	for _, p := range plans {
		resp = append(resp, toResponse(p))
	}
	respond.JSON(c, http.StatusOK, gin.H{"plans": resp})
}

func (h *Handler) get(c *gin.Context) {
	plan, err := h.Svc.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "plan not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch plan", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(plan))
}
