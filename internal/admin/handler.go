package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"planwise-backend/internal/requests"
	"planwise-backend/internal/shared/server/middleware"
	"planwise-backend/internal/shared/server/respond"
)

// Handler wires admin HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches admin routes. Callers mount this behind
// middleware.RequireAdmin.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/admin", middleware.RequireAdmin())
	grp.GET("/requests", h.listRequests)
	grp.PATCH("/requests/:id", h.updateStatus)
	grp.GET("/stats", h.stats)
}

func (h *Handler) listRequests(c *gin.Context) {
	status := c.DefaultQuery("status", requests.StatusPending)
	limit := 50
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	reqs, err := h.Svc.ListRequests(c.Request.Context(), status, limit)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown status", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list requests", nil)
		}
		return
	}

	resp := make([]gin.H, 0, len(reqs))
	for _, r := range reqs {
		resp = append(resp, gin.H{
			"id":          r.ID,
			"userId":      r.UserID,
			"category":    r.Category,
			"planCompany": r.PlanCompany,
			"planName":    r.PlanName,
			"fullName":    r.FullName,
			"status":      r.Status,
			"statusNote":  r.StatusNote,
			"createdAt":   r.CreatedAt,
			"updatedAt":   r.UpdatedAt,
		})
	}
	respond.JSON(c, http.StatusOK, gin.H{"requests": resp})
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	var body updateStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	req, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), body.Status, body.Note)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "request not found", nil)
		case errors.Is(err, requests.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown status", nil)
		case errors.Is(err, requests.ErrInvalidTransition):
			respond.Error(c, http.StatusConflict, "invalid_transition", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update request", nil)
		}
		return
	}

	c.Set("serviceRequestId", req.ID)
	respond.JSON(c, http.StatusOK, gin.H{
		"id":         req.ID,
		"status":     req.Status,
		"statusNote": req.StatusNote,
		"updatedAt":  req.UpdatedAt,
	})
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.Svc.Overview(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to collect stats", nil)
		return
	}
	respond.JSON(c, http.StatusOK, stats)
}
