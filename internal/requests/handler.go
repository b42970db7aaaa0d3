package requests

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"planwise-backend/internal/catalog"
	"planwise-backend/internal/shared/server/middleware"
	"planwise-backend/internal/shared/server/respond"
)

const maxSignatureSize = 1 << 20 // 1MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches service request routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/requests", h.create)
	rg.GET("/requests", h.list)
	rg.GET("/requests/:id", h.get)
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSignatureSize+4096)

	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	req, err := h.Svc.Create(c.Request.Context(), CreateInput{
		UserID:          userID,
		PlanID:          body.PlanID,
		FullName:        body.FullName,
		NationalID:      body.NationalID,
		Phone:           body.Phone,
		Email:           body.Email,
		Address:         body.Address,
		CurrentProvider: body.CurrentProvider,
		Signature:       body.Signature,
	}, middleware.RequestIDFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, catalog.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "plan not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create request", nil)
		}
		return
	}

	c.Set("serviceRequestId", req.ID)
	c.Set("category", req.Category)
	respond.JSON(c, http.StatusCreated, toResponse(req))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	reqs, err := h.Svc.Mine(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list requests", nil)
		return
	}

	resp := make([]RequestResponse, 0, len(reqs))
	for _, r := range reqs {
		resp = append(resp, toResponse(r))
	}
	respond.JSON(c, http.StatusOK, gin.H{"requests": resp})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	req, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "request not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch request", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(req))
}
