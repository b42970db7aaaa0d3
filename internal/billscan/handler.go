package billscan

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"planwise-backend/internal/shared/metrics"
	"planwise-backend/internal/shared/server/respond"
)

const maxBillSize = 10 << 20 // 10MB

// Handler serves bill uploads.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches bill scan routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bills", h.scan)
}

func (h *Handler) scan(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBillSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	text, err := ExtractText(c.Request.Context(), data, mimeType, fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedFile):
			respond.Error(c, http.StatusBadRequest, "validation_error", "only PDF bills are supported", nil)
		case errors.Is(err, ErrUnreadableBill):
			respond.Error(c, http.StatusUnprocessableEntity, "unreadable_bill", "could not read the uploaded bill", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to scan bill", nil)
		}
		return
	}

	result, err := ScanText(text)
	if err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, "no_amount_found", "could not find a charge amount in the bill", nil)
		return
	}

	metrics.IncBillScan()
	respond.JSON(c, http.StatusOK, result)
}
