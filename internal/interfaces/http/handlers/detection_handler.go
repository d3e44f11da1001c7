package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vigiaai/vigia-provision/internal/application/dto"
	"github.com/vigiaai/vigia-provision/internal/application/service"
	"github.com/vigiaai/vigia-provision/internal/interfaces/http/middleware"
	apperrors "github.com/vigiaai/vigia-provision/pkg/errors"
)

// DetectionHandler serves detection listing and ingest.
type DetectionHandler struct {
	detections *service.DetectionService
}

// NewDetectionHandler creates the detection endpoints.
func NewDetectionHandler(detections *service.DetectionService) *DetectionHandler {
	return &DetectionHandler{detections: detections}
}

// List handles GET /detections. An optional limit query parameter bounds the
// page, capped by the service.
func (h *DetectionHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			sendError(c, apperrors.ErrValidation("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	items, err := h.detections.List(c.Request.Context(), middleware.TenantID(c), limit)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Ingest handles POST /ingest/detection.
func (h *DetectionHandler) Ingest(c *gin.Context) {
	var req dto.IngestDetectionRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.detections.Ingest(c.Request.Context(), &req)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
