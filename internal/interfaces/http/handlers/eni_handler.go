package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vigiaai/vigia-provision/internal/application/dto"
	"github.com/vigiaai/vigia-provision/internal/application/service"
	"github.com/vigiaai/vigia-provision/internal/interfaces/http/middleware"
)

// ENIHandler serves the tenant-scoped ENI management endpoints.
type ENIHandler struct {
	enis *service.ENIService
}

// NewENIHandler creates the ENI endpoints.
func NewENIHandler(enis *service.ENIService) *ENIHandler {
	return &ENIHandler{enis: enis}
}

// Register handles POST /enis/register.
func (h *ENIHandler) Register(c *gin.Context) {
	var req dto.RegisterENIsRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.enis.RegisterBatch(c.Request.Context(), middleware.TenantID(c), req.ENIIDs)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List handles GET /enis.
func (h *ENIHandler) List(c *gin.Context) {
	resp, err := h.enis.List(c.Request.Context(), middleware.TenantID(c))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /enis/:eni_id.
func (h *ENIHandler) Delete(c *gin.Context) {
	resp, err := h.enis.Delete(c.Request.Context(), middleware.TenantID(c), c.Param("eni_id"))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
