package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vigiaai/vigia-provision/internal/application/dto"
	"github.com/vigiaai/vigia-provision/internal/application/service"
)

// ProvisioningHandler serves marketplace registration and profile completion.
type ProvisioningHandler struct {
	provisioning *service.ProvisioningService
}

// NewProvisioningHandler creates the registration endpoints.
func NewProvisioningHandler(provisioning *service.ProvisioningService) *ProvisioningHandler {
	return &ProvisioningHandler{provisioning: provisioning}
}

// Register handles GET /marketplace/register?token=.
func (h *ProvisioningHandler) Register(c *gin.Context) {
	resp, err := h.provisioning.Register(c.Request.Context(), c.Query("token"))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StubRegister handles POST /dev/stub-register. Routed only in dev mode.
func (h *ProvisioningHandler) StubRegister(c *gin.Context) {
	var req dto.StubRegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.provisioning.StubRegister(c.Request.Context(), req.CustomerIdentifier)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CompleteProfile handles POST /marketplace/complete-profile.
func (h *ProvisioningHandler) CompleteProfile(c *gin.Context) {
	var req dto.CompleteProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.provisioning.CompleteProfile(c.Request.Context(), &req)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
