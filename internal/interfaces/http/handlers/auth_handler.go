package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vigiaai/vigia-provision/internal/application/dto"
	"github.com/vigiaai/vigia-provision/internal/application/service"
)

// AuthHandler serves the login endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates the authentication endpoints.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
