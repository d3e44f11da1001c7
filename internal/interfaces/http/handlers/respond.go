// Package handlers implements the HTTP endpoints of the provisioning API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vigiaai/vigia-provision/internal/application/dto"
	apperrors "github.com/vigiaai/vigia-provision/pkg/errors"
)

// sendError converts an application error to the uniform error envelope. This
// is the single place a typed error becomes an HTTP response.
func sendError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		c.JSON(appErr.HTTPStatus(), dto.ErrorResponse{
			Error:   string(appErr.Code()),
			Message: appErr.Message(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:   string(apperrors.CodeInternal),
		Message: "internal server error",
	})
}

// bindJSON decodes the request body, converting binding failures into
// validation errors.
func bindJSON(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		sendError(c, apperrors.ErrValidation("malformed request body").WithCause(err))
		return false
	}
	return true
}
