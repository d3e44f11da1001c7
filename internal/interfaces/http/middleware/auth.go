package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vigiaai/vigia-provision/internal/domain/service"
	"github.com/vigiaai/vigia-provision/pkg/constants"
	apperrors "github.com/vigiaai/vigia-provision/pkg/errors"
)

// BearerAuth validates the Authorization header and stores the authenticated
// principal in the gin context. All failure modes produce the same generic
// 401.
func BearerAuth(sessions service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
			abortUnauthorized(c)
			return
		}

		claims, err := sessions.Validate(c.Request.Context(), header[len(prefix):])
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(string(constants.ContextKeyTenantID), claims.TenantID)
		c.Set(string(constants.ContextKeyUserEmail), claims.Email)
		c.Next()
	}
}

// TenantID returns the authenticated tenant id set by BearerAuth.
func TenantID(c *gin.Context) string {
	return c.GetString(string(constants.ContextKeyTenantID))
}

// UserEmail returns the authenticated user email set by BearerAuth.
func UserEmail(c *gin.Context) string {
	return c.GetString(string(constants.ContextKeyUserEmail))
}

func abortUnauthorized(c *gin.Context) {
	appErr := apperrors.ErrAuth()
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   string(appErr.Code()),
		"message": appErr.Message(),
	})
}
