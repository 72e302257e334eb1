package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/scholarpath/intake-api/internal/service"
	appErrors "github.com/scholarpath/intake-api/pkg/errors"
	"github.com/scholarpath/intake-api/pkg/response"
)

// ContextAdminKey is the gin context key storing session claims.
const ContextAdminKey = "currentAdmin"

// Session protects admin-panel routes by requiring a valid session token.
func Session(adminService *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := adminService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextAdminKey, claims)
		c.Next()
	}
}
