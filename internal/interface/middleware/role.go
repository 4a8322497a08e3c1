package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reciclaqui/backend/pkg/response"
)

// RequireRole gates a route on the session role set by Auth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("userRole") != role {
			response.Error[any](c, http.StatusForbidden, "insufficient role", nil)
			return
		}
		c.Next()
	}
}
