// internal/middlewares/admin_auth.go
package middlewares

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"cabinreserve/internal/apierr"
	"cabinreserve/internal/auth"
)

// AdminAuth validates a bearer token against jwtSecret. There is no
// end-user login in this system, so any valid unexpired token means
// "admin" — the claim subject is stored in the request context as
// "admin_subject".
func AdminAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			apierr.Write(c, apierr.InvalidInput(errors.New("admin bearer token required")))
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := auth.ValidateAdminToken(token, jwtSecret)
		if err != nil {
			apierr.Write(c, apierr.InvalidInput(err))
			c.Abort()
			return
		}

		c.Set("admin_subject", claims.Subject)
		c.Next()
	}
}
