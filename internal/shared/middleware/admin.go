package middleware

import (
	"github.com/gin-gonic/gin"

	"blog-backend/internal/session"
	"blog-backend/internal/shared/response"
)

// AdminMiddleware restricts a route to the admin role. It runs behind
// AuthMiddleware and reads the request session it attached.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session.FromContext(c.Request.Context())
		if !ok || sess.Role != "admin" {
			response.Forbidden(c, "Admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
