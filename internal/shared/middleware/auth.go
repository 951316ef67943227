package middleware

import (
	"strings"

	"blog-backend/internal/session"
	"blog-backend/internal/shared/response"
	pkgjwt "blog-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthMiddleware validates the bearer token and attaches the session to the
// request context. Writes never reach a handler without a valid session.
func AuthMiddleware(jwtManager *pkgjwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Missing authorization header")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "Invalid user id in token")
			c.Abort()
			return
		}

		sess := &session.Session{
			UserID: userID,
			Email:  claims.Email,
			Role:   claims.Role,
		}
		c.Set("userID", userID)
		c.Set("role", claims.Role)
		c.Request = c.Request.WithContext(session.WithSession(c.Request.Context(), sess))

		c.Next()
	}
}
