package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"microblog-backend/internal/domains/auth"
	"microblog-backend/internal/shared/response"
)

const (
	ContextEmailKey    = "email"
	ContextUsernameKey = "username"
)

// Auth validates the bearer token against the session registry and
// attaches the session identity to the request context. Tokens are
// opaque; a token unknown to the registry is simply unauthorized.
func Auth(sessions auth.SessionRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		session, err := sessions.Get(c.Request.Context(), parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrSessionNotFound) {
				response.Unauthorized(c, "invalid or unknown token")
			} else {
				response.InternalServerError(c, "session lookup failed")
			}
			c.Abort()
			return
		}

		c.Set(ContextEmailKey, session.Email)
		c.Set(ContextUsernameKey, session.Username)

		c.Next()
	}
}

// GetUsername returns the authenticated username set by Auth.
func GetUsername(c *gin.Context) (string, bool) {
	username := c.GetString(ContextUsernameKey)
	return username, username != ""
}

// GetEmail returns the authenticated email set by Auth.
func GetEmail(c *gin.Context) (string, bool) {
	email := c.GetString(ContextEmailKey)
	return email, email != ""
}
