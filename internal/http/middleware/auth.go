package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Hen-Heang/h-market/domain"
	"github.com/Hen-Heang/h-market/internal/http/handlers"
)

// RequireSession authenticates a Bearer token against the session store and
// places the session on the request context.
func RequireSession(sessions domain.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		session, err := sessions.FindByToken(c.Request.Context(), parts[1])
		if err != nil {
			switch err {
			case domain.ErrSessionExpired:
				abortUnauthorized(c, "Session expired")
			default:
				abortUnauthorized(c, "Invalid session")
			}
			return
		}

		c.Set(handlers.SessionContextKey, session)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "message": message})
}
