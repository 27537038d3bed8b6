package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Hen-Heang/h-market/domain"
)

// SessionContextKey is where the auth middleware stores the resolved session.
const SessionContextKey = "auth_session"

// SessionFromContext returns the session placed by the auth middleware, or
// nil when the request is unauthenticated.
func SessionFromContext(c *gin.Context) *domain.Session {
	v, ok := c.Get(SessionContextKey)
	if !ok {
		return nil
	}
	session, ok := v.(*domain.Session)
	if !ok {
		return nil
	}
	return session
}
