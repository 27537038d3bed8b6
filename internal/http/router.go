package httpx

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Hen-Heang/h-market/domain"
	"github.com/Hen-Heang/h-market/internal/http/handlers"
	"github.com/Hen-Heang/h-market/internal/http/middleware"
)

// BuildRouter mounts the marketplace auth API.
//
// The signup and verify-email routes always run against the local credential
// store. The remaining auth routes forward upstream when proxy is non-nil
// (proxy mode), and use the local store otherwise (mock mode). Bearer-token
// routes exist only in mock mode, where the session registry is local.
func BuildRouter(
	local *handlers.AuthHandlers,
	proxy *handlers.ProxyHandlers,
	sessions domain.SessionStore,
	logger *zap.Logger,
	rps rate.Limit,
	burst int,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/api/auth")
	auth.Use(middleware.RateLimitPerIP(rps, burst))

	auth.POST("/signup", local.Signup)
	auth.POST("/verify-email", local.VerifyEmail)

	if proxy != nil {
		auth.POST("/register", proxy.Register)
		auth.POST("/login", proxy.Login)
		auth.POST("/resend-verification", proxy.ResendVerification)
		auth.POST("/generate-code", proxy.GenerateCode)
		auth.PUT("/reset-password", proxy.ResetPassword)
		return r
	}

	auth.POST("/register", local.Register)
	auth.POST("/login", local.Login)
	auth.POST("/resend-verification", local.ResendVerification)
	auth.POST("/generate-code", local.GenerateCode)
	auth.PUT("/reset-password", local.ResetPassword)

	authed := r.Group("/api/auth").Use(middleware.RequireSession(sessions))
	authed.GET("/me", local.Me)
	authed.POST("/logout", local.Logout)

	return r
}
