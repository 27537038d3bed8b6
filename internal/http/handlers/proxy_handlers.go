package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hen-Heang/h-market/internal/infrastructure/upstream"
)

// ProxyHandlers serves the auth routes by forwarding to the remote
// marketplace API. Active when an upstream base URL is configured.
type ProxyHandlers struct {
	client *upstream.Client
}

// NewProxyHandlers creates the proxy-mode auth handlers.
func NewProxyHandlers(client *upstream.Client) *ProxyHandlers {
	return &ProxyHandlers{client: client}
}

// Register handles POST /api/auth/register by forwarding upstream.
func (h *ProxyHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result, err := h.client.Register(c.Request.Context(), req.Email, req.Password, req.RoleID)
	if err != nil {
		failUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "email": result.Email})
}

// Login handles POST /api/auth/login by forwarding upstream.
func (h *ProxyHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result, err := h.client.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		failUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"token":  result.Token,
		"userId": result.UserID,
		"roleId": result.RoleID,
	})
}

// ResendVerification handles POST /api/auth/resend-verification.
func (h *ProxyHandlers) ResendVerification(c *gin.Context) {
	h.generate(c)
}

// GenerateCode handles POST /api/auth/generate-code.
func (h *ProxyHandlers) GenerateCode(c *gin.Context) {
	h.generate(c)
}

// Both resend and forgot-password map to the upstream generate endpoint.
func (h *ProxyHandlers) generate(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.client.GenerateCode(c.Request.Context(), req.Email); err != nil {
		failUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Code sent"})
}

// ResetPassword handles PUT /api/auth/reset-password.
func (h *ProxyHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.client.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		failUpstream(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Password reset"})
}

// failUpstream relays the upstream status and message when available.
func failUpstream(c *gin.Context, err error) {
	var ue *upstream.Error
	if errors.As(err, &ue) {
		Fail(c, ue.StatusCode, ue.Message)
		return
	}
	Fail(c, http.StatusBadGateway, "Upstream API unavailable")
}
