package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Hen-Heang/h-market/domain"
	"github.com/Hen-Heang/h-market/internal/services"
)

// AuthHandlers serves the auth routes from the local credential store.
type AuthHandlers struct {
	credSvc  domain.CredentialService
	sessions domain.SessionStore
}

// NewAuthHandlers creates the mock-mode auth handlers.
func NewAuthHandlers(credSvc domain.CredentialService, sessions domain.SessionStore) *AuthHandlers {
	return &AuthHandlers{credSvc: credSvc, sessions: sessions}
}

// RegisterRequest is the partner/merchant registration body.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   int    `json:"roleId"`
}

// SignupRequest is the storefront signup body.
type SignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest is the login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmailRequest carries operations keyed by email only.
type EmailRequest struct {
	Email string `json:"email"`
}

// VerifyEmailRequest carries an email and its one-time code.
type VerifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// ResetPasswordRequest carries the forgot-password completion.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	// No separate confirmation field on this route.
	result, err := h.credSvc.Register(c.Request.Context(), req.Email, req.Password, req.Password, req.RoleID)
	if err != nil {
		FailErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "email": result.Email})
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandlers) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result, err := h.credSvc.Register(c.Request.Context(), req.Email, req.Password, req.ConfirmPassword, services.RolePartner)
	if err != nil {
		FailErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "email": result.Email})
}

// Login handles POST /api/auth/login.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result, err := h.credSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		FailErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"token":  result.Token,
		"userId": result.UserID,
		"roleId": result.RoleID,
	})
}

// VerifyEmail handles POST /api/auth/verify-email.
func (h *AuthHandlers) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.credSvc.VerifyEmail(c.Request.Context(), req.Email, req.Code); err != nil {
		FailErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ResendVerification handles POST /api/auth/resend-verification.
func (h *AuthHandlers) ResendVerification(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.credSvc.ResendVerification(c.Request.Context(), req.Email); err != nil {
		FailErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Code sent"})
}

// GenerateCode handles POST /api/auth/generate-code, the forgot-password
// entry point.
func (h *AuthHandlers) GenerateCode(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.credSvc.GenerateCode(c.Request.Context(), req.Email); err != nil {
		FailErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Code sent"})
}

// ResetPassword handles PUT /api/auth/reset-password.
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.credSvc.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		FailErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Password reset"})
}

// Me handles GET /api/auth/me for bearer-authenticated callers.
func (h *AuthHandlers) Me(c *gin.Context) {
	session := SessionFromContext(c)
	if session == nil {
		Fail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"userId": session.UserID,
		"email":  session.Email,
		"roleId": session.RoleID,
	})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandlers) Logout(c *gin.Context) {
	session := SessionFromContext(c)
	if session == nil {
		Fail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	if err := h.credSvc.Logout(c.Request.Context(), session.Token); err != nil {
		FailErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Fail writes the error envelope used by every auth route.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"ok": false, "message": message})
}

// FailErr maps a service error onto its transport status. Unknown errors,
// including storage failures, become an opaque 500.
func FailErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		Fail(c, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, domain.ErrInvalidCredentials):
		Fail(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, domain.ErrCodeInvalid):
		Fail(c, http.StatusUnauthorized, "Incorrect code")
	case errors.Is(err, domain.ErrNotVerified):
		Fail(c, http.StatusForbidden, "Email not verified. Please verify your email first.")
	case errors.Is(err, domain.ErrUserNotFound):
		Fail(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, domain.ErrEmailTaken):
		Fail(c, http.StatusConflict, "Email already registered. Please sign in.")
	case errors.Is(err, domain.ErrNoActiveCode):
		Fail(c, http.StatusConflict, "No active verification code. Please resend.")
	case errors.Is(err, domain.ErrCodeExpired):
		Fail(c, http.StatusGone, "Code expired. Please resend.")
	default:
		Fail(c, http.StatusInternalServerError, "Something went wrong")
	}
}

// validationMessage strips the sentinel prefix so clients see the specific
// reason ("please enter a valid email") rather than "validation failed: ...".
func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
	if msg == "" {
		return domain.ErrValidation.Error()
	}
	return msg
}
