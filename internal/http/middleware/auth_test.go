package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Hen-Heang/h-market/domain"
	"github.com/Hen-Heang/h-market/internal/http/handlers"
	"github.com/Hen-Heang/h-market/internal/mocks"
)

func performWithAuth(t *testing.T, sessions domain.SessionStore, authHeader string) (*httptest.ResponseRecorder, *domain.Session) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var captured *domain.Session
	router := gin.New()
	router.GET("/protected", RequireSession(sessions), func(c *gin.Context) {
		captured = handlers.SessionFromContext(c)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w, captured
}

func TestRequireSession(t *testing.T) {
	tests := []struct {
		name            string
		authHeader      string
		setupStore      func(*mocks.MockSessionStore)
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "missing header",
			authHeader:      "",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Authorization header required",
		},
		{
			name:            "malformed header",
			authHeader:      "Basic abc123",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid authorization header format",
		},
		{
			name:            "unknown token",
			authHeader:      "Bearer nope",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid session",
		},
		{
			name:       "expired session",
			authHeader: "Bearer stale",
			setupStore: func(s *mocks.MockSessionStore) {
				s.FindByTokenFunc = func(ctx context.Context, token string) (*domain.Session, error) {
					return nil, domain.ErrSessionExpired
				}
			},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Session expired",
		},
		{
			name:       "valid token passes through",
			authHeader: "Bearer tok-1",
			setupStore: func(s *mocks.MockSessionStore) {
				s.FindByTokenFunc = func(ctx context.Context, token string) (*domain.Session, error) {
					return &domain.Session{Token: token, UserID: 42, Email: "a@x.com", RoleID: 2}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockSessionStore()
			if tt.setupStore != nil {
				tt.setupStore(store)
			}

			w, session := performWithAuth(t, store, tt.authHeader)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedMessage != "" {
				var body map[string]any
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
					t.Fatalf("decode response body: %v", err)
				}
				if body["message"] != tt.expectedMessage {
					t.Errorf("expected message %q, got %v", tt.expectedMessage, body["message"])
				}
			}
			if tt.expectedStatus == http.StatusOK {
				if session == nil {
					t.Fatal("expected session on context")
				}
				if session.Token != "tok-1" || session.UserID != 42 {
					t.Errorf("unexpected session on context: %+v", session)
				}
			}
		})
	}
}
