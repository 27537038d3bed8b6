package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Hen-Heang/h-market/domain"
)

func TestClient_Login_SendsFormAndParsesEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/auth/login" {
			t.Errorf("expected /auth/login, got %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("expected form content type, got %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("email") != "a@x.com" || r.PostForm.Get("password") != "password1" {
			t.Errorf("unexpected form values: %v", r.PostForm)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"token": "tok-1", "userId": 29658814, "roleId": 2},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	result, err := client.Login(context.Background(), "a@x.com", "password1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Token != "tok-1" {
		t.Errorf("expected token tok-1, got %q", result.Token)
	}
	if result.UserID != 29658814 {
		t.Errorf("expected userId 29658814, got %d", result.UserID)
	}
	if result.RoleID != 2 {
		t.Errorf("expected roleId 2, got %d", result.RoleID)
	}
}

func TestClient_Register_ExtractsNestedStatusMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"status": map[string]any{"message": "Email already registered"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.Register(context.Background(), "a@x.com", "password1", 2)
	if err == nil {
		t.Fatal("expected an error")
	}

	var upstreamErr *Error
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if upstreamErr.StatusCode != http.StatusConflict {
		t.Errorf("expected status 409, got %d", upstreamErr.StatusCode)
	}
	if upstreamErr.Message != "Email already registered" {
		t.Errorf("expected nested status message, got %q", upstreamErr.Message)
	}
	if !errors.Is(err, domain.ErrUpstream) {
		t.Error("expected the error to unwrap to domain.ErrUpstream")
	}
}

func TestClient_Register_SendsJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if body["email"] != "a@x.com" || body["roleId"] != float64(1) {
			t.Errorf("unexpected request body: %v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"email": "a@x.com"}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	result, err := client.Register(context.Background(), "a@x.com", "password1", 1)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if result.Email != "a@x.com" {
		t.Errorf("expected email a@x.com, got %q", result.Email)
	}
}

func TestClient_GenerateCode_UsesQueryParam(t *testing.T) {
	var gotPath, gotEmail string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotEmail = r.URL.Query().Get("email")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "authorization")
	if err := client.GenerateCode(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("GenerateCode() error = %v", err)
	}
	if gotPath != "/authorization/generate" {
		t.Errorf("expected /authorization/generate, got %s", gotPath)
	}
	if gotEmail != "a@x.com" {
		t.Errorf("expected email query param, got %q", gotEmail)
	}
}

func TestClient_ResetPassword_PutsAllQueryParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if r.URL.Path != "/authorization/forget" {
			t.Errorf("expected /authorization/forget, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("email") != "a@x.com" || q.Get("otp") != "1234" || q.Get("newPassword") != "newpassword1" {
			t.Errorf("unexpected query params: %v", q)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	if err := client.ResetPassword(context.Background(), "a@x.com", "1234", "newpassword1"); err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}
}

func TestClient_NonJSONErrorBodyFallsBackToDefaultMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.Login(context.Background(), "a@x.com", "password1")

	var upstreamErr *Error
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if upstreamErr.Message != "Login failed" {
		t.Errorf("expected fallback message, got %q", upstreamErr.Message)
	}
}
