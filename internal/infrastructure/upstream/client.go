package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Hen-Heang/h-market/domain"
)

// Client talks to the remote marketplace auth API when the service runs in
// proxy mode. It only forwards and reshapes; no local state is involved.
type Client struct {
	baseURL  string
	authPath string
	httpc    *http.Client
}

// Error carries the upstream HTTP status and its user-facing message.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error { return domain.ErrUpstream }

// envelope is the remote API response shape. Error messages appear either at
// the top level or nested under status.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Status  *struct {
		Message string `json:"message"`
	} `json:"status"`
}

func (e *envelope) errorMessage(fallback string) string {
	if e == nil {
		return fallback
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Status != nil && e.Status.Message != "" {
		return e.Status.Message
	}
	return fallback
}

// NewClient creates a proxy client. authPath is the URL segment of the code
// generation and password reset endpoints, "authorization" by default.
func NewClient(baseURL, authPath string) *Client {
	if authPath == "" {
		authPath = "authorization"
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		authPath: strings.Trim(authPath, "/"),
		httpc:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Register forwards a registration to POST <base>/auth/register.
func (c *Client) Register(ctx context.Context, email, password string, roleID int) (*domain.RegisterResult, error) {
	body, _ := json.Marshal(map[string]any{
		"email":    email,
		"password": password,
		"roleId":   roleID,
	})
	env, err := c.do(ctx, http.MethodPost, c.baseURL+"/auth/register", "application/json", bytes.NewReader(body), "Registration failed")
	if err != nil {
		return nil, err
	}

	out := &domain.RegisterResult{Email: email}
	var data struct {
		Email string `json:"email"`
	}
	if len(env.Data) > 0 && json.Unmarshal(env.Data, &data) == nil && data.Email != "" {
		out.Email = data.Email
	}
	return out, nil
}

// Login forwards credentials to POST <base>/auth/login as a form body.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	form := url.Values{"email": {email}, "password": {password}}
	env, err := c.do(ctx, http.MethodPost, c.baseURL+"/auth/login",
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()), "Login failed")
	if err != nil {
		return nil, err
	}

	var data struct {
		Token  string `json:"token"`
		UserID int64  `json:"userId"`
		RoleID int    `json:"roleId"`
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("%w: malformed login payload: %v", domain.ErrUpstream, err)
		}
	}
	return &domain.AuthResult{Token: data.Token, UserID: data.UserID, RoleID: data.RoleID}, nil
}

// GenerateCode forwards to POST <base>/<authPath>/generate?email=...
// and serves both the resend-verification and forgot-password flows.
func (c *Client) GenerateCode(ctx context.Context, email string) error {
	q := url.Values{"email": {email}}
	u := fmt.Sprintf("%s/%s/generate?%s", c.baseURL, c.authPath, q.Encode())
	_, err := c.do(ctx, http.MethodPost, u, "", nil, "Failed to send code")
	return err
}

// ResetPassword forwards to PUT <base>/<authPath>/forget?email&otp&newPassword.
func (c *Client) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	q := url.Values{"email": {email}, "otp": {code}, "newPassword": {newPassword}}
	u := fmt.Sprintf("%s/%s/forget?%s", c.baseURL, c.authPath, q.Encode())
	_, err := c.do(ctx, http.MethodPut, u, "", nil, "Reset failed")
	return err
}

// do issues the request and decodes the envelope. Non-2xx responses become
// *Error carrying the upstream status and its message.
func (c *Client) do(ctx context.Context, method, u, contentType string, body io.Reader, fallback string) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrUpstream, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer res.Body.Close()

	var env envelope
	// The body may be empty or non-JSON on errors; the envelope stays zero.
	_ = json.NewDecoder(res.Body).Decode(&env)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &Error{StatusCode: res.StatusCode, Message: env.errorMessage(fallback)}
	}
	return &env, nil
}
