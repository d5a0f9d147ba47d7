package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mentorlink/client/internal/logging"
)

const requestIDHeader = "X-Request-Id"

// HTTPClient talks JSON over HTTP to the Mentorlink backend.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	log     logging.Logger
}

// NewHTTPClient builds a client for the given base URL. The timeout applies
// to every request as a whole.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		log:     log.With("component", "api"),
	}
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*Session, error) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var s Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) Register(ctx context.Context, reg Registration) (*Session, error) {
	var s Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", reg, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) Logout(ctx context.Context, token, refreshToken string) error {
	req := struct {
		RefreshToken string `json:"refresh_token"`
	}{RefreshToken: refreshToken}

	return c.do(ctx, http.MethodPost, "/api/auth/logout", token, req, nil)
}

func (c *HTTPClient) VerifySession(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodGet, "/api/auth/session", token, nil, nil)
}

func (c *HTTPClient) RequestPasswordReset(ctx context.Context, email string) error {
	req := struct {
		Email string `json:"email"`
	}{Email: email}

	return c.do(ctx, http.MethodPost, "/api/password/reset/request", "", req, nil)
}

func (c *HTTPClient) VerifyResetCode(ctx context.Context, email, code string) error {
	req := struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}{Email: email, Code: code}

	return c.do(ctx, http.MethodPost, "/api/password/reset/verify", "", req, nil)
}

func (c *HTTPClient) ConfirmPasswordReset(ctx context.Context, email, code, newPassword, confirmPassword string) error {
	req := struct {
		Email           string `json:"email"`
		Code            string `json:"code"`
		NewPassword     string `json:"new_password"`
		ConfirmPassword string `json:"confirm_password"`
	}{Email: email, Code: code, NewPassword: newPassword, ConfirmPassword: confirmPassword}

	return c.do(ctx, http.MethodPost, "/api/password/reset/confirm", "", req, nil)
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

// do performs one round-trip: marshals body (when non-nil), attaches the
// bearer token and a request ID, maps the response to sentinel errors, and
// decodes the success payload into out (when non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		c.log.Warn(ctx, "request failed", "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	c.log.Debug(ctx, "backend refused request",
		"path", path, "request_id", requestID, "status", resp.StatusCode)

	return c.mapStatus(resp)
}

// mapStatus converts a non-2xx response to a sentinel error.
func (c *HTTPClient) mapStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	msg := body.Error
	if msg == "" {
		msg = body.Message
	}
	if msg == "" {
		msg = resp.Status
	}
	return fmt.Errorf("%w: %s", ErrRejected, msg)
}
