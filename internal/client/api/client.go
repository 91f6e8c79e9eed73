// Package api is the HTTP invoker for the counter backend.
// It mirrors the server's wire contract one method per endpoint and carries
// the caller's identity in the x-user-id header.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	sharedapi "counter_backend/internal/api"
)

// HeaderUserID is the bearer-identity header expected by the server.
const HeaderUserID = "x-user-id"

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Client invokes the counter backend over HTTP/JSON.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// do sends one request and decodes the response into out (when out != nil).
// Non-2xx responses are returned as *APIError with the server's message.
func (c *Client) do(ctx context.Context, method, path string, userID uint, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set(HeaderUserID, strconv.FormatUint(uint64(userID), 10))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e sharedapi.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Login authenticates with the server and returns the issued identity.
func (c *Client) Login(ctx context.Context, email, password string) (*sharedapi.LoginResponse, error) {
	var out sharedapi.LoginResponse
	req := sharedapi.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/login", 0, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Count fetches today's server-side count for the user.
func (c *Client) Count(ctx context.Context, userID uint) (uint, error) {
	var out sharedapi.CountResponse
	if err := c.do(ctx, http.MethodGet, "/counter", userID, nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// Increment advances the server-side counter by one step and returns the new value.
// The call carries no local count; the server applies its own +1.
func (c *Client) Increment(ctx context.Context, userID uint) (uint, error) {
	var out sharedapi.CountResponse
	if err := c.do(ctx, http.MethodPost, "/counter", userID, struct{}{}, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// Reset zeroes today's server-side counter.
func (c *Client) Reset(ctx context.Context, userID uint) error {
	return c.do(ctx, http.MethodPost, "/counter/reset", userID, struct{}{}, nil)
}

// Logout notifies the server. The server holds no session state, so this is
// purely best-effort; callers discard local state regardless of the outcome.
func (c *Client) Logout(ctx context.Context, userID uint) error {
	return c.do(ctx, http.MethodPost, "/logout", userID, struct{}{}, nil)
}
