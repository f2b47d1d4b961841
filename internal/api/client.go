// Package api is the canonical client for the TaskFlow backend.
//
// Every remote call the application makes goes through this one client: it is
// the single adapter boundary between the backend's snake_case wire schema
// and the rest of the code. Nothing outside this package builds URLs, sets
// auth headers, or interprets status codes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskflowhq/taskflow/internal/errors"
	"github.com/taskflowhq/taskflow/internal/log"
)

const apiPrefix = "/api/v1"

// Client is a bearer-token HTTP client for the TaskFlow API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger

	mu                sync.Mutex
	token             string
	onUnauthorized    func()
	unauthorizedFired bool
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.DefaultLogger().With("component", "api"),
	}
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetToken sets the bearer token attached to every request and re-arms the
// unauthorized hook for the new credential.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.unauthorizedFired = false
}

// Token returns the bearer token currently attached to requests.
func (c *Client) Token() string {
	return c.currentToken()
}

// ClearToken removes the bearer token.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// SetOnUnauthorized registers a hook invoked when any request comes back 401.
// The hook fires at most once per credential; the session store uses it for
// global invalidation and return-to-login.
func (c *Client) SetOnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) fireUnauthorized() {
	c.mu.Lock()
	fn := c.onUnauthorized
	fired := c.unauthorizedFired
	c.unauthorizedFired = true
	c.mu.Unlock()

	if fn != nil && !fired {
		fn()
	}
}

// doRequest performs a JSON request against the API.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeAPIEncodeFailed, "failed to marshal request body", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIEncodeFailed, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.send(req)
}

// doForm performs a form-encoded request. The login endpoints take OAuth2
// password-grant form fields, not JSON.
func (c *Client) doForm(ctx context.Context, path string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIEncodeFailed, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.send(req)
}

func (c *Client) send(req *http.Request) (*http.Response, error) {
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if req.Context().Err() == context.DeadlineExceeded {
			return nil, errors.Wrap(errors.ErrCodeAPITimeout, "request timed out", err)
		}
		return nil, errors.NewAPIUnreachableError(c.baseURL, err)
	}

	c.logger.Debug("request completed",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
	)

	return resp, nil
}

// errorDetail is the FastAPI-style error envelope.
type errorDetail struct {
	Detail json.RawMessage `json:"detail"`
}

// parseResponse decodes the response into target, converting non-2xx status
// codes into coded errors. A 401 additionally fires the unauthorized hook.
func (c *Client) parseResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if target == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return errors.Wrap(errors.ErrCodeAPIDecodeFailed, "failed to decode response", err)
		}
		return nil
	}

	detail := readDetail(resp.Body)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		c.fireUnauthorized()
		if detail == "" {
			detail = "authentication required"
		}
		return errors.New(errors.ErrCodeAPIUnauthorized, detail)
	case http.StatusForbidden:
		if detail == "" {
			detail = "access denied"
		}
		return errors.New(errors.ErrCodeAPIForbidden, detail)
	case http.StatusNotFound:
		if detail == "" {
			detail = "resource not found"
		}
		return errors.New(errors.ErrCodeAPINotFound, detail)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if detail == "" {
			detail = "invalid request"
		}
		return errors.New(errors.ErrCodeAPIValidation, detail)
	default:
		if detail == "" {
			detail = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return errors.New(errors.ErrCodeAPIServer, detail).
			WithSuggestion("Retry the operation; the backend may be recovering")
	}
}

// readDetail extracts the backend's human-readable error message.
// FastAPI sends {"detail": "..."} for handled errors and a structured list
// for validation failures; anything else falls back to the raw body.
func readDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 8<<10))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var env errorDetail
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Detail) > 0 {
		var s string
		if err := json.Unmarshal(env.Detail, &s); err == nil {
			return s
		}
		// Validation errors arrive as a list of field problems.
		var fields []struct {
			Loc []interface{} `json:"loc"`
			Msg string        `json:"msg"`
		}
		if err := json.Unmarshal(env.Detail, &fields); err == nil && len(fields) > 0 {
			parts := make([]string, 0, len(fields))
			for _, f := range fields {
				if len(f.Loc) > 0 {
					parts = append(parts, fmt.Sprintf("%v: %s", f.Loc[len(f.Loc)-1], f.Msg))
				} else {
					parts = append(parts, f.Msg)
				}
			}
			return strings.Join(parts, "; ")
		}
	}

	return strings.TrimSpace(string(raw))
}

// Health checks backend availability.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}

	var status struct {
		Status string `json:"status"`
	}
	if err := c.parseResponse(resp, &status); err != nil {
		return err
	}
	if status.Status != "ok" {
		return errors.New(errors.ErrCodeAPIServer, "backend reported status "+status.Status)
	}
	return nil
}
