// Package backend talks to the remote travel chat service over HTTP.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/zhubert/tripchat/internal/errors"
	"github.com/zhubert/tripchat/internal/logger"
)

const (
	DefaultBaseURL       = "http://localhost:8000"
	DefaultTimeout       = 60 * time.Second
	DefaultHealthTimeout = 5 * time.Second

	healthPath = "/health"
	chatPath   = "/chat"

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 4 << 20
)

// Client handles API interactions with the chat service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string

	// HealthTimeout bounds Health independently of HTTPClient.Timeout.
	HealthTimeout time.Duration
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL, version string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		UserAgent:     "tripchat/" + version,
		HealthTimeout: DefaultHealthTimeout,
	}
}

// SetTimeout configures the HTTP client timeout used for chat requests.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// APIError is returned for non-2xx chat responses.
type APIError struct {
	StatusCode int
	// Detail is the server's "detail" string, or "" when the body had none.
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("chat service returned HTTP %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("chat service returned HTTP %d", e.StatusCode)
}

type healthResponse struct {
	APIReady bool `json:"api_ready"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response *string `json:"response"`
}

type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// Health probes GET /health once. It returns true only for a 2xx response
// whose body carries "api_ready": true. A reachable service that is not ready
// yields (false, nil).
func (c *Client) Health(ctx context.Context) (bool, error) {
	log := logger.WithComponent("Backend")

	if c.HealthTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.HealthTimeout)
		defer cancel()
	}

	status, body, err := c.do(ctx, http.MethodGet, healthPath, nil)
	if err != nil {
		log.Warn("health probe failed", "error", err)
		return false, err
	}
	if !isSuccess(status) {
		log.Warn("health probe returned error status", "status", status)
		return false, errors.BackendStatus(c.BaseURL+healthPath, status)
	}

	var resp healthResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Warn("health probe returned malformed body", "error", err)
		return false, errors.BackendDecodeFailed(c.BaseURL+healthPath, err)
	}

	log.Debug("health probe completed", "apiReady", resp.APIReady)
	return resp.APIReady, nil
}

// Chat posts message to POST /chat and returns the service's reply text.
//
// Errors:
//   - *APIError for non-2xx responses
//   - KindNetwork / KindTimeout errors when the service cannot be reached
//   - KindDecode errors when a 2xx body has no string "response" field
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	log := logger.WithComponent("Backend")

	payload, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return "", errors.E(errors.Op("backend.Chat"), errors.KindInvalid, err)
	}

	log.Debug("sending chat request", "url", c.BaseURL+chatPath, "requestSize", len(payload))

	status, body, err := c.do(ctx, http.MethodPost, chatPath, payload)
	if err != nil {
		log.Error("chat request failed", "error", err)
		return "", err
	}

	if !isSuccess(status) {
		apiErr := &APIError{StatusCode: status, Detail: parseDetail(body)}
		log.Error("chat service returned error status", "status", status, "detail", apiErr.Detail)
		return "", apiErr
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Error("failed to unmarshal chat response", "error", err)
		return "", errors.BackendDecodeFailed(c.BaseURL+chatPath, err)
	}
	if resp.Response == nil {
		log.Error("chat response has no response field")
		return "", errors.BackendDecodeFailed(c.BaseURL+chatPath, stderrors.New(`missing "response" field`))
	}

	log.Debug("chat request completed", "responseSize", len(*resp.Response))
	return *resp.Response, nil
}

// do performs a single request and returns the status and body.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) (int, []byte, error) {
	url := c.BaseURL + path

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, errors.E(errors.Op("backend.Do"), errors.KindInvalid, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return 0, nil, transportError(url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, transportError(url, err)
	}
	return resp.StatusCode, body, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// parseDetail extracts a string "detail" from an error body. Structured
// details (validation error lists) and unparseable bodies yield "".
func parseDetail(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err != nil || len(er.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(er.Detail, &detail); err != nil {
		return ""
	}
	return strings.TrimSpace(detail)
}

func transportError(url string, err error) error {
	var netErr net.Error
	if stderrors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return errors.BackendTimeout(url, err)
	}
	return errors.BackendUnreachable(url, err)
}
