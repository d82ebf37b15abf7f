package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phishguard/outlook-threat-reporter/internal/core"
	"go.uber.org/zap"
)

// Client is an HTTP implementation of the core.GraphAPI port. Every call is
// a single attempt; failures surface immediately with no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// graphErrorBody is the JSON shape Graph uses for error responses
type graphErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewClient creates a new Graph API client
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Get issues an authenticated GET against the Graph API
func (c *Client) Get(ctx context.Context, token, path, query string) (json.RawMessage, error) {
	if query != "" && !strings.HasPrefix(query, "?") {
		return nil, fmt.Errorf("graph query must begin with '?': %q", query)
	}
	return c.do(ctx, http.MethodGet, token, path+query, nil)
}

// Post issues an authenticated POST with a JSON body against the Graph API
func (c *Client) Post(ctx context.Context, token, path string, body any) (json.RawMessage, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize graph request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, token, path, data)
}

func (c *Client) do(ctx context.Context, method, token, pathAndQuery string, body []byte) (json.RawMessage, error) {
	if !strings.HasPrefix(pathAndQuery, "/") {
		return nil, fmt.Errorf("graph path must begin with '/': %q", pathAndQuery)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+pathAndQuery, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Correlation id for Graph-side diagnostics
	requestID := uuid.NewString()
	req.Header.Set("client-request-id", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph response: %w", err)
	}

	c.logger.Debug("Graph API call",
		zap.String("method", method),
		zap.String("path", pathAndQuery),
		zap.Int("status", resp.StatusCode),
		zap.String("client_request_id", requestID),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// apiError builds a typed error from a non-2xx response, preferring the
// message embedded in Graph's structured error body over the raw text.
func apiError(status int, body []byte) *core.APIError {
	var parsed graphErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return &core.APIError{StatusCode: status, Message: parsed.Error.Message}
	}
	return &core.APIError{StatusCode: status, Message: strings.TrimSpace(string(body))}
}
