// Package directory provides a client for a chat server's member, group
// and custom emoji listings, which supply the names chat markup resolves.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/open-cli-collective/chatmd/internal/logging"
)

const (
	defaultTimeout = 30 * time.Second
)

// Client is the chat directory API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new directory client. An empty token sends no
// Authorization header.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// SetHTTPClient replaces the underlying HTTP client.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// BaseURL returns the server URL requests are made against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do executes an HTTP request and returns the response body.
func (c *Client) do(ctx context.Context, method, path string) ([]byte, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	log := logging.Ctx(ctx).With("method", method, "path", path)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug("directory request failed", "err", err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	log.Debug("directory request", "status", resp.StatusCode, "elapsed", time.Since(start))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		errResp := &ErrorResponse{}
		if err := json.Unmarshal(respBody, errResp); err != nil || errResp.Message == "" && len(errResp.Errors) == 0 {
			errResp = &ErrorResponse{Message: strings.TrimSpace(string(respBody))}
		}
		errResp.StatusCode = resp.StatusCode
		return nil, errResp
	}

	return respBody, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path)
}
