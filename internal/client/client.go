// Package client speaks the chat wire protocol: POST /api/chat with a JSON message, reply
// extracted from the JSON response.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/VickGidi/Victory-furniture-bot/internal/models"
)

// Client issues chat requests against a server base URL. The zero http.Client timeout is kept
// on purpose: a send waits for the environment's own network behavior, matching the widget.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Client for the given base URL, e.g. "http://localhost:5000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send posts one message and returns the reply text. Transport failures, non-2xx statuses,
// unparseable bodies, and a missing reply field all surface as errors; callers collapse them
// into the single user-visible connection-error message.
func (c *Client) Send(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(models.ChatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	// Prefer the pre-render markdown when the server offers it; any server satisfying the
	// wire protocol still works through the plain reply field.
	if md := gjson.GetBytes(data, "replyMarkdown"); md.Exists() {
		return md.String(), nil
	}

	reply := gjson.GetBytes(data, "reply")
	if !reply.Exists() {
		return "", fmt.Errorf("response has no reply field")
	}

	return reply.String(), nil
}
