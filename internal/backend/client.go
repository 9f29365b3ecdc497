package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	HealthPath  = "/health"
	MessagePath = "/api/message"
	StatusPath  = "/api/status"
)

// ErrInvalidJSON is wrapped by errors for 2xx responses whose body is not JSON.
var ErrInvalidJSON = errors.New("invalid json response body")

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Backend responded with status: %d", e.StatusCode)
}

// Client talks to a single backend instance. It sets no timeout of its own:
// callers bound a call only through the context they pass.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// New creates a Client for baseURL. A nil httpClient selects a client
// without timeout.
func New(baseURL *url.URL, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// URL returns the backend base URL.
func (c *Client) URL() *url.URL {
	return c.baseURL
}

// Endpoint joins the base URL and path by plain concatenation.
func (c *Client) Endpoint(path string) string {
	return strings.TrimSuffix(c.baseURL.String(), "/") + path
}

// Message fetches GET /api/message.
func (c *Client) Message(ctx context.Context) (json.RawMessage, error) {
	return c.getJSON(ctx, MessagePath)
}

// Status fetches GET /api/status.
func (c *Client) Status(ctx context.Context) (json.RawMessage, error) {
	return c.getJSON(ctx, StatusPath)
}

// Health reports whether GET /health answers 200.
func (c *Client) Health(ctx context.Context) error {
	res, err := c.get(ctx, HealthPath)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	if res.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: res.StatusCode}
	}

	return nil
}

func (c *Client) getJSON(ctx context.Context, path string) (json.RawMessage, error) {
	res, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, &StatusError{StatusCode: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body from %s: %w", c.Endpoint(path), err)
	}

	var probe json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("%w at %s: %v", ErrInvalidJSON, c.Endpoint(path), err)
	}

	return json.RawMessage(body), nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint(path), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}
