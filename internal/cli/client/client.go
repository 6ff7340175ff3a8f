package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is an HTTP client for the Microshop storefront API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client for the given storefront base URL
// (e.g. "https://shop.example.com"). The "/api" prefix is added per request.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetHTTPClient sets a custom HTTP client.
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// errorBody is the JSON error payload the API returns on failures.
type errorBody struct {
	Message string `json:"message"`
}

// newRequest builds an /api request. A non-empty token is sent as a bearer
// credential; a non-nil payload is JSON-encoded.
func (c *Client) newRequest(ctx context.Context, method, path, token string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("%s/api%s", c.baseURL, path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	return req, nil
}

// netError normalizes a transport-level failure. The wrapped error keeps the
// transport detail for logs; the message is what the user sees.
func netError(err error) *APIError {
	return &APIError{
		Kind:    fmt.Errorf("%w: %w", ErrNetwork, err),
		Message: "could not reach the storefront API. Check your connection and the configured store URL",
	}
}

// apiError normalizes a non-2xx response into the given failure class. The
// message is taken from the response body when the API supplies one.
func apiError(kind error, resp *http.Response, fallback string) *APIError {
	msg := fallback
	if data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); err == nil {
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil && eb.Message != "" {
			msg = eb.Message
		}
	}
	return &APIError{
		Kind:    kind,
		Status:  resp.StatusCode,
		Message: msg,
	}
}

// decode reads a JSON response body into out.
func decode(resp *http.Response, out any) error {
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
