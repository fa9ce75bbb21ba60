// Package client submits the public contact form from Go programs.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/validation"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "portfolio-api-client"
	contactPath      = "/api/contact"
)

// APIError is returned when the server rejects a submission.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("contact request failed with status %d: %s", e.StatusCode, e.Message)
}

// ContactClient posts contact form submissions to a portfolio server.
type ContactClient struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// Option configures a ContactClient.
type Option func(*ContactClient)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *ContactClient) { c.client = hc }
}

// WithUserAgent sets the User-Agent sent with each request.
func WithUserAgent(ua string) Option {
	return func(c *ContactClient) { c.userAgent = ua }
}

// NewContactClient creates a client for the server at baseURL.
func NewContactClient(baseURL string, opts ...Option) *ContactClient {
	c := &ContactClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: defaultTimeout}
	}
	return c
}

// Submit validates req and sends it once. A request that fails validation
// returns *validation.Errors without any network call. Submit does not
// retry.
func (c *ContactClient) Submit(ctx context.Context, req *models.ContactRequest) (*models.ContactResponse, error) {
	if err := validation.AsError(validation.ValidateContact(req)); err != nil {
		return nil, err
	}

	body, err := json.Marshal(validation.NormalizeContact(req))
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+contactPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}

	var out models.ContactResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}
