// Package upstream is the HTTP client for the backend API the dashboard
// reads from. Responses are decoded into untyped JSON values and handed to
// the normalization layer as-is; the wire shapes are too inconsistent across
// backend deployments to bind to structs here.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const defaultBaseURL = "http://localhost:9000/api"

// ClientOption configures the client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client is the backend API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend API client.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListParams are the query parameters for paginated list endpoints. Filters
// are passed through verbatim.
type ListParams struct {
	Page    int
	Limit   int
	Filters map[string]string
}

func (p ListParams) query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	for k, v := range p.Filters {
		if v != "" {
			q.Set(k, v)
		}
	}
	return q
}

// FetchAccounts fetches a page of raw account records.
func (c *Client) FetchAccounts(ctx context.Context, params ListParams) (any, error) {
	return c.get(ctx, "/accounts", params.query())
}

// FetchAccount fetches a single raw account record.
func (c *Client) FetchAccount(ctx context.Context, id string) (any, error) {
	return c.get(ctx, "/accounts/"+url.PathEscape(id), nil)
}

// FetchContent fetches a page of raw captured-content records.
func (c *Client) FetchContent(ctx context.Context, params ListParams) (any, error) {
	return c.get(ctx, "/content", params.query())
}

// FetchJobs fetches a page of raw job records.
func (c *Client) FetchJobs(ctx context.Context, params ListParams) (any, error) {
	return c.get(ctx, "/jobs", params.query())
}

// FetchOptions fetches an option list (proxy groups, tags, platforms).
func (c *Client) FetchOptions(ctx context.Context, kind string) (any, error) {
	return c.get(ctx, "/options/"+url.PathEscape(kind), nil)
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (any, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseAPIError(resp.StatusCode, body)
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return payload, nil
}
