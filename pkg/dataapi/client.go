package dataapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tawdifak-listings/pkg/logger"
)

const (
	maxResponseBytes = 8 << 20
	maxErrorBody     = 512
)

// Client calls a remote listing data backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
}

// NewClient creates a client; maxRetries counts attempts, not re-attempts.
func NewClient(baseURL string, timeout time.Duration, maxRetries int) *Client {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxRetries: maxRetries,
		backoff:    time.Second,
	}
}

// WithBackoff sets the unit of the linear backoff between attempts.
func (c *Client) WithBackoff(d time.Duration) *Client {
	c.backoff = d
	return c
}

// PageParams are the query parameters of a page request.
type PageParams struct {
	Search   string
	Country  string
	City     string
	Category string
	WorkType string
	PostType string
	Page     int
	Limit    int
}

func (p PageParams) values() url.Values {
	v := url.Values{}
	set := func(name, value string) {
		if value != "" {
			v.Set(name, value)
		}
	}
	set("searchQuery", p.Search)
	set("country", p.Country)
	set("city", p.City)
	set("categoryId", p.Category)
	set("workType", p.WorkType)
	set("postType", p.PostType)
	v.Set("page", strconv.Itoa(p.Page))
	v.Set("limit", strconv.Itoa(p.Limit))
	return v
}

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("data api returned %d: %s", e.StatusCode, e.Body)
}

// Temporary reports whether retrying may help.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

type pageResponse[T any] struct {
	Data       []T   `json:"data"`
	TotalCount int64 `json:"totalCount"`
}

// FetchPage requests GET {base}/{resource}?... and decodes {data, totalCount}.
// Transport errors and 5xx answers are retried with linear backoff.
func FetchPage[T any](ctx context.Context, c *Client, resource string, p PageParams) ([]T, int64, error) {
	endpoint := c.baseURL + "/" + strings.TrimLeft(resource, "/") + "?" + p.values().Encode()

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		body, err := c.get(ctx, endpoint)
		if err == nil {
			var resp pageResponse[T]
			if err := json.Unmarshal(body, &resp); err != nil {
				logger.GlobalLogger.Errorf("Failed to decode data api response: url=%s, error=%v", endpoint, err)
				return nil, 0, fmt.Errorf("decode %s: %w", resource, err)
			}
			if resp.Data == nil {
				resp.Data = []T{}
			}
			return resp.Data, resp.TotalCount, nil
		}

		lastErr = err
		if se, ok := err.(*StatusError); ok && !se.Temporary() {
			return nil, 0, err
		}
		logger.GlobalLogger.Warnf("Data api request failed (attempt %d/%d): url=%s, error=%v", attempt, c.maxRetries, endpoint, err)
		if attempt == c.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		case <-time.After(time.Duration(attempt) * c.backoff):
		}
	}
	return nil, 0, fmt.Errorf("fetch %s after %d attempts: %w", resource, c.maxRetries, lastErr)
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(body) > maxResponseBytes {
		return nil, fmt.Errorf("response exceeds %d bytes", maxResponseBytes)
	}
	return body, nil
}
