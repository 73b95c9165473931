package display

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fundraiser-display/internal/apperrors"
	"fundraiser-display/internal/goals"
	"fundraiser-display/internal/percentage"
)

// Fetcher is the part of the data service the display reads.
type Fetcher interface {
	Goals(ctx context.Context) ([]goals.Goal, error)
	Percentage(ctx context.Context) (int, error)
}

// Client reads goals and the percentage over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the service at baseURL. prefix is the route
// prefix the service mounts its API under ("/api" by default).
func NewClient(baseURL, prefix string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/" + strings.Trim(prefix, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Goals(ctx context.Context) ([]goals.Goal, error) {
	var list []goals.Goal
	if err := c.getJSON(ctx, "goals", &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []goals.Goal{}
	}
	return list, nil
}

func (c *Client) Percentage(ctx context.Context) (int, error) {
	var v percentage.Value
	if err := c.getJSON(ctx, "percentage", &v); err != nil {
		return 0, err
	}
	return v.Percentage, nil
}

func (c *Client) getJSON(ctx context.Context, resource string, v any) error {
	url := strings.TrimRight(c.baseURL, "/") + "/" + resource

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &apperrors.FetchError{Resource: resource, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Platform", "kiosk")

	resp, err := c.http.Do(req)
	if err != nil {
		return &apperrors.FetchError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &apperrors.FetchError{Resource: resource, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &apperrors.FetchError{
			Resource:   resource,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decode body: %w", err),
		}
	}
	return nil
}
