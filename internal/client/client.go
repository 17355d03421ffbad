// Package client talks to a running `renobudget serve` instance.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/theirongolddev/renobudget/internal/cli"
	"github.com/theirongolddev/renobudget/internal/estimate"
	"github.com/theirongolddev/renobudget/internal/intake"
	"github.com/theirongolddev/renobudget/internal/server"
)

const (
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
	userAgent      = "renobudget-client/1.0"
)

// ErrUnreachable wraps transport failures.
var ErrUnreachable = errors.New("client: server unreachable")

// APIError is a non-2xx reply from the server.
type APIError struct {
	StatusCode  int
	Message     string
	FieldErrors map[string]string
	RequestID   string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("client: unexpected status %d", e.StatusCode)
	}
	return e.Message
}

// Unwrap maps 422 replies to estimate.ErrInvalidConfiguration.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnprocessableEntity {
		return estimate.ErrInvalidConfiguration
	}
	return nil
}

// Validation returns the field errors as an *intake.ValidationError, or nil
// when the server reported none.
func (e *APIError) Validation() *intake.ValidationError {
	if len(e.FieldErrors) == 0 {
		return nil
	}
	return &intake.ValidationError{Fields: e.FieldErrors}
}

// Client calls the estimator HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for addr, which is either host:port or a full
// http(s) URL.
func New(addr string) (*Client, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("client: empty server address")
	}
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	u, err := url.Parse(addr)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("client: invalid server address %q", addr)
	}
	return &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{},
	}, nil
}

// BaseURL returns the normalized server URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Status fetches /v1/status.
func (c *Client) Status(ctx context.Context) (*server.Status, error) {
	var st server.Status
	if err := c.do(ctx, http.MethodGet, "/v1/status", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Catalog fetches /v1/catalog.
func (c *Client) Catalog(ctx context.Context) (*cli.CatalogReport, error) {
	var rep cli.CatalogReport
	if err := c.do(ctx, http.MethodGet, "/v1/catalog", nil, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// Estimate submits raw form values. Rejected input comes back as an *APIError
// whose Validation method returns the field messages.
func (c *Client) Estimate(ctx context.Context, raw intake.Raw) (*cli.Report, error) {
	var rep cli.Report
	if err := c.do(ctx, http.MethodPost, "/v1/estimate", raw, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("client: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	//nolint:gosec // URL is built from a user-supplied server address
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("client: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var er server.ErrorResponse
		if json.Unmarshal(data, &er) == nil {
			apiErr.Message = er.Error
			apiErr.FieldErrors = er.FieldErrors
			apiErr.RequestID = er.RequestID
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("client: parsing %s: %w", path, err)
	}
	return nil
}
