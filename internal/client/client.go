// Package client is the HTTP wrapper over the remote File Service API.
// Every request carries a cancellation token and a deadline; failures are
// logged here once and returned to the caller classified as Transport,
// TimedOut or Canceled.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"nexus/internal/errors"
	"nexus/internal/log"
)

// DefaultTimeout bounds a request when no timeout option is given.
const DefaultTimeout = 30 * time.Second

// Client talks JSON over HTTP to the File Service.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	timeout time.Duration
	tracker *Tracker
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request deadline. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTracker shares a request tracker between clients.
func WithTracker(t *Tracker) Option {
	return func(c *Client) { c.tracker = t }
}

// New creates a client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	raw := strings.TrimSpace(baseURL)
	if raw == "" {
		return nil, errors.NewConfigError("file service url is required", "server.url", errors.InvalidConfig, nil)
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.NewConfigError("invalid file service url", "server.url", errors.InvalidConfig, err)
	}

	c := &Client{
		baseURL: u,
		http: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		timeout: DefaultTimeout,
		tracker: NewTracker(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Tracker returns the tracker holding this client's outstanding requests.
func (c *Client) Tracker() *Tracker {
	return c.tracker
}

// ListFiles returns the names in the service's file listing.
func (c *Client) ListFiles(ctx context.Context) ([]string, error) {
	var out filesResponse
	if err := c.do(ctx, http.MethodGet, "/api/files", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Files, nil
}

// View returns the content of filename.
func (c *Client) View(ctx context.Context, filename string) (string, error) {
	var out viewResponse
	q := url.Values{"file": {filename}}
	if err := c.do(ctx, http.MethodGet, "/api/view", q, nil, &out); err != nil {
		return "", err
	}
	return out.Content, nil
}

// Create creates or replaces a file.
func (c *Client) Create(ctx context.Context, req WriteRequest) error {
	return c.do(ctx, http.MethodPost, "/api/create", nil, req, &ackResponse{})
}

// Edit overwrites an existing file.
func (c *Client) Edit(ctx context.Context, req WriteRequest) error {
	return c.do(ctx, http.MethodPost, "/api/edit", nil, req, &ackResponse{})
}

// Delete removes a file.
func (c *Client) Delete(ctx context.Context, req DeleteRequest) error {
	return c.do(ctx, http.MethodPost, "/api/delete", nil, req, &ackResponse{})
}

// Exists reports whether filename exists under location.
func (c *Client) Exists(ctx context.Context, filename, location string) (bool, error) {
	var out existsResponse
	q := url.Values{"file": {filename}, "location": {location}}
	if err := c.do(ctx, http.MethodGet, "/api/exists", q, nil, &out); err != nil {
		return false, err
	}
	return out.Exists, nil
}

// Execute asks the service to compile and/or run a file. A reply with
// success=false is returned as a result, not an error.
func (c *Client) Execute(ctx context.Context, req ExecuteRequest) (ExecutionResult, error) {
	var out ExecutionResult
	if err := c.do(ctx, http.MethodPost, "/api/execute", nil, req, &out); err != nil {
		return ExecutionResult{}, err
	}
	return out, nil
}

// Browse lists the subdirectories of p.
func (c *Client) Browse(ctx context.Context, p string) (DirectoryListing, error) {
	var out DirectoryListing
	q := url.Values{"path": {p}}
	if err := c.do(ctx, http.MethodGet, "/api/browse", q, nil, &out); err != nil {
		return DirectoryListing{}, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body interface{}, out interface{}) error {
	ctx, tok, done := c.tracker.begin(ctx, endpoint, c.timeout)
	defer done()

	reqURL := *c.baseURL
	reqURL.Path = path.Join("/", c.baseURL.Path, endpoint)
	if query != nil {
		reqURL.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "encode %s request", endpoint)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return c.fail(tok, errors.NewRequestError("cannot build request", endpoint, 0, errors.Transport, err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log.LogWithFields(log.F("endpoint", endpoint), log.F("token", string(tok))).Debugf("%s %s", method, reqURL.String())

	res, err := c.http.Do(req)
	if err != nil {
		return c.fail(tok, classify(ctx, endpoint, err))
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return c.fail(tok, readAPIError(res, endpoint))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil && err != io.EOF {
		if ctx.Err() != nil {
			return c.fail(tok, classify(ctx, endpoint, err))
		}
		return c.fail(tok, errors.NewRequestError("invalid response", endpoint, res.StatusCode, errors.Transport, err))
	}
	return nil
}

func (c *Client) fail(tok Token, err error) error {
	log.LogWithError(err).With(log.F("token", string(tok))).Error("file service request failed")
	return err
}

func classify(ctx context.Context, endpoint string, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return errors.NewRequestError("request timed out", endpoint, 0, errors.TimedOut, err)
	case errors.Is(ctx.Err(), context.Canceled):
		return errors.NewRequestError("request canceled", endpoint, 0, errors.Canceled, err)
	default:
		return errors.NewRequestError("request failed", endpoint, 0, errors.Transport, err)
	}
}

func readAPIError(res *http.Response, endpoint string) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 64*1024))
	msg := strings.TrimSpace(string(body))

	var apiErr errorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
		msg = apiErr.Error
	}
	if msg == "" {
		msg = http.StatusText(res.StatusCode)
	}
	return errors.NewRequestError(msg, endpoint, res.StatusCode, errors.Transport, nil)
}
