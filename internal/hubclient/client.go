package hubclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// Client is the JSON transport to the Capstone Hub backend. Session cookies
// are kept in a jar scoped to the backend origin, so credentials are only
// ever sent back to the same origin.
type Client struct {
	cfg      Config
	base     *url.URL
	origin   string
	http     *http.Client
	tokens   TokenSource
	observer Observer
}

// Option customizes a Client.
type Option func(*Client)

// WithObserver sets the call observer. nil keeps the no-op observer.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithTokenSource overrides how the anti-forgery token is obtained.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		if ts != nil {
			c.tokens = ts
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client. A cookie jar is
// attached if the given client has none.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h == nil {
			return
		}
		if h.Jar == nil {
			h.Jar = c.http.Jar
		}
		c.http = h
	}
}

// New creates a Client for cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base_url %q", cfg.BaseURL)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	c := &Client{
		cfg:    cfg,
		base:   base,
		origin: base.Scheme + "://" + base.Host,
		http: &http.Client{
			Jar: jar,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: NoopObserver{},
	}
	if cfg.CSRFToken != "" {
		c.tokens = StaticToken(cfg.CSRFToken)
	} else {
		c.tokens = &endpointToken{client: c, path: cfg.CSRFPath}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the client's configuration.
func (c *Client) Config() Config { return c.cfg }

// ResetSession drops the cached anti-forgery token. Call it after login or
// logout, when the server rotates the session.
func (c *Client) ResetSession() {
	if et, ok := c.tokens.(*endpointToken); ok {
		et.Reset()
	}
}

// Do sends a JSON request and decodes a 2xx body into out (when out is
// non-nil). Mutating methods carry the anti-forgery header. The returned
// status is 0 when no response was received.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) (int, error) {
	var header http.Header
	if isMutating(method) {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return 0, err
		}
		header = http.Header{}
		header.Set(CSRFHeader, token)
	}
	return c.send(ctx, method, path, body, out, header)
}

func (c *Client) send(ctx context.Context, method, path string, body, out any, header http.Header) (int, error) {
	start := time.Now()
	reqID := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	status, err := c.roundTrip(ctx, reqID, method, path, body, out, header)

	c.observer.OnCallComplete(ctx, CallEvent{
		RequestID: reqID,
		Method:    method,
		Path:      path,
		Status:    status,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	return status, err
}

func (c *Client) roundTrip(ctx context.Context, reqID, method, path string, body, out any, header http.Header) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(path).String(), reader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if isMutating(method) {
		req.Header.Set("Origin", c.origin)
		req.Header.Set("Referer", c.origin+"/")
	}
	for k, vals := range header {
		req.Header[k] = vals
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, transportError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, transportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &StatusError{
			Method:  method,
			Path:    path,
			Code:    resp.StatusCode,
			Message: serverMessage(data),
		}
	}

	if out == nil {
		return resp.StatusCode, nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return resp.StatusCode, fmt.Errorf("%w: empty body from %s %s", ErrInvalidResponse, method, path)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: decoding %s %s: %v", ErrInvalidResponse, method, path, err)
	}
	return resp.StatusCode, nil
}

func transportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// serverMessage pulls a human-readable message out of an error body.
func serverMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	msg := strings.TrimSpace(string(data))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	if strings.HasPrefix(msg, "<") {
		return ""
	}
	return msg
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
