package hubclient

import (
	"context"
	"fmt"
	"net/http"
	"sync"
)

// CSRFHeader is the anti-forgery header the backend checks on writes.
const CSRFHeader = "X-CSRFToken"

// TokenSource supplies the anti-forgery token for mutating requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// endpointToken fetches the token once per session and caches it until
// Reset is called (after login or logout the server issues a new one).
type endpointToken struct {
	client *Client
	path   string

	mu    sync.Mutex
	token string
}

type csrfResponse struct {
	CSRFToken string `json:"csrf_token"`
}

func (t *endpointToken) Token(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.token != "" {
		return t.token, nil
	}

	var resp csrfResponse
	if _, err := t.client.send(ctx, http.MethodGet, t.path, nil, &resp, nil); err != nil {
		return "", fmt.Errorf("fetching csrf token: %w", err)
	}
	if resp.CSRFToken == "" {
		return "", fmt.Errorf("fetching csrf token: %w", ErrInvalidResponse)
	}
	t.token = resp.CSRFToken
	return t.token, nil
}

func (t *endpointToken) Reset() {
	t.mu.Lock()
	t.token = ""
	t.mu.Unlock()
}
