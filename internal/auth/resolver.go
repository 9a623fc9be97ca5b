package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/alexanderramin/capstonehub/internal/domain"
	"github.com/alexanderramin/capstonehub/internal/repository"
)

// Hint keys written to durable storage after each resolution. They are
// informational only and never read back as authority.
const (
	HintRoleKey        = "userRole"
	HintPermissionsKey = "userPermissions"
)

// Transport is the subset of hubclient.Client the resolver needs.
type Transport interface {
	Do(ctx context.Context, method, path string, body, out any) (int, error)
}

// sessionResetter is implemented by transports that cache per-session
// state (the csrf token) which must be dropped on login and logout.
type sessionResetter interface {
	ResetSession()
}

// Listener is notified with every freshly resolved session.
type Listener func(domain.Session)

// Resolver establishes the caller's role from the server's auth status
// endpoint. Anything short of an explicit admin answer yields the viewer
// session.
type Resolver struct {
	transport Transport
	hints     repository.KVRepo
	authPath  string
	logger    *slog.Logger

	mu        sync.Mutex
	cached    *domain.Session
	listeners []Listener
	// gen advances on every Invalidate; a fetch started under an older gen
	// is not cached.
	gen uint64
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithHints stores the last resolved role in kv.
func WithHints(kv repository.KVRepo) Option {
	return func(r *Resolver) { r.hints = kv }
}

// WithLogger sets the logger used for non-fatal problems.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver creates a Resolver that queries authPath ("/api/auth").
func NewResolver(t Transport, authPath string, opts ...Option) *Resolver {
	r := &Resolver{
		transport: t,
		authPath:  authPath,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnChange registers a listener for resolved sessions.
func (r *Resolver) OnChange(l Listener) {
	r.mu.Lock()
	r.listeners = append(r.listeners, l)
	r.mu.Unlock()
}

type statusResponse struct {
	Authenticated bool                `json:"authenticated"`
	Role          *string             `json:"role"`
	Permissions   *domain.Permissions `json:"permissions"`
}

// Resolve returns the cached session, querying the server on first use.
// It never fails; failures resolve to the viewer session.
func (r *Resolver) Resolve(ctx context.Context) domain.Session {
	r.mu.Lock()
	if r.cached != nil {
		s := *r.cached
		r.mu.Unlock()
		return s
	}
	gen := r.gen
	r.mu.Unlock()

	s := r.fetch(ctx)

	r.mu.Lock()
	if gen != r.gen {
		// Login or logout happened while the status call was in flight.
		r.mu.Unlock()
		return r.Resolve(ctx)
	}
	r.cached = &s
	listeners := append([]Listener(nil), r.listeners...)
	r.mu.Unlock()

	for _, l := range listeners {
		l(s)
	}
	r.writeHint(ctx, s)
	return s
}

func (r *Resolver) fetch(ctx context.Context) domain.Session {
	var resp statusResponse
	if _, err := r.transport.Do(ctx, http.MethodGet, r.authPath+"/status", nil, &resp); err != nil {
		r.logger.WarnContext(ctx, "auth_status_failed", "error", err)
		return domain.ViewerSession()
	}
	if !resp.Authenticated || resp.Role == nil {
		return domain.ViewerSession()
	}
	switch domain.Role(*resp.Role) {
	case domain.RoleAdmin:
		if resp.Permissions == nil {
			r.logger.WarnContext(ctx, "auth_status_malformed", "reason", "admin without permissions")
			return domain.ViewerSession()
		}
		return domain.Session{Role: domain.RoleAdmin, Permissions: *resp.Permissions}
	case domain.RoleViewer:
		return domain.ViewerSession()
	default:
		r.logger.WarnContext(ctx, "auth_status_unknown_role", "role", *resp.Role)
		return domain.ViewerSession()
	}
}

// Invalidate drops the cached session so the next Resolve asks the server.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	r.cached = nil
	r.gen++
	r.mu.Unlock()
}

// Login forwards password to the server and re-resolves the role. The
// password is never inspected locally.
func (r *Resolver) Login(ctx context.Context, password string) (domain.Session, error) {
	body := map[string]string{"password": password}
	if _, err := r.transport.Do(ctx, http.MethodPost, r.authPath+"/login", body, nil); err != nil {
		return r.Resolve(ctx), fmt.Errorf("login: %w", err)
	}
	r.resetSession()
	return r.Resolve(ctx), nil
}

// Logout ends the server session and re-resolves the role. The cache is
// dropped even when the logout request fails.
func (r *Resolver) Logout(ctx context.Context) (domain.Session, error) {
	_, err := r.transport.Do(ctx, http.MethodPost, r.authPath+"/logout", nil, nil)
	r.resetSession()
	s := r.Resolve(ctx)
	if err != nil {
		return s, fmt.Errorf("logout: %w", err)
	}
	return s, nil
}

func (r *Resolver) resetSession() {
	if rs, ok := r.transport.(sessionResetter); ok {
		rs.ResetSession()
	}
	r.Invalidate()
}

func (r *Resolver) writeHint(ctx context.Context, s domain.Session) {
	if r.hints == nil {
		return
	}
	perms, err := json.Marshal(s.Permissions)
	if err != nil {
		return
	}
	if err := r.hints.Set(ctx, HintRoleKey, string(s.Role)); err != nil {
		r.logger.WarnContext(ctx, "role_hint_write_failed", "error", err)
		return
	}
	if err := r.hints.Set(ctx, HintPermissionsKey, string(perms)); err != nil {
		r.logger.WarnContext(ctx, "role_hint_write_failed", "error", err)
	}
}
