package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/alexanderramin/capstonehub/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Passwords accepted by FakeHub's login endpoint.
const (
	FakeAdminPassword  = "admin-pw"
	FakeViewerPassword = "viewer-pw"
)

const fakeSessionCookie = "session"

// RecordedRequest is a request FakeHub received.
type RecordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   map[string]any
}

type fakeCollection struct {
	nextID int
	items  []map[string]any
}

// FakeHub is an in-memory stand-in for the Capstone Hub backend: auth
// status/login/logout, the csrf token endpoint and CRUD for all six
// collections. Writes require an admin session and a matching csrf header.
type FakeHub struct {
	Server *httptest.Server

	mu          sync.Mutex
	csrfToken   string
	sessions    map[string]domain.Role
	collections map[string]*fakeCollection
	failures    map[string]int
	requests    []RecordedRequest
}

// NewFakeHub starts a FakeHub that is shut down when the test completes.
func NewFakeHub(t *testing.T) *FakeHub {
	t.Helper()
	f := &FakeHub{
		csrfToken:   uuid.NewString(),
		sessions:    map[string]domain.Role{},
		collections: map[string]*fakeCollection{},
		failures:    map[string]int{},
	}
	for _, sec := range domain.Sections {
		f.collections[sec.APIPath()] = &fakeCollection{nextID: 1}
	}
	f.Server = httptest.NewServer(f.routes())
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the fake backend's base URL.
func (f *FakeHub) URL() string { return f.Server.URL }

// CSRFToken is the token writes must carry.
func (f *FakeHub) CSRFToken() string { return f.csrfToken }

// Seed stores records in the collection for sec, assigning ids to records
// that have none.
func (f *FakeHub) Seed(t *testing.T, sec domain.Section, records ...any) {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	col := f.collections[sec.APIPath()]
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			t.Fatalf("seeding %s: %v", sec, err)
		}
		var obj map[string]any
		if err := json.Unmarshal(data, &obj); err != nil {
			t.Fatalf("seeding %s: %v", sec, err)
		}
		col.insert(obj)
	}
}

// Count returns how many records the collection for sec holds.
func (f *FakeHub) Count(sec domain.Section) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.collections[sec.APIPath()].items)
}

// Fail makes every request matching method and path answer with status
// until ClearFailures is called.
func (f *FakeHub) Fail(method, path string, status int) {
	f.mu.Lock()
	f.failures[method+" "+path] = status
	f.mu.Unlock()
}

func (f *FakeHub) ClearFailures() {
	f.mu.Lock()
	f.failures = map[string]int{}
	f.mu.Unlock()
}

// Requests returns the recorded requests matching method ("" matches all).
func (f *FakeHub) Requests(method string) []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []RecordedRequest
	for _, r := range f.requests {
		if method == "" || r.Method == method {
			out = append(out, r)
		}
	}
	return out
}

func (f *FakeHub) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(f.record)
	r.Use(f.injectFailures)

	r.Get("/api/csrf-token", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"csrf_token": f.csrfToken})
	})
	r.Route("/api/auth", func(r chi.Router) {
		r.Get("/status", f.handleStatus)
		r.Post("/login", f.handleLogin)
		r.Post("/logout", f.handleLogout)
	})
	for path := range f.collections {
		r.Route(path, func(r chi.Router) {
			r.Get("/", f.handleList(path))
			r.With(f.requireAdmin).Post("/", f.handleCreate(path))
			r.Get("/{id}", f.handleGet(path))
			r.With(f.requireAdmin).Put("/{id}", f.handleUpdate(path))
			r.With(f.requireAdmin).Delete("/{id}", f.handleDelete(path))
		})
	}
	return r
}

func (f *FakeHub) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if r.Body != nil && r.ContentLength != 0 {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}
		f.mu.Lock()
		f.requests = append(f.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   body,
		})
		f.mu.Unlock()
		r = r.WithContext(withBody(r.Context(), body))
		next.ServeHTTP(w, r)
	})
}

func (f *FakeHub) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		status, ok := f.failures[r.Method+" "+r.URL.Path]
		f.mu.Unlock()
		if ok {
			writeJSON(w, status, map[string]string{"message": fmt.Sprintf("forced %d", status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeHub) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-CSRFToken") != f.csrfToken {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "The CSRF token is missing."})
			return
		}
		if f.roleOf(r) != domain.RoleAdmin {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Admin access required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeHub) roleOf(r *http.Request) domain.Role {
	c, err := r.Cookie(fakeSessionCookie)
	if err != nil {
		return ""
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions[c.Value]
}

func (f *FakeHub) handleStatus(w http.ResponseWriter, r *http.Request) {
	role := f.roleOf(r)
	switch role {
	case domain.RoleAdmin:
		writeJSON(w, http.StatusOK, map[string]any{
			"authenticated": true,
			"role":          "admin",
			"permissions": domain.Permissions{
				CanEdit: true, CanDelete: true, CanExport: true,
				CanManageIntegrations: true, CanViewAnalytics: true,
			},
		})
	case domain.RoleViewer:
		writeJSON(w, http.StatusOK, map[string]any{
			"authenticated": true,
			"role":          "viewer",
			"permissions":   domain.ViewerPermissions(),
		})
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"authenticated": false,
			"role":          nil,
			"permissions":   domain.Permissions{},
		})
	}
}

func (f *FakeHub) handleLogin(w http.ResponseWriter, r *http.Request) {
	password, _ := bodyFrom(r.Context())["password"].(string)
	var role domain.Role
	switch password {
	case FakeAdminPassword:
		role = domain.RoleAdmin
	case FakeViewerPassword:
		role = domain.RoleViewer
	default:
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid password"})
		return
	}
	sid := uuid.NewString()
	f.mu.Lock()
	f.sessions[sid] = role
	f.mu.Unlock()
	http.SetCookie(w, &http.Cookie{Name: fakeSessionCookie, Value: sid, Path: "/", HttpOnly: true})
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "role": string(role)})
}

func (f *FakeHub) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(fakeSessionCookie); err == nil {
		f.mu.Lock()
		delete(f.sessions, c.Value)
		f.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: fakeSessionCookie, Value: "", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (f *FakeHub) handleList(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		items := append([]map[string]any{}, f.collections[path].items...)
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, items)
	}
}

func (f *FakeHub) handleGet(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		col := f.collections[path]
		idx := col.indexOf(chi.URLParam(r, "id"))
		if idx < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
			return
		}
		writeJSON(w, http.StatusOK, col.items[idx])
	}
}

func (f *FakeHub) handleCreate(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := bodyFrom(r.Context())
		if body == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "No data provided"})
			return
		}
		f.mu.Lock()
		obj := f.collections[path].insert(body)
		f.mu.Unlock()
		writeJSON(w, http.StatusCreated, obj)
	}
}

func (f *FakeHub) handleUpdate(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := bodyFrom(r.Context())
		if body == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "No data provided"})
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		col := f.collections[path]
		idx := col.indexOf(chi.URLParam(r, "id"))
		if idx < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
			return
		}
		for k, v := range body {
			if k != "id" {
				col.items[idx][k] = v
			}
		}
		writeJSON(w, http.StatusOK, col.items[idx])
	}
}

func (f *FakeHub) handleDelete(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		col := f.collections[path]
		idx := col.indexOf(chi.URLParam(r, "id"))
		if idx < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
			return
		}
		col.items = append(col.items[:idx], col.items[idx+1:]...)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (c *fakeCollection) insert(obj map[string]any) map[string]any {
	out := make(map[string]any, len(obj)+1)
	for k, v := range obj {
		out[k] = v
	}
	if id, ok := out["id"].(float64); ok && id > 0 {
		if int(id) >= c.nextID {
			c.nextID = int(id) + 1
		}
	} else {
		out["id"] = c.nextID
		c.nextID++
	}
	c.items = append(c.items, out)
	return out
}

func (c *fakeCollection) indexOf(raw string) int {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	for i, item := range c.items {
		switch v := item["id"].(type) {
		case int:
			if v == id {
				return i
			}
		case float64:
			if int(v) == id {
				return i
			}
		}
	}
	return -1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type bodyKey struct{}

func withBody(ctx context.Context, body map[string]any) context.Context {
	return context.WithValue(ctx, bodyKey{}, body)
}

func bodyFrom(ctx context.Context) map[string]any {
	body, _ := ctx.Value(bodyKey{}).(map[string]any)
	return body
}
