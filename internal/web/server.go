// Package web serves the hub dashboard on a local address. It renders the
// same cards as the terminal views and proxies every write to the backend
// through the shared hub.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/capstonehub/internal/dialog"
	"github.com/alexanderramin/capstonehub/internal/domain"
	"github.com/alexanderramin/capstonehub/internal/hub"
	"github.com/alexanderramin/capstonehub/internal/hubclient"
	"github.com/alexanderramin/capstonehub/internal/render"
	"github.com/alexanderramin/capstonehub/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Notices shown after a redirect, keyed by the "done" query value.
var notices = map[string]string{
	"saved":     "Saved",
	"deleted":   "Deleted",
	"login":     "Logged in",
	"logout":    "Logged out",
	"loginfail": "Login failed",
}

type Server struct {
	hub      *hub.Hub
	renderer *render.Renderer
	logger   *slog.Logger
}

// NewServer creates a dashboard for h. A nil logger uses slog.Default.
func NewServer(h *hub.Hub, r *render.Renderer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	h.Auth.OnChange(func(sess domain.Session) {
		logger.Info("dashboard_role", "role", string(sess.Role), "can_edit", sess.Permissions.CanEdit)
	})
	return &Server{hub: h, renderer: r, logger: logger}
}

// Handler returns the dashboard routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(secureHeaders)
	r.Use(sameOrigin)

	r.Get("/", s.handleHome)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(render.Static()))))

	r.Route("/s/{section}", func(r chi.Router) {
		r.Get("/", s.handleSection)
		r.Post("/", s.handleCreate)
		r.Post("/{id}", s.handleUpdate)
		r.Post("/{id}/delete", s.handleDelete)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := s.hub.Auth.Resolve(ctx)
	if err := s.hub.LoadAll(ctx); err != nil {
		s.logger.WarnContext(ctx, "dashboard_load_failed", "error", err)
	}
	page := render.Page{
		Session: session,
		Nav:     s.nav(""),
		Notice:  notices[r.URL.Query().Get("done")],
	}
	s.write(w, http.StatusOK, func() error { return s.renderer.HomePage(w, page) })
}

func (s *Server) handleSection(w http.ResponseWriter, r *http.Request) {
	sec, ok := s.section(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	session := s.hub.Auth.Resolve(ctx)
	s.refresh(ctx, sec)

	q := r.URL.Query()
	var form *render.FormView
	switch {
	case q.Get("add") != "" && session.Permissions.CanEdit:
		d := s.hub.NewDialog(ctx, sec, nil)
		if err := d.OpenAdd(); err == nil {
			form = formView(sec, d)
		}
	case q.Get("edit") != "" && session.Permissions.CanEdit:
		if id, err := strconv.Atoi(q.Get("edit")); err == nil {
			if d, err := s.hub.OpenEdit(ctx, sec, id, nil); err == nil {
				form = formView(sec, d)
			}
		}
	}

	page := s.sectionPage(ctx, sec, session, q.Get("done"), r)
	page.Form = form
	s.write(w, http.StatusOK, func() error { return s.renderer.SectionPage(w, page) })
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	sec, ok := s.section(w, r)
	if !ok {
		return
	}
	d := s.hub.NewDialog(r.Context(), sec, nil)
	if err := d.OpenAdd(); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	s.submit(w, r, sec, d)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	sec, ok := s.section(w, r)
	if !ok {
		return
	}
	id, ok := recordID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	if _, cached := s.hub.Get(sec, id); !cached {
		s.refresh(ctx, sec)
	}
	d, err := s.hub.OpenEdit(ctx, sec, id, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.submit(w, r, sec, d)
}

// submit copies the posted values into d and saves. Failures re-render the
// page with the dialog still open and the draft intact.
func (s *Server) submit(w http.ResponseWriter, r *http.Request, sec domain.Section, d hub.Dialog) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}
	for _, f := range d.Form().Fields {
		if vals, ok := r.PostForm[f.Name]; ok && len(vals) > 0 {
			_ = d.Set(f.Name, vals[0])
		}
	}

	ctx := r.Context()
	if _, err := d.Submit(ctx); err != nil {
		s.logger.InfoContext(ctx, "dashboard_save_failed", "section", string(sec), "error", err)
		session := s.hub.Auth.Resolve(ctx)
		page := s.sectionPage(ctx, sec, session, "", r)
		page.Form = formView(sec, d)
		s.write(w, statusFor(err), func() error { return s.renderer.SectionPage(w, page) })
		return
	}
	redirect(w, r, sec, "saved")
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	sec, ok := s.section(w, r)
	if !ok {
		return
	}
	id, ok := recordID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	if _, cached := s.hub.Get(sec, id); !cached {
		s.refresh(ctx, sec)
	}
	// The browser already asked for confirmation.
	if _, err := s.hub.Remove(ctx, sec, id, store.Confirmed); err != nil {
		s.logger.InfoContext(ctx, "dashboard_delete_failed", "section", string(sec), "id", id, "error", err)
		session := s.hub.Auth.Resolve(ctx)
		page := s.sectionPage(ctx, sec, session, "", r)
		page.Notice = deleteNotice(sec, err)
		s.write(w, statusFor(err), func() error { return s.renderer.SectionPage(w, page) })
		return
	}
	redirect(w, r, sec, "deleted")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}
	done := "login"
	if _, err := s.hub.Auth.Login(r.Context(), r.PostForm.Get("password")); err != nil {
		s.logger.InfoContext(r.Context(), "dashboard_login_failed", "error", err)
		done = "loginfail"
	}
	http.Redirect(w, r, "/?done="+done, http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if _, err := s.hub.Auth.Logout(r.Context()); err != nil {
		s.logger.InfoContext(r.Context(), "dashboard_logout_failed", "error", err)
	}
	http.Redirect(w, r, "/?done=logout", http.StatusSeeOther)
}

func (s *Server) section(w http.ResponseWriter, r *http.Request) (domain.Section, bool) {
	sec, err := domain.ParseSection(chi.URLParam(r, "section"))
	if err != nil {
		http.NotFound(w, r)
		return "", false
	}
	return sec, true
}

func recordID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// refresh re-lists sec. A failure leaves the cached items in place and the
// section marked failed.
func (s *Server) refresh(ctx context.Context, sec domain.Section) {
	if err := s.hub.List(ctx, sec); err != nil && !errors.Is(err, store.ErrStale) {
		s.logger.WarnContext(ctx, "dashboard_list_failed", "section", string(sec), "error", err)
	}
}

func (s *Server) write(w http.ResponseWriter, status int, fn func() error) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := fn(); err != nil {
		s.logger.Error("dashboard_render_failed", "error", err)
	}
}

func redirect(w http.ResponseWriter, r *http.Request, sec domain.Section, done string) {
	http.Redirect(w, r, "/s/"+string(sec)+"?done="+done, http.StatusSeeOther)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, dialog.ErrInvalid), errors.Is(err, hubclient.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, hubclient.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, dialog.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, hubclient.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func deleteNotice(sec domain.Section, err error) string {
	if errors.Is(err, hubclient.ErrUnauthorized) {
		return dialog.NoticeUnauthorized
	}
	return "Could not delete " + sec.Noun() + ", please retry"
}
