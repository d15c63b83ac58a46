// Package web serves the form-based UI over the library core. Every page is
// a plain HTML form; every mutation is a POST followed by a redirect.
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/pustakahq/pustakactl/internal/auth"
	"github.com/pustakahq/pustakactl/internal/cover"
	"github.com/pustakahq/pustakactl/internal/library"
)

const sessionCookie = "pustaka_session"

// Options configures a Server.
type Options struct {
	Library      *library.Library
	Covers       *cover.Store
	PasswordHash string
	SessionTTL   time.Duration
}

// Server owns the router, the session registry, and the login rate limiter.
type Server struct {
	lib          *library.Library
	covers       *cover.Store
	passwordHash string
	sessions     *auth.Sessions
	loginLimiter *rate.Limiter
}

// NewServer builds the web front end. The password hash must already be
// validated by the caller; an empty hash would let everyone in.
func NewServer(opts Options) *Server {
	return &Server{
		lib:          opts.Library,
		covers:       opts.Covers,
		passwordHash: opts.PasswordHash,
		sessions:     auth.NewSessions(opts.SessionTTL),
		loginLimiter: rate.NewLimiter(rate.Every(time.Minute), 5),
	}
}

// Router assembles the route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/login", s.handleLoginPage)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)

		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, "/books", http.StatusSeeOther)
		})

		r.Get("/books", s.handleBooks)
		r.Post("/books", s.handleAddBook)
		r.Post("/books/{id}/delete", s.handleDeleteBook)
		r.Get("/covers/{id}", s.handleCover)

		r.Get("/members", s.handleMembers)
		r.Post("/members", s.handleAddMember)

		r.Get("/loans", s.handleLoans)
		r.Post("/loans", s.handleBorrow)
		r.Post("/loans/{id}/return", s.handleReturn)

		r.Get("/audit", s.handleAudit)
	})

	return r
}

// ListenAndServe runs the server until it fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// requireSession sends visitors without a live session to the login page.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		cookie, err := req.Cookie(sessionCookie)
		if err != nil || !s.sessions.Valid(cookie.Value) {
			http.Redirect(w, req, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, req)
	})
}
