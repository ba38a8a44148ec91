// It defines the API server, sets up the routes (endpoints)
// using chi, and links them to the handler functions.

package api

import (
	"database/sql"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cytoscape/cyweb/internal/assets"
	"github.com/cytoscape/cyweb/internal/core"
	"github.com/cytoscape/cyweb/internal/store"
)

// Server holds the dependencies for our HTTP handlers.
type Server struct {
	app       *core.App
	db        *sql.DB
	store     *store.Store
	templates *template.Template
}

// Store returns the store instance.
func (s *Server) Store() *store.Store {
	return s.store
}

// NewServer creates a new Server instance.
func NewServer(app *core.App) *Server {
	tmpl, err := template.ParseFS(assets.WebFS, "web/*.html")
	if err != nil {
		log.Fatalf("Failed to parse embedded templates: %v", err)
	}
	return &Server{
		app:       app,
		db:        app.DB,
		store:     store.New(app.DB),
		templates: tmpl,
	}
}

// Router sets up and returns the main router for the application.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)    // Logs requests to the console
	r.Use(middleware.Recoverer) // Recovers from panics
	r.Use(middleware.Timeout(60 * time.Second))

	// The submission form, both modes. Edit mode additionally requires a
	// staff session, enforced inside the handlers because the mode is only
	// known after inspecting the request.
	r.Get("/plugins/submit", s.handleSubmitForm)
	r.Post("/plugins/submit", s.handleSubmitPost)

	// Public plugin directory and file downloads.
	r.Get("/plugins", s.handlePluginsPage)
	r.Get("/api/plugins", s.handleListPlugins)
	r.Get("/files/{fileUUID}", s.handleDownloadFile)

	// Staff authentication.
	r.Post("/api/users/login", s.handleLogin)
	r.Group(func(r chi.Router) {
		r.Use(s.AuthMiddleware)
		r.Post("/api/users/logout", s.handleLogout)
		r.Get("/api/users/me", s.handleGetMe)
	})

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		if err := s.db.Ping(); err != nil {
			RespondWithError(w, http.StatusServiceUnavailable, "Database connection failed")
			return
		}
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/plugins", http.StatusFound)
	})

	return r
}

// renderPage executes one of the embedded page templates.
func (s *Server) renderPage(w http.ResponseWriter, code int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}

// renderError shows the generic error page shell with the given message.
func (s *Server) renderError(w http.ResponseWriter, code int, message string) {
	s.renderPage(w, code, "error.html", map[string]string{
		"Title":   "Error",
		"Message": message,
	})
}
