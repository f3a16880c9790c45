package server

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/dan/atelier/internal/config"
	"github.com/dan/atelier/internal/db"
	"github.com/dan/atelier/internal/session"
	"github.com/dan/atelier/internal/store"
	"github.com/dan/atelier/web"
)

// Server holds the HTTP server and its dependencies.
type Server struct {
	cfg        *config.Config
	db         *db.DB
	activity   *store.ActivityStore
	sessions   session.Store
	workspaces *workspaceRegistry
	render     *renderer
	router     *http.ServeMux
	http       *http.Server
}

// New creates a Server wired to the given database and session store. It
// sets up routes and middleware but does not start listening.
func New(cfg *config.Config, database *db.DB, sessions session.Store) (*Server, error) {
	mux := http.NewServeMux()

	rn, err := newRenderer()
	if err != nil {
		return nil, fmt.Errorf("init renderer: %w", err)
	}

	s := &Server{
		cfg:        cfg,
		db:         database,
		activity:   store.NewActivityStore(database.Conn),
		sessions:   sessions,
		workspaces: newWorkspaceRegistry(),
		render:     rn,
		router:     mux,
		http: &http.Server{
			Addr:         cfg.Addr,
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second, // generous for spreadsheet uploads
			IdleTimeout:  60 * time.Second,
		},
	}

	s.routes()
	s.staticFiles()

	// Custom 404 handler for unmatched routes.
	notFoundHandler := http.HandlerFunc(s.handleNotFound)
	handler := notFound(mux, notFoundHandler)

	// Wrap with middleware (outermost runs first).
	s.http.Handler = logging(recovery(handler))

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start begins listening. It blocks until the server is shut down.
func (s *Server) Start() error {
	log.Printf("server listening on %s, backend %s", s.http.Addr, s.cfg.BackendURL)
	return s.http.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// staticFiles registers the handler for serving embedded static assets.
func (s *Server) staticFiles() {
	sub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		log.Fatalf("static fs: %v", err)
	}
	s.router.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(sub))))
}

// flash extracts the one-shot notification from redirect query params.
func flash(r *http.Request) (string, string) {
	q := r.URL.Query()
	return q.Get("flash"), q.Get("flash_type")
}
