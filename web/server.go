// Package web serves the Galaxy PDF page over HTTP.
//
// Every load of the page opens a session. The page script posts user
// interactions to routes under /s/{sid} and swaps in the HTML fragment each
// route returns. Feedback messages are pushed over a websocket.
package web

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/lvillar/galaxypdf/content"
	"github.com/lvillar/galaxypdf/seo"
	"github.com/lvillar/galaxypdf/session"
)

// DefaultMaxUploadBytes limits upload request bodies when Config leaves it unset.
const DefaultMaxUploadBytes = 64 << 20

// Config holds server configuration.
type Config struct {
	Addr           string
	MaxUploadBytes int64
	AllowAll       bool // allow all CORS origins (dev mode)
}

// Server is the HTTP front end of the tool.
type Server struct {
	cfg        Config
	store      *session.Store
	catalog    *content.Catalog
	log        logrus.FieldLogger
	tmpl       *template.Template
	schema     template.JS
	router     chi.Router
	httpServer *http.Server
}

// New creates a server rendering cat and keeping page state in store.
func New(cfg Config, store *session.Store, cat *content.Catalog, log logrus.FieldLogger) (*Server, error) {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	schema, err := seo.JSONLD(cat)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:     cfg,
		store:   store,
		catalog: cat,
		log:     log,
		tmpl:    tmpl,
		schema:  schema,
	}
	s.router = s.buildRouter()
	return s, nil
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Download"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/static/*", http.StripPrefix("/static/", staticHandler()))
	r.Get("/", s.handlePage)

	r.Route("/s/{sid}", func(r chi.Router) {
		r.Use(s.withSession)

		r.Post("/mode", s.handleMode)
		r.Post("/merge/files", s.handleAddMergeFiles)
		r.Delete("/merge/files/{fid}", s.handleRemoveMergeFile)
		r.Post("/merge/move", s.handleMove)
		r.Post("/merge/drag/{step}", s.handleDrag)
		r.Post("/merge", s.handleMerge)

		r.Post("/split/file", s.handleSplitFile)
		r.Post("/split/options", s.handleSplitOptions)
		r.Post("/split", s.handleSplit)

		r.Post("/modal/menu", s.handleOpenMenu)
		r.Post("/modal/{id}", s.handleOpenModal)
		r.Delete("/modal", s.handleCloseModal)
		r.Post("/article/toggle", s.handleToggleArticle)

		r.Get("/tool", s.handleTool)
		r.Get("/modal", s.handleModal)
		r.Get("/article", s.handleArticle)
		r.Get("/download", s.handleDownload)
		r.Get("/events", s.handleEvents)
	})

	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Start begins listening on the configured address.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.WithField("addr", s.cfg.Addr).Info("galaxypdf listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web: serving on %s: %w", s.cfg.Addr, err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
