// Package server exposes the chart pipeline over HTTP.
//
// The service renders submitted definitions on demand (POST /api/render)
// and manages saved charts (POST/GET/DELETE /api/charts) that can be
// re-rendered by ID. All rendering goes through a shared [pipeline.Runner],
// so repeat renders of unchanged charts are served from its artifact cache.
//
// Definitions arriving over the API run with [pipeline.Options].RemoteOnly
// set: file references in submitted definitions are rejected, because the
// service's filesystem is not the client's.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kritika1265/chartkit/pkg/pipeline"
	"github.com/kritika1265/chartkit/pkg/store"
)

// DefaultAddr is the listen address used when Config.Addr is empty.
const DefaultAddr = ":8080"

const shutdownTimeout = 10 * time.Second

// Config configures a Server. Zero-value fields fall back to defaults:
// in-memory store, uncached runner, default logger, [DefaultAddr].
type Config struct {
	// Addr is the listen address, host:port.
	Addr string

	// Store persists saved charts.
	Store store.Store

	// Runner executes render requests.
	Runner *pipeline.Runner

	// Logger receives request and lifecycle logs.
	Logger *log.Logger
}

// Server serves the chart API.
type Server struct {
	addr   string
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a Server from cfg, filling in defaults for unset fields.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	return &Server{
		addr:   cfg.Addr,
		store:  cfg.Store,
		runner: cfg.Runner,
		logger: cfg.Logger,
	}
}

// Handler returns the routed HTTP handler. It is exported so tests can
// serve it with httptest without binding a port.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/render", s.handleRender)

		r.Route("/charts", func(r chi.Router) {
			r.Post("/", s.handleCreateChart)
			r.Get("/", s.handleListCharts)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetChart)
				r.Delete("/", s.handleDeleteChart)
				r.Get("/render", s.handleRenderChart)
			})
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully, draining in-flight requests for up to shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("server listening", "addr", s.addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
