// Package server exposes rosters and seating charts over HTTP.
//
// # Routes
//
//	GET    /healthz
//	POST   /api/rosters/parse          CSV or JSON roster -> members
//	POST   /api/rosters/random         {count, parts, seed} -> members
//	POST   /api/dimensions             {members, options} -> grid size
//	GET    /api/charts                 stored chart summaries
//	POST   /api/charts                 {members, options} -> planned chart
//	POST   /api/charts/import          {token} -> stored chart
//	GET    /api/charts/{id}
//	PUT    /api/charts/{id}            replace with an edited chart
//	DELETE /api/charts/{id}
//	POST   /api/charts/{id}/swap       {a, b} seat refs
//	GET    /api/charts/{id}/render     ?format=svg|png|dot|txt|json
//	GET    /api/charts/{id}/token
//
// Errors are returned as {"error", "code"} with a status derived from the
// error code.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/seatchart/pkg/pipeline"
	"github.com/matzehuels/seatchart/pkg/store"
)

// Options configures a Server.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxBodyBytes int64 // request body limit; zero means 1 MiB

	// Defaults fill in chart options a request leaves unset: Layout,
	// Strict, Staggered, Flipped and Curved.
	Defaults pipeline.Options

	Logger *log.Logger
}

// Server handles HTTP requests. It is safe for concurrent use.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	opts   Options
	logger *log.Logger
}

// New creates a server that plans with runner and keeps charts in st.
func New(runner *pipeline.Runner, st store.Store, opts Options) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, opts: opts, logger: logger}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/rosters/parse", s.handleParseRoster)
		r.Post("/rosters/random", s.handleRandomRoster)
		r.Post("/dimensions", s.handleDimensions)

		r.Route("/charts", func(r chi.Router) {
			r.Get("/", s.handleListCharts)
			r.Post("/", s.handleCreateChart)
			r.Post("/import", s.handleImportChart)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetChart)
				r.Put("/", s.handlePutChart)
				r.Delete("/", s.handleDeleteChart)
				r.Post("/swap", s.handleSwap)
				r.Get("/render", s.handleRender)
				r.Get("/token", s.handleToken)
			})
		})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.opts.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// withDefaults fills unset chart options from the server defaults.
func (s *Server) withDefaults(opts pipeline.Options) pipeline.Options {
	d := s.opts.Defaults
	if opts.Layout == "" {
		opts.Layout = d.Layout
	}
	opts.Strict = opts.Strict || d.Strict
	opts.Staggered = opts.Staggered || d.Staggered
	opts.Flipped = opts.Flipped || d.Flipped
	opts.Curved = opts.Curved || d.Curved
	return opts
}
