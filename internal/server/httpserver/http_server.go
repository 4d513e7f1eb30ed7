// Package httpserver wires the docsroute HTTP handlers into a server.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"git.home.luguber.info/inful/docsroute/internal/config"
	derrors "git.home.luguber.info/inful/docsroute/internal/foundation/errors"
	"git.home.luguber.info/inful/docsroute/internal/logfields"
	"git.home.luguber.info/inful/docsroute/internal/metrics"
	handlers "git.home.luguber.info/inful/docsroute/internal/server/handlers"
	smw "git.home.luguber.info/inful/docsroute/internal/server/middleware"
)

// Options configures additional server wiring that is runtime-specific.
type Options struct {
	// Recorder receives redirect, canonical and HTTP metrics. Nil disables them.
	Recorder metrics.Recorder
	// PrometheusHandler is mounted at /metrics when set.
	PrometheusHandler http.Handler
}

// Server serves redirects and the routing API.
type Server struct {
	cfg          config.ServerConfig
	opts         Options
	errorAdapter *derrors.HTTPErrorAdapter
	handler      http.Handler

	mu     sync.Mutex
	srv    *http.Server
	addr   net.Addr
	errors chan error
}

// New constructs a new HTTP server wiring instance.
func New(cfg config.ServerConfig, source handlers.SiteSource, opts Options) *Server {
	s := &Server{
		cfg:          cfg,
		opts:         opts,
		errorAdapter: derrors.NewHTTPErrorAdapter(slog.Default()),
		errors:       make(chan error, 1),
	}

	status := cfg.RedirectStatus
	if status == 0 {
		status = config.DefaultRedirectStatus
	}
	monitoring := handlers.NewMonitoringHandlers(source, time.Now())
	api := handlers.NewAPIHandlers(source, opts.Recorder)
	redirects := handlers.NewRedirectHandlers(source, status, opts.Recorder)

	instrument := func(name string, h http.HandlerFunc) http.Handler {
		return smw.Instrument(opts.Recorder, name, h)
	}

	mux := http.NewServeMux()
	mux.Handle("/healthz", instrument("healthz", monitoring.HandleHealthCheck))
	mux.Handle("/api/route", instrument("route", api.HandleRoute))
	mux.Handle("/api/catalog", instrument("catalog", api.HandleCatalog))
	mux.Handle("/api/search", instrument("search", api.HandleSearch))
	if opts.PrometheusHandler != nil {
		mux.Handle("/metrics", opts.PrometheusHandler)
	}
	mux.Handle("/", instrument("redirect", redirects.HandleRedirect))

	s.handler = smw.Chain(slog.Default(), s.errorAdapter)(mux)
	return s
}

// Handler returns the complete handler including middleware.
func (s *Server) Handler() http.Handler { return s.handler }

// Start binds the listen address and serves in the background. Bind errors
// are returned immediately; later serve errors are reported on Errors.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv != nil {
		return derrors.InternalError("http server already started").Build()
	}

	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Listen)
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryRuntime, "http startup failed").
			WithContext("listen", s.cfg.Listen).
			Build()
	}

	s.srv = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeoutDuration(),
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.addr = ln.Addr()
	s.startServerWithListener(s.srv, ln)

	slog.Info("HTTP server started", slog.String("addr", s.addr.String()))
	return nil
}

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Errors reports a serve failure after Start.
func (s *Server) Errors() <-chan error { return s.errors }

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	slog.Info("HTTP server stopped")
	return nil
}

func (s *Server) startServerWithListener(srv *http.Server, ln net.Listener) {
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", logfields.Error(err))
			select {
			case s.errors <- err:
			default:
			}
		}
	}()
}
