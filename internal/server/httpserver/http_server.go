// Package httpserver wires the decision API handlers into an HTTP server.
package httpserver

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/rendergate/internal/config"
	"git.home.luguber.info/inful/rendergate/internal/foundation/errors"
	"git.home.luguber.info/inful/rendergate/internal/metrics"
	"git.home.luguber.info/inful/rendergate/internal/server/handlers"
	smw "git.home.luguber.info/inful/rendergate/internal/server/middleware"
)

// Options carries the server's collaborators.
type Options struct {
	Resolver  handlers.Resolver
	Announcer handlers.Announcer // nil disables publishing
	Store     handlers.Pinger
	Registry  *prom.Registry // nil disables /metrics
}

// Server serves the decision API.
type Server struct {
	cfg          *config.Config
	opts         Options
	errorAdapter *errors.HTTPErrorAdapter

	decisionHandlers   *handlers.DecisionHandlers
	monitoringHandlers *handlers.MonitoringHandlers

	mchain func(http.Handler) http.Handler
}

// New constructs a new HTTP server wiring instance.
func New(cfg *config.Config, opts Options) *Server {
	s := &Server{
		cfg:          cfg,
		opts:         opts,
		errorAdapter: errors.NewHTTPErrorAdapter(slog.Default()),
	}
	s.decisionHandlers = handlers.NewDecisionHandlers(opts.Resolver, opts.Announcer)
	s.monitoringHandlers = handlers.NewMonitoringHandlers(opts.Store, time.Now())
	s.mchain = smw.Chain(slog.Default(), s.errorAdapter)
	return s
}

// Handler returns the routed and middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/stages/{slug}/decision", s.decisionHandlers.HandleDecision)
	mux.HandleFunc("GET /v1/stages/{slug}/markdown-keys", s.decisionHandlers.HandleMarkdownKeys)
	mux.HandleFunc("GET /healthz", s.monitoringHandlers.HandleHealthCheck)
	if s.cfg.Metrics.Enabled && s.opts.Registry != nil {
		mux.Handle("GET "+s.cfg.Metrics.Path, metrics.HTTPHandler(s.opts.Registry))
	}
	return s.mchain(mux)
}

// Run binds the configured address and serves until ctx is cancelled, then
// shuts down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.cfg.HTTP.Addr)
	if err != nil {
		return errors.WrapError(err, errors.CategoryTransport, "failed to bind HTTP listener").
			WithContext("addr", s.cfg.HTTP.Addr).Build()
	}
	return s.Serve(ctx, ln)
}

// Serve serves on an already bound listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.HTTP.ReadHeaderTimeoutDuration(),
		// requests outlive ctx so Shutdown can drain them
		BaseContext: func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", ln.Addr().String())
		serveErr <- srv.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.WrapError(err, errors.CategoryTransport, "HTTP server failed").Build()
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.HTTP.ShutdownTimeoutDuration())
	defer cancel()
	slog.Info("HTTP server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.WrapError(err, errors.CategoryTransport, "HTTP server shutdown failed").Build()
	}
	return nil
}
