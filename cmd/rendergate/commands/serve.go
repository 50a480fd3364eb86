package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/rendergate/internal/daemon"
	"git.home.luguber.info/inful/rendergate/internal/metrics"
	"git.home.luguber.info/inful/rendergate/internal/publish"
	"git.home.luguber.info/inful/rendergate/internal/render"
	"git.home.luguber.info/inful/rendergate/internal/retry"
	"git.home.luguber.info/inful/rendergate/internal/server/handlers"
	"git.home.luguber.info/inful/rendergate/internal/server/httpserver"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides http.addr)"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.HTTP.Addr = s.Addr
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var (
		registry *prom.Registry
		recorder metrics.Recorder = metrics.NoopRecorder{}
	)
	if cfg.Metrics.Enabled {
		registry = prom.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	var announcer handlers.Announcer
	if cfg.Publish.Enabled {
		pub, err := publish.New(ctx, cfg.Publish)
		if err != nil {
			return err
		}
		reporter := publish.NewReporter(pub, recorder, publish.WithRetryPolicy(retry.FromConfig(cfg.Publish.Retry)))
		defer func() { _ = reporter.Close() }()
		announcer = reporter
	}

	if cfg.Store.WatchFixture {
		watcher, err := daemon.NewFixtureWatcher(cfg.Store.Fixture, store, recorder)
		if err != nil {
			return err
		}
		if err := watcher.Start(ctx); err != nil {
			_ = watcher.Stop()
			return err
		}
		defer func() { _ = watcher.Stop() }()
	}

	if interval := cfg.Health.ProbeIntervalDuration(); interval > 0 {
		scheduler, err := daemon.NewScheduler()
		if err != nil {
			return err
		}
		if _, err := scheduler.ScheduleStoreProbe(ctx, interval, store, recorder); err != nil {
			return err
		}
		scheduler.Start()
		defer func() { _ = scheduler.Stop() }()
	}

	resolver := render.NewResolver(store, render.WithLogger(slog.Default()), render.WithRecorder(recorder))
	srv := httpserver.New(cfg, httpserver.Options{
		Resolver:  resolver,
		Announcer: announcer,
		Store:     store,
		Registry:  registry,
	})

	slog.Info("Starting rendergate server",
		"addr", cfg.HTTP.Addr,
		"store", cfg.Store.Path,
		"metrics", cfg.Metrics.Enabled,
		"publish", cfg.Publish.Enabled)
	return srv.Run(ctx)
}
