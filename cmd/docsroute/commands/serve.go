package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/docsroute/internal/config"
	"git.home.luguber.info/inful/docsroute/internal/logfields"
	"git.home.luguber.info/inful/docsroute/internal/metrics"
	"git.home.luguber.info/inful/docsroute/internal/retry"
	"git.home.luguber.info/inful/docsroute/internal/server/httpserver"
	"git.home.luguber.info/inful/docsroute/internal/site"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Listen string `short:"l" help:"Listen address, overriding server.listen"`
	Watch  bool   `short:"w" help:"Reload when the configuration or descriptor files change, even if reload.watch is off"`
}

func (c *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	if c.Listen != "" {
		cfg.Server.Listen = c.Listen
	}
	if c.Watch {
		cfg.Reload.Watch = true
	}

	load := site.StaticConfig(cfg)
	if cfg.Path() != "" {
		load = site.FileConfig(cfg.Path())
	}
	return RunServe(cfg, load)
}

// RunServe serves until SIGINT or SIGTERM.
func RunServe(cfg *config.Config, load site.LoadFunc) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	initial, err := site.Init(cfg)
	if err != nil {
		return err
	}

	var (
		recorder metrics.Recorder = metrics.NoopRecorder{}
		opts     httpserver.Options
	)
	if cfg.Server.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		recorder = metrics.NewPrometheusRecorder(reg)
		opts.Recorder = recorder
		opts.PrometheusHandler = metrics.HTTPHandler(reg)
	}

	holder := site.NewHolder(initial, load).WithRecorder(recorder)

	if cfg.Reload.Watch {
		w, err := site.NewWatcher(holder, cfg.Reload.DebounceDuration())
		if err != nil {
			return err
		}
		w.WithRetry(retry.FromConfig(cfg.Reload.Retry))
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer func() {
			if err := w.Stop(); err != nil {
				slog.Warn("Failed to stop watcher", logfields.Error(err))
			}
		}()
	}

	if interval := cfg.Reload.IntervalDuration(); interval > 0 {
		sched, err := site.NewReloadScheduler(holder)
		if err != nil {
			return err
		}
		if _, err := sched.Schedule(ctx, interval); err != nil {
			_ = sched.Stop()
			return err
		}
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				slog.Warn("Failed to stop reload scheduler", logfields.Error(err))
			}
		}()
	}

	srv := httpserver.New(cfg.Server, holder, opts)
	if err := srv.Start(ctx); err != nil {
		return err
	}

	slog.Info("Serving, waiting for shutdown signal...")
	var serveErr error
	select {
	case serveErr = <-srv.Errors():
	case <-ctx.Done():
		slog.Info("Shutdown signal received, stopping server...")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
	defer stopCancel()
	if err := srv.Stop(stopCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	if serveErr != nil {
		return fmt.Errorf("server error: %w", serveErr)
	}
	slog.Info("Server stopped successfully")
	return nil
}
