package site

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"git.home.luguber.info/inful/docsroute/internal/config"
	"git.home.luguber.info/inful/docsroute/internal/logfields"
	"git.home.luguber.info/inful/docsroute/internal/metrics"
)

// LoadFunc produces the configuration a reload builds from.
type LoadFunc func() (*config.Config, error)

// StaticConfig returns a LoadFunc that always yields cfg. Reloads then only
// pick up descriptor changes.
func StaticConfig(cfg *config.Config) LoadFunc {
	return func() (*config.Config, error) { return cfg, nil }
}

// FileConfig returns a LoadFunc that re-reads the configuration file.
func FileConfig(path string) LoadFunc {
	return func() (*config.Config, error) { return config.Load(path) }
}

// Holder publishes the current Site. Reads are lock-free; reloads are
// serialized and swap in a fully built Site or nothing.
type Holder struct {
	current  atomic.Pointer[Site]
	load     LoadFunc
	recorder metrics.Recorder
	reloadMu sync.Mutex
}

// NewHolder returns a Holder serving initial.
func NewHolder(initial *Site, load LoadFunc) *Holder {
	h := &Holder{load: load, recorder: metrics.NoopRecorder{}}
	h.current.Store(initial)
	return h
}

// WithRecorder sets the metrics recorder and reports the current catalog size to it.
func (h *Holder) WithRecorder(r metrics.Recorder) *Holder {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	h.recorder = r
	h.reportSize(h.Current())
	return h
}

// Current returns the active Site.
func (h *Holder) Current() *Site { return h.current.Load() }

// Reload rebuilds the Site from a fresh configuration and descriptor read.
// On failure the previous Site stays active and the error is returned.
func (h *Holder) Reload(ctx context.Context) error {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	defer func() { h.recorder.ObserveReloadDuration(time.Since(start)) }()

	cfg, err := h.load()
	if err != nil {
		h.recorder.IncReload(metrics.ResultFailed)
		slog.Error("Reload failed, keeping current catalog", logfields.Error(err))
		return err
	}
	next, err := Init(cfg)
	if err != nil {
		h.recorder.IncReload(metrics.ResultFailed)
		slog.Error("Reload failed, keeping current catalog", logfields.Error(err))
		return err
	}

	prev := h.current.Swap(next)
	h.recorder.IncReload(metrics.ResultSuccess)
	h.reportSize(next)

	changed := prev == nil || prev.cfg.Snapshot() != cfg.Snapshot()
	slog.Info("Catalog reloaded",
		slog.Bool("config_changed", changed),
		logfields.Count(next.catalog.VersionCount()),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return nil
}

func (h *Holder) reportSize(s *Site) {
	if s == nil {
		return
	}
	h.recorder.SetCatalogSize(len(s.catalog.Groups()), s.catalog.VersionCount())
}

// WatchedFiles returns the configuration file and descriptor sources of the
// current Site.
func (h *Holder) WatchedFiles() []string {
	s := h.Current()
	if s == nil {
		return nil
	}
	files := make([]string, 0, len(s.cfg.Versioning.Sources)+1)
	if p := s.cfg.Path(); p != "" {
		files = append(files, p)
	}
	return append(files, s.cfg.Versioning.Sources...)
}
