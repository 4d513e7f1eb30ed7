package site

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	derrors "git.home.luguber.info/inful/docsroute/internal/foundation/errors"
	"git.home.luguber.info/inful/docsroute/internal/logfields"
)

// ReloadScheduler periodically reloads a Holder.
type ReloadScheduler struct {
	scheduler gocron.Scheduler
	holder    *Holder
}

// NewReloadScheduler creates a scheduler for holder.
func NewReloadScheduler(holder *Holder) (*ReloadScheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryInternal, "failed to create scheduler").Build()
	}
	return &ReloadScheduler{scheduler: s, holder: holder}, nil
}

// Schedule registers a periodic reload and returns the job ID.
func (s *ReloadScheduler) Schedule(ctx context.Context, interval time.Duration) (string, error) {
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { s.executeReload(ctx) }),
		gocron.WithName("catalog-reload"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", derrors.WrapError(err, derrors.CategoryConfig, "failed to schedule catalog reload").
			WithContext("interval", interval.String()).
			Build()
	}
	return job.ID().String(), nil
}

// Start begins the scheduler.
func (s *ReloadScheduler) Start() {
	slog.Info("Starting reload scheduler")
	s.scheduler.Start()
}

// Stop shuts the scheduler down, waiting for a running reload to finish.
func (s *ReloadScheduler) Stop() error {
	slog.Info("Stopping reload scheduler")
	return s.scheduler.Shutdown()
}

func (s *ReloadScheduler) executeReload(ctx context.Context) {
	slog.Debug("Executing scheduled reload")
	if err := s.holder.Reload(ctx); err != nil {
		slog.Warn("Scheduled reload failed", logfields.Error(err))
	}
}
