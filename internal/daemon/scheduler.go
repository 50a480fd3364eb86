package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/rendergate/internal/foundation/errors"
	"git.home.luguber.info/inful/rendergate/internal/metrics"
)

// Pinger checks store reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Scheduler wraps gocron scheduler for managing periodic tasks.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates a new scheduler instance.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to create scheduler").Build()
	}
	return &Scheduler{scheduler: s}, nil
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	slog.Info("Starting scheduler")
	s.scheduler.Start()
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() error {
	slog.Info("Stopping scheduler")
	return s.scheduler.Shutdown()
}

// ScheduleStoreProbe pings store every interval and reports the result as the
// store_up gauge. The first probe runs immediately. Returns the job ID.
func (s *Scheduler) ScheduleStoreProbe(ctx context.Context, interval time.Duration, store Pinger, rec metrics.Recorder) (string, error) {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { probeStore(ctx, store, rec, interval) }),
		gocron.WithName("store-probe"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryInternal, "failed to create store probe job").
			WithContext("interval", interval.String()).Build()
	}
	return job.ID().String(), nil
}

// probeStore bounds each ping by the probe interval.
func probeStore(ctx context.Context, store Pinger, rec metrics.Recorder, timeout time.Duration) {
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := store.Ping(pctx); err != nil {
		rec.SetStoreUp(false)
		slog.Warn("Recipe store probe failed", "error", errors.Detail(err))
		return
	}
	rec.SetStoreUp(true)
}
