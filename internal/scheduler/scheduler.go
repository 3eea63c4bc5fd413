package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/amishk599/jobagg/internal/model"
	"github.com/amishk599/jobagg/internal/poller"
)

// Scheduler owns the main loop: ticks on an interval and runs each saved-search
// poller sequentially, pausing between searches.
type Scheduler struct {
	pollers   []*poller.SearchPoller
	interval  time.Duration
	pause     time.Duration
	store     model.JobStore // optional; pruned after every cycle
	retention time.Duration
	logger    *slog.Logger
}

// NewScheduler creates a scheduler that runs all pollers every interval.
// pause is the gap between consecutive searches within one cycle.
func NewScheduler(pollers []*poller.SearchPoller, interval, pause time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		pollers:  pollers,
		interval: interval,
		pause:    pause,
		logger:   logger,
	}
}

// PruneAfterCycle makes the scheduler drop store entries older than retention
// after each cycle.
func (s *Scheduler) PruneAfterCycle(store model.JobStore, retention time.Duration) {
	s.store = store
	s.retention = retention
}

// Run starts the polling loop. It runs one immediate cycle, then ticks on the
// configured interval. It returns nil when ctx is cancelled (graceful shutdown).
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting scheduler",
		"interval", s.interval.String(),
		"searches", len(s.pollers),
	)

	s.pollAll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down scheduler")
			return nil
		case <-ticker.C:
			s.pollAll(ctx)
		}
	}
}

// RunOnce runs a single cycle and returns.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.pollAll(ctx)
}

func (s *Scheduler) pollAll(ctx context.Context) {
	for i, p := range s.pollers {
		if ctx.Err() != nil {
			return
		}

		if err := p.Poll(ctx); err != nil {
			s.logger.Error("poll failed",
				"search", p.Name,
				"error", err,
			)
		}

		if i < len(s.pollers)-1 && s.pause > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.pause):
			}
		}
	}

	if s.store != nil && s.retention > 0 {
		if err := s.store.Cleanup(s.retention); err != nil {
			s.logger.Error("store cleanup failed", "error", err)
		}
	}
}
