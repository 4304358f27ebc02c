package schedule

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs recurring scans on a cron schedule. A tick that fires
// while the previous run is still in flight is skipped rather than
// stacked.
type Scheduler struct {
	cron    *cron.Cron
	logger  *zap.Logger
	running atomic.Bool

	mu  sync.Mutex
	ctx context.Context
}

// NewScheduler creates a new cron-backed scheduler
func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
		ctx:    context.Background(),
	}
}

// Every registers job to run on the given cron expression. Standard
// five-field specs and descriptors like "@daily" are accepted. The job
// receives the context passed to Run, so cancelling it also cancels an
// in-flight run.
func (s *Scheduler) Every(spec string, job func(ctx context.Context)) error {
	_, err := s.cron.AddFunc(spec, func() {
		if !s.running.CompareAndSwap(false, true) {
			s.logger.Warn("Previous run still in progress, skipping tick", zap.String("spec", spec))
			return
		}
		defer s.running.Store(false)

		s.mu.Lock()
		ctx := s.ctx
		s.mu.Unlock()
		job(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}

	s.logger.Info("Scheduled recurring scan", zap.String("spec", spec))
	return nil
}

// Run starts the scheduler and blocks until ctx is cancelled, then
// waits for an in-flight run to finish.
func (s *Scheduler) Run(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	s.cron.Start()
	<-ctx.Done()

	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("Scheduler stopped")
}
