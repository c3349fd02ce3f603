package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DigestRunner computes and delivers the end-of-day digest.
type DigestRunner interface {
	Run(ctx context.Context) error
}

// Scheduler drives periodic jobs off cron specs.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// New constructs a scheduler. Specs use the standard five-field cron format.
func New(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{cron: cron.New(), logger: logger}
}

// AddDigest registers the digest job at the given cron spec.
func (s *Scheduler) AddDigest(spec string, runner DigestRunner) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := runner.Run(context.Background()); err != nil {
			s.logger.Error("digest run failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}
	s.logger.Info("digest scheduled", zap.String("spec", spec))
	return nil
}

// AddExportSweep registers a nightly cleanup removing export files older
// than the retention window.
func (s *Scheduler) AddExportSweep(spec string, sweep func() (int, error)) error {
	_, err := s.cron.AddFunc(spec, func() {
		removed, err := sweep()
		if err != nil {
			s.logger.Error("export sweep failed", zap.Error(err))
			return
		}
		s.logger.Info("export sweep finished", zap.Int("removed", removed))
	})
	if err != nil {
		return err
	}
	s.logger.Info("export sweep scheduled", zap.String("spec", spec))
	return nil
}

// Start begins job execution in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
