package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler triggers jobs from cron expressions.
type Scheduler struct {
	cron   *cron.Cron
	runner *Runner
	logger *zap.Logger
}

// NewScheduler creates a scheduler for the given job expressions. Jobs with an
// empty expression are not scheduled.
func NewScheduler(runner *Runner, specs map[string]string, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(cron.WithLogger(cronLogger{logger.Sugar()})),
		runner: runner,
		logger: logger,
	}

	for name, spec := range specs {
		if spec == "" {
			continue
		}
		if _, ok := runner.jobs[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownJob, name)
		}
		if _, err := s.cron.AddFunc(spec, func() { s.fire(name) }); err != nil {
			return nil, fmt.Errorf("invalid schedule %q for %s: %w", spec, name, err)
		}
		logger.Info("Scheduled job", zap.String("job", name), zap.String("spec", spec))
	}

	return s, nil
}

func (s *Scheduler) fire(name string) {
	run, err := s.runner.Trigger(name, "cron")
	if errors.Is(err, ErrBusy) {
		s.logger.Warn("Skipping scheduled job, another job is running", zap.String("job", name))
		return
	}
	if err != nil {
		s.logger.Error("Failed to trigger scheduled job", zap.String("job", name), zap.Error(err))
		return
	}
	s.logger.Debug("Triggered scheduled job", zap.String("job", name), zap.String("run_id", run.ID))
}

// Entries returns the number of scheduled jobs.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// Start runs the scheduler in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling new runs and returns a context that is done once
// running cron callbacks have returned.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// cronLogger adapts zap to cron's logger.
type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
