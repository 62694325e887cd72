package jobs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"ygo-pipelines/core/logger"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
)

var (
	// ErrBusy is returned when a job is triggered while another one runs.
	ErrBusy = errors.New("another job is running")
	// ErrUnknownJob is returned for a job name that was never registered.
	ErrUnknownJob = errors.New("unknown job")
)

// Status is the lifecycle of a run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Func runs a job and returns its report.
type Func func(ctx context.Context, log *zap.Logger) (any, error)

// Run is one execution of a job.
type Run struct {
	ID         string     `json:"id"`
	Job        string     `json:"job"`
	Trigger    string     `json:"trigger"`
	Status     Status     `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Error      string     `json:"error,omitempty"`
	Result     any        `json:"result,omitempty"`
}

// Runner executes registered jobs one at a time and keeps a bounded history
// of their runs. Overlapping triggers are rejected, so a metadata sync and an
// image sync never touch the same card concurrently.
type Runner struct {
	ctx     context.Context
	logger  *zap.Logger
	jobs    map[string]Func
	running atomic.Bool
	mu      sync.RWMutex
	history *lru.Cache
	wg      sync.WaitGroup
}

// NewRunner creates a runner. Runs inherit ctx, so cancelling it interrupts
// the active job.
func NewRunner(ctx context.Context, historySize int, logger *zap.Logger) (*Runner, error) {
	if historySize <= 0 {
		historySize = 50
	}
	history, err := lru.New(historySize)
	if err != nil {
		return nil, fmt.Errorf("failed to create run history: %w", err)
	}
	return &Runner{
		ctx:     ctx,
		logger:  logger,
		jobs:    make(map[string]Func),
		history: history,
	}, nil
}

// Register adds a job under name. It must be called before the first trigger.
func (r *Runner) Register(name string, fn Func) {
	r.jobs[name] = fn
}

// Jobs returns the registered job names, sorted.
func (r *Runner) Jobs() []string {
	names := make([]string, 0, len(r.jobs))
	for name := range r.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Trigger starts the named job in the background and returns its run.
func (r *Runner) Trigger(name, trigger string) (Run, error) {
	fn, ok := r.jobs[name]
	if !ok {
		return Run{}, fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	if !r.running.CompareAndSwap(false, true) {
		return Run{}, ErrBusy
	}

	run := &Run{
		ID:        uuid.NewString(),
		Job:       name,
		Trigger:   trigger,
		Status:    StatusRunning,
		StartedAt: time.Now(),
	}
	r.mu.Lock()
	r.history.Add(run.ID, run)
	snapshot := *run
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer r.running.Store(false)
		r.execute(run, fn)
	}()

	return snapshot, nil
}

func (r *Runner) execute(run *Run, fn Func) {
	l := logger.WithRunID(r.logger, run.ID).With(zap.String("job", run.Job), zap.String("trigger", run.Trigger))
	l.Info("Job started")

	result, err := fn(r.ctx, l)
	finished := time.Now()

	r.mu.Lock()
	run.FinishedAt = &finished
	run.Result = result
	if err != nil {
		run.Status = StatusFailed
		run.Error = err.Error()
	} else {
		run.Status = StatusSucceeded
	}
	r.mu.Unlock()

	if err != nil {
		l.Error("Job failed", zap.Error(err), zap.Duration("elapsed", finished.Sub(run.StartedAt)))
		return
	}
	l.Info("Job finished", zap.Duration("elapsed", finished.Sub(run.StartedAt)))
}

// Get returns a copy of the run with the given id.
func (r *Runner) Get(id string) (Run, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.history.Peek(id)
	if !ok {
		return Run{}, false
	}
	return *v.(*Run), true
}

// Runs returns copies of the remembered runs, newest first.
func (r *Runner) Runs() []Run {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := r.history.Keys()
	out := make([]Run, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		if v, ok := r.history.Peek(keys[i]); ok {
			out = append(out, *v.(*Run))
		}
	}
	return out
}

// Busy reports whether a job is running.
func (r *Runner) Busy() bool {
	return r.running.Load()
}

// Wait blocks until every started run has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}
