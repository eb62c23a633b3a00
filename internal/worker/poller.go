package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is a recurring reconciliation step.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Poller schedules a session's reconciliation jobs. Failures are logged and
// left for the next cycle.
type Poller struct {
	scheduler Scheduler
	logger    *zap.Logger
	jobs      []Job

	mu      sync.Mutex
	stops   []func()
	started bool
}

// NewPoller builds a poller for the given jobs.
func NewPoller(scheduler Scheduler, logger *zap.Logger, jobs ...Job) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{scheduler: scheduler, logger: logger, jobs: jobs}
}

// Start schedules every job. Calling Start twice is a no-op.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true
	for _, job := range p.jobs {
		if job.Interval <= 0 || job.Run == nil {
			continue
		}
		job := job
		p.stops = append(p.stops, p.scheduler.Every(job.Interval, func(ctx context.Context) {
			if err := job.Run(ctx); err != nil {
				p.logger.Warn("poll failed", zap.String("job", job.Name), zap.Error(err))
			}
		}))
	}
}

// Stop cancels every scheduled job.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, stop := range p.stops {
		stop()
	}
	p.stops = nil
	p.started = false
}
