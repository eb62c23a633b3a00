package worker

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Task is one scheduled unit of work.
type Task func(ctx context.Context)

// Scheduler runs tasks on a fixed interval. The returned function stops the
// task; it is safe to call more than once.
type Scheduler interface {
	Every(interval time.Duration, task Task) (stop func())
}

// TickerScheduler drives tasks from wall-clock tickers. Runs of one task never
// overlap; a tick that arrives while the task is still running is dropped.
type TickerScheduler struct {
	ctx context.Context
}

// NewTickerScheduler returns a scheduler whose tasks end when ctx does.
func NewTickerScheduler(ctx context.Context) *TickerScheduler {
	return &TickerScheduler{ctx: ctx}
}

// Every implements Scheduler.
func (s *TickerScheduler) Every(interval time.Duration, task Task) func() {
	ctx, cancel := context.WithCancel(s.ctx)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				task(ctx)
			}
		}
	}()
	return cancel
}

// ManualScheduler runs tasks only when Advance moves its virtual clock. Tasks
// run synchronously on the caller's goroutine.
type ManualScheduler struct {
	mu   sync.Mutex
	now  time.Duration
	seq  int
	jobs []*manualJob
}

type manualJob struct {
	seq      int
	interval time.Duration
	next     time.Duration
	task     Task
	stopped  bool
}

// NewManualScheduler returns a scheduler at virtual time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Every implements Scheduler.
func (s *ManualScheduler) Every(interval time.Duration, task Task) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	job := &manualJob{seq: s.seq, interval: interval, next: s.now + interval, task: task}
	s.jobs = append(s.jobs, job)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		job.stopped = true
	}
}

// Advance moves virtual time forward by d, running every task that falls due
// in order of due time, then registration order.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		job := s.nextDueLocked(target)
		if job == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = job.next
		job.next += job.interval
		task := job.task
		s.mu.Unlock()

		task(context.Background())
	}
}

// Active returns the number of tasks that have not been stopped.
func (s *ManualScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, job := range s.jobs {
		if !job.stopped {
			n++
		}
	}
	return n
}

func (s *ManualScheduler) nextDueLocked(target time.Duration) *manualJob {
	due := make([]*manualJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		if !job.stopped && job.interval > 0 && job.next <= target {
			due = append(due, job)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].next != due[j].next {
			return due[i].next < due[j].next
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}
