package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualSchedulerRunsDueTasksInOrder(t *testing.T) {
	s := NewManualScheduler()
	var runs []string
	s.Every(10*time.Second, func(context.Context) { runs = append(runs, "complaints") })
	s.Every(30*time.Second, func(context.Context) { runs = append(runs, "officers") })

	s.Advance(9 * time.Second)
	assert.Empty(t, runs)

	s.Advance(21 * time.Second)
	assert.Equal(t, []string{"complaints", "complaints", "complaints", "officers"}, runs)
}

func TestManualSchedulerStop(t *testing.T) {
	s := NewManualScheduler()
	count := 0
	stop := s.Every(time.Second, func(context.Context) { count++ })
	s.Advance(2 * time.Second)
	stop()
	stop()
	s.Advance(5 * time.Second)
	assert.Equal(t, 2, count)
	assert.Equal(t, 0, s.Active())
}

func TestPollerSwallowsJobErrors(t *testing.T) {
	s := NewManualScheduler()
	calls := 0
	p := NewPoller(s, nil, Job{Name: "complaints", Interval: 10 * time.Second, Run: func(context.Context) error {
		calls++
		return errors.New("remote down")
	}})
	p.Start()
	p.Start()

	s.Advance(20 * time.Second)
	assert.Equal(t, 2, calls)

	p.Stop()
	s.Advance(20 * time.Second)
	assert.Equal(t, 2, calls)
}

func TestTickerSchedulerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewTickerScheduler(ctx)
	ticks := make(chan struct{}, 10)
	s.Every(5*time.Millisecond, func(context.Context) { ticks <- struct{}{} })

	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("ticker never fired")
	}
	cancel()
}

type registrar struct{ called bool }

func (r *registrar) RegisterHandlers() { r.called = true }

func TestStartAlertWorker(t *testing.T) {
	r := &registrar{}
	StartAlertWorker(r)
	assert.True(t, r.called)
	StartAlertWorker(nil)
}
