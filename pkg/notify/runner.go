package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"tableflip.dev/planner/pkg/task"
)

// ErrDisabled is returned by Runner.Start while alerts are off.
var ErrDisabled = errors.New("notify: alerts are disabled")

// Source supplies the current collection.
type Source interface {
	Tasks() []task.Task
	Loaded() bool
}

// Sink presents a due task. ack must be called once the user has seen it;
// until then no further task is delivered.
type Sink interface {
	Due(t task.Task, ack func())
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(t task.Task, ack func())

func (f SinkFunc) Due(t task.Task, ack func()) { f(t, ack) }

// Runner polls a Scheduler on a fixed interval.
type Runner struct {
	Scheduler *Scheduler
	Source    Source
	Sink      Sink
	Interval  time.Duration
	Now       func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Start launches the polling goroutine. It returns ErrDisabled when the
// scheduler is not enabled.
func (r *Runner) Start(ctx context.Context) error {
	if !r.Scheduler.Enabled() {
		return ErrDisabled
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return nil
	}
	interval := r.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	go r.loop(ctx, interval, r.done)
	return nil
}

// Stop ends the polling goroutine and waits for it to exit.
func (r *Runner) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Tick runs a single poll.
func (r *Runner) Tick() bool {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	t, ok := r.Scheduler.Poll(r.Source.Tasks(), r.Source.Loaded(), now())
	if !ok {
		return false
	}
	r.Sink.Due(t, r.Scheduler.Acknowledge)
	return true
}

func (r *Runner) loop(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.Tick()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Tick()
		}
	}
}
