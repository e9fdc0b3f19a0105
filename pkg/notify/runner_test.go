package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/planner/pkg/task"
)

type staticSource []task.Task

func (s staticSource) Tasks() []task.Task { return s }
func (s staticSource) Loaded() bool       { return true }

type recorder struct {
	mu   sync.Mutex
	got  []string
	acks []func()
	seen chan string
}

func (r *recorder) Due(t task.Task, ack func()) {
	r.mu.Lock()
	r.got = append(r.got, t.ID)
	r.acks = append(r.acks, ack)
	r.mu.Unlock()
	if r.seen != nil {
		r.seen <- t.ID
	}
}

func TestRunnerTickWaitsForAck(t *testing.T) {
	s := enabled(t, 5*time.Minute)
	rec := &recorder{}
	r := &Runner{
		Scheduler: s,
		Source:    staticSource{due("A", time.Minute), due("B", time.Minute)},
		Sink:      rec,
		Now:       func() time.Time { return now },
	}

	assert.True(t, r.Tick())
	assert.False(t, r.Tick())
	assert.Equal(t, []string{"A"}, rec.got)

	rec.acks[0]()
	assert.True(t, r.Tick())
	assert.Equal(t, []string{"A", "B"}, rec.got)

	rec.acks[1]()
	assert.False(t, r.Tick())
}

func TestRunnerRefusesWhenDisabled(t *testing.T) {
	r := &Runner{Scheduler: NewScheduler(PermissionGranted, 0), Source: staticSource{}, Sink: &recorder{}}
	assert.ErrorIs(t, r.Start(context.Background()), ErrDisabled)
	r.Stop()
}

func TestRunnerStartStop(t *testing.T) {
	s := enabled(t, time.Minute)
	rec := &recorder{seen: make(chan string, 1)}
	r := &Runner{
		Scheduler: s,
		Source:    staticSource{due("A", 0)},
		Sink:      rec,
		Interval:  time.Millisecond,
		Now:       func() time.Time { return now },
	}
	require.NoError(t, r.Start(context.Background()))

	select {
	case id := <-rec.seen:
		assert.Equal(t, "A", id)
	case <-time.After(time.Second):
		t.Fatalf("expected a due task to be delivered")
	}
	r.Stop()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []string{"A"}, rec.got)
}
