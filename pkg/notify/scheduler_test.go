package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/planner/pkg/task"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func enabled(t *testing.T, lead time.Duration) *Scheduler {
	t.Helper()
	s := NewScheduler(PermissionGranted, 10*time.Second)
	require.NoError(t, s.SetEnabled(true))
	require.NoError(t, s.SetLeadTime(lead))
	return s
}

func due(id string, offset time.Duration) task.Task {
	return task.Task{ID: id, Title: "task " + id, Priority: task.Medium, DueDate: task.At(now.Add(offset))}
}

func TestPollSelectsTaskInsideLead(t *testing.T) {
	s := enabled(t, time.Minute)
	tasks := []task.Task{due("A", 30*time.Second)}

	got, ok := s.Poll(tasks, true, now)
	require.True(t, ok)
	assert.Equal(t, "A", got.ID)
	assert.True(t, s.Notified("A"))
	pending, ok := s.Pending()
	require.True(t, ok)
	assert.Equal(t, "A", pending.ID)

	s.Acknowledge()
	_, ok = s.Poll(tasks, true, now.Add(10*time.Second))
	assert.False(t, ok, "a task is never announced twice")
}

func TestPollOnePendingAtATime(t *testing.T) {
	s := enabled(t, 5*time.Minute)
	tasks := []task.Task{due("A", time.Minute), due("B", 2*time.Minute)}

	first, ok := s.Poll(tasks, true, now)
	require.True(t, ok)
	assert.Equal(t, "A", first.ID)

	_, ok = s.Poll(tasks, true, now)
	assert.False(t, ok)
	assert.False(t, s.Notified("B"))

	s.Acknowledge()
	second, ok := s.Poll(tasks, true, now)
	require.True(t, ok)
	assert.Equal(t, "B", second.ID)
}

func TestPollSkips(t *testing.T) {
	s := enabled(t, 5*time.Minute)
	done := due("done", time.Minute)
	done.Completed = true
	tasks := []task.Task{
		{ID: "nodue", Title: "no due"},
		done,
		due("far", time.Hour),
		due("stale", -10*time.Minute),
	}
	_, ok := s.Poll(tasks, true, now)
	assert.False(t, ok)
}

func TestPollWindowBounds(t *testing.T) {
	s := enabled(t, 5*time.Minute)
	_, ok := s.Poll([]task.Task{due("edge", 5*time.Minute)}, true, now)
	assert.True(t, ok, "due exactly one lead away is inside")
	s.Acknowledge()

	_, ok = s.Poll([]task.Task{due("past", -5*time.Minute)}, true, now)
	assert.False(t, ok, "one full lead past due is outside")

	_, ok = s.Poll([]task.Task{due("recent", -4*time.Minute)}, true, now)
	assert.True(t, ok)
}

func TestPollAtTimeOfEventUsesPollGrace(t *testing.T) {
	s := enabled(t, 0)
	tasks := []task.Task{due("A", 5*time.Second)}

	_, ok := s.Poll(tasks, true, now)
	assert.False(t, ok, "not yet due")

	got, ok := s.Poll(tasks, true, now.Add(8*time.Second))
	require.True(t, ok)
	assert.Equal(t, "A", got.ID)

	s.Acknowledge()
	_, ok = s.Poll([]task.Task{due("old", -time.Minute)}, true, now)
	assert.False(t, ok)
}

func TestPollNoopStates(t *testing.T) {
	tasks := []task.Task{due("A", 0)}

	s := NewScheduler(PermissionGranted, time.Second)
	_, ok := s.Poll(tasks, true, now)
	assert.False(t, ok, "disabled")

	s = enabled(t, time.Minute)
	_, ok = s.Poll(tasks, false, now)
	assert.False(t, ok, "not loaded")

	s.SetPermission(PermissionDenied)
	assert.False(t, s.Enabled())
	_, ok = s.Poll(tasks, true, now)
	assert.False(t, ok, "permission revoked")
}

func TestSetEnabledNeedsPermission(t *testing.T) {
	s := NewScheduler(PermissionDenied, 0)
	assert.ErrorIs(t, s.SetEnabled(true), ErrPermissionDenied)
	assert.False(t, s.Enabled())

	s = NewScheduler(PermissionUnsupported, 0)
	assert.ErrorIs(t, s.SetEnabled(true), ErrUnsupported)
	assert.NoError(t, s.SetEnabled(false))

	s = NewScheduler("", 0)
	assert.Equal(t, PermissionDefault, s.Permission())
	assert.ErrorIs(t, s.SetEnabled(true), ErrPermissionDenied)
}

func TestLeadTimes(t *testing.T) {
	s := NewScheduler(PermissionGranted, 0)
	assert.ErrorIs(t, s.SetLeadTime(2*time.Minute), ErrInvalidLeadTime)
	assert.Equal(t, time.Minute, s.LeadTime())
	assert.Equal(t, int64(60000), DefaultLeadTime.Milliseconds())
	require.NoError(t, s.SetLeadTime(30*time.Minute))
	assert.Equal(t, 30*time.Minute, s.LeadTime())

	assert.Equal(t, "At time of event", LeadLabel(0))
	assert.Equal(t, "10 minutes before", LeadLabel(10*time.Minute))
	assert.Equal(t, time.Duration(0), NextLeadTime(30*time.Minute))
	assert.Equal(t, 5*time.Minute, NextLeadTime(time.Minute))
	assert.Len(t, LeadTimes(), 5)
}

func TestDetectPermissionForced(t *testing.T) {
	assert.Equal(t, PermissionGranted, DetectPermission("granted", nil))
	assert.Equal(t, PermissionDenied, DetectPermission("Denied", nil))
	assert.Equal(t, PermissionUnsupported, DetectPermission("auto", nil))
}
