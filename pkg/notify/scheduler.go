// Package notify decides when a task is due for an alert. A task is
// announced at most once for the life of a Scheduler and only one
// announcement is outstanding at a time.
package notify

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"tableflip.dev/planner/pkg/task"
)

var (
	ErrPermissionDenied = errors.New("notify: notifications are blocked; allow them in the configuration to enable alerts")
	ErrUnsupported      = errors.New("notify: this terminal does not support alerts")
	ErrInvalidLeadTime  = errors.New("notify: invalid lead time")
)

// Permission mirrors the states a host can report for alert delivery.
type Permission string

const (
	PermissionDefault     Permission = "default"
	PermissionGranted     Permission = "granted"
	PermissionDenied      Permission = "denied"
	PermissionUnsupported Permission = "unsupported"
)

// DefaultInterval is how often the runner polls.
const DefaultInterval = 10 * time.Second

// DefaultLeadTime is used until a lead time is stored.
const DefaultLeadTime = time.Minute

type leadOption struct {
	d     time.Duration
	label string
}

var leadOptions = []leadOption{
	{0, "At time of event"},
	{time.Minute, "1 minute before"},
	{5 * time.Minute, "5 minutes before"},
	{10 * time.Minute, "10 minutes before"},
	{30 * time.Minute, "30 minutes before"},
}

// LeadTimes returns the selectable lead times, shortest first.
func LeadTimes() []time.Duration {
	out := make([]time.Duration, len(leadOptions))
	for i, o := range leadOptions {
		out[i] = o.d
	}
	return out
}

// ValidLeadTime reports whether d is selectable.
func ValidLeadTime(d time.Duration) bool {
	for _, o := range leadOptions {
		if o.d == d {
			return true
		}
	}
	return false
}

// LeadLabel describes d for display.
func LeadLabel(d time.Duration) string {
	for _, o := range leadOptions {
		if o.d == d {
			return o.label
		}
	}
	return fmt.Sprintf("%v before", d)
}

// NextLeadTime cycles through the selectable lead times.
func NextLeadTime(d time.Duration) time.Duration {
	for i, o := range leadOptions {
		if o.d == d {
			return leadOptions[(i+1)%len(leadOptions)].d
		}
	}
	return leadOptions[0].d
}

// Scheduler holds the alert state. It is safe for concurrent use.
//
// A task is due when due-now falls in (-lead, +lead]. That window is empty
// for a zero lead, so "At time of event" uses (-grace, 0] instead, where
// grace is one poll interval.
type Scheduler struct {
	mu         sync.Mutex
	leadTime   time.Duration
	enabled    bool
	permission Permission
	grace      time.Duration
	notified   map[string]bool
	pending    *task.Task
}

// NewScheduler returns a disabled scheduler. grace is the past-due window
// used when the lead time is zero; it should match the poll interval.
func NewScheduler(permission Permission, grace time.Duration) *Scheduler {
	if grace <= 0 {
		grace = DefaultInterval
	}
	if permission == "" {
		permission = PermissionDefault
	}
	return &Scheduler{
		leadTime:   DefaultLeadTime,
		permission: permission,
		grace:      grace,
		notified:   map[string]bool{},
	}
}

// Poll selects the first task, in collection order, that has just come due.
// It returns false when nothing should be announced.
func (s *Scheduler) Poll(tasks []task.Task, loaded bool, now time.Time) (task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.permission != PermissionGranted || !loaded || s.pending != nil {
		return task.Task{}, false
	}
	for _, t := range tasks {
		if !t.DueDate.Set() || t.Completed || s.notified[t.ID] {
			continue
		}
		if !s.inWindow(t.DueDate.Sub(now)) {
			continue
		}
		s.notified[t.ID] = true
		found := t
		s.pending = &found
		return t, true
	}
	return task.Task{}, false
}

func (s *Scheduler) inWindow(diff time.Duration) bool {
	if s.leadTime == 0 {
		return diff <= 0 && diff > -s.grace
	}
	return diff <= s.leadTime && diff > -s.leadTime
}

// Pending returns the announced task awaiting acknowledgement.
func (s *Scheduler) Pending() (task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return task.Task{}, false
	}
	return *s.pending, true
}

// Acknowledge clears the pending announcement.
func (s *Scheduler) Acknowledge() {
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
}

// SetEnabled turns alerts on or off. Enabling requires permission.
func (s *Scheduler) SetEnabled(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if on {
		switch s.permission {
		case PermissionGranted:
		case PermissionUnsupported:
			return ErrUnsupported
		default:
			return ErrPermissionDenied
		}
	}
	s.enabled = on
	return nil
}

func (s *Scheduler) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// SetLeadTime changes the lead time. Only LeadTimes values are accepted.
func (s *Scheduler) SetLeadTime(d time.Duration) error {
	if !ValidLeadTime(d) {
		return fmt.Errorf("%w: %v", ErrInvalidLeadTime, d)
	}
	s.mu.Lock()
	s.leadTime = d
	s.mu.Unlock()
	return nil
}

func (s *Scheduler) LeadTime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leadTime
}

// SetPermission records a new permission. Losing permission disables alerts.
func (s *Scheduler) SetPermission(p Permission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.permission = p
	if p != PermissionGranted {
		s.enabled = false
	}
}

func (s *Scheduler) Permission() Permission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.permission
}

// Notified reports whether id has already been announced.
func (s *Scheduler) Notified(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notified[id]
}
