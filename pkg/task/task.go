// Package task defines the planner's task record and the pure list
// transforms applied to it.
package task

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/planner/pkg/timeutil"
)

// MinTitleLength is the shortest title accepted at create and edit time.
const MinTitleLength = 3

var (
	ErrTaskNotFound    = errors.New("task: not found")
	ErrTitleTooShort   = fmt.Errorf("task: title must be at least %d characters long", MinTitleLength)
	ErrInvalidPriority = errors.New("task: invalid priority")
)

// Task is the single entity of the planner.
type Task struct {
	ID             string     `json:"id" yaml:"id"`
	Title          string     `json:"title" yaml:"title"`
	Description    string     `json:"description,omitempty" yaml:"description,omitempty"`
	DueDate        *Timestamp `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	Priority       Priority   `json:"priority" yaml:"priority"`
	Completed      bool       `json:"completed" yaml:"completed"`
	CompletionDate *Timestamp `json:"completionDate,omitempty" yaml:"completionDate,omitempty"`
	CreatedAt      Timestamp  `json:"createdAt" yaml:"createdAt"`
	ParentID       string     `json:"parentId,omitempty" yaml:"parentId,omitempty"`
}

// Draft carries user input for a new task or sub-task.
type Draft struct {
	Title       string
	Description string
	Due         time.Time
	// DueTime is an optional "HH:mm" applied to Due.
	DueTime  string
	Priority Priority
	ParentID string
}

// Patch describes an edit. Nil fields are left unchanged.
type Patch struct {
	Title       *string
	Description *string
	Due         *time.Time
	DueTime     *string
	ClearDue    bool
	Priority    *Priority
}

// NewID returns a fresh task identifier.
func NewID() string {
	return uuid.NewString()
}

// New builds a task from d. id may be empty, in which case one is generated.
func New(d Draft, now time.Time, id string) (Task, error) {
	title := strings.TrimSpace(d.Title)
	if err := ValidateTitle(title); err != nil {
		return Task{}, err
	}
	p := d.Priority
	if p == "" {
		p = Medium
	}
	if !p.Known() {
		return Task{}, fmt.Errorf("%w: %q", ErrInvalidPriority, p)
	}
	if id == "" {
		id = NewID()
	}
	t := Task{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(d.Description),
		Priority:    p,
		CreatedAt:   Timestamp{Time: now},
		ParentID:    strings.TrimSpace(d.ParentID),
	}
	if !d.Due.IsZero() {
		t.DueDate = At(mergeDueTime(d.Due, d.DueTime))
	}
	return t, nil
}

// ValidateTitle enforces the minimum title length.
func ValidateTitle(title string) error {
	if len([]rune(strings.TrimSpace(title))) < MinTitleLength {
		return ErrTitleTooShort
	}
	return nil
}

// SetCompleted flips completion, stamping or clearing the completion date.
func (t *Task) SetCompleted(done bool, now time.Time) {
	t.Completed = done
	if done {
		t.CompletionDate = At(now)
		return
	}
	t.CompletionDate = nil
}

// Apply returns a copy of t with p applied.
func (t Task) Apply(p Patch) (Task, error) {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if err := ValidateTitle(title); err != nil {
			return t, err
		}
		t.Title = title
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Priority != nil {
		if !p.Priority.Known() {
			return t, fmt.Errorf("%w: %q", ErrInvalidPriority, *p.Priority)
		}
		t.Priority = *p.Priority
	}
	switch {
	case p.ClearDue:
		t.DueDate = nil
	case p.Due != nil || p.DueTime != nil:
		base := t.DueDate.Instant()
		if p.Due != nil {
			base = *p.Due
		}
		if base.IsZero() {
			break
		}
		hhmm := ""
		if p.DueTime != nil {
			hhmm = *p.DueTime
		}
		t.DueDate = At(mergeDueTime(base, hhmm))
	}
	return t, nil
}

// Overdue reports whether t has a due date before now and is still open.
func (t Task) Overdue(now time.Time) bool {
	return t.DueDate.Set() && !t.Completed && t.DueDate.Before(now)
}

// HasParent reports whether t references a parent task.
func (t Task) HasParent() bool {
	return t.ParentID != ""
}

func mergeDueTime(date time.Time, hhmm string) time.Time {
	if strings.TrimSpace(hhmm) == "" {
		return date
	}
	merged, err := timeutil.CombineDateTime(date, hhmm)
	if err != nil {
		// Keep the previously valid date.
		fmt.Fprintf(os.Stderr, "task: %v\n", err)
		return date
	}
	return merged
}
