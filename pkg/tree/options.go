// Package tree derives the filtered, sorted and nested views of a task
// collection. Everything here is pure: the input slice is never modified
// and identical inputs produce identical output.
package tree

import (
	"fmt"
	"strings"

	"tableflip.dev/planner/pkg/task"
)

// Status selects tasks by completion.
type Status string

const (
	StatusAll       Status = "all"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// PriorityAll disables priority filtering.
const PriorityAll task.Priority = "all"

// SortOption names a sort order.
type SortOption string

const (
	SortCreatedAt      SortOption = "createdAt"
	SortDueDate        SortOption = "dueDate"
	SortPriority       SortOption = "priority"
	SortCompletionDate SortOption = "completionDate"
)

// Options is the filter state.
type Options struct {
	Status      Status
	Priority    task.Priority
	OverdueOnly bool
}

// DefaultOptions shows everything.
func DefaultOptions() Options {
	return Options{Status: StatusAll, Priority: PriorityAll}
}

func Statuses() []Status {
	return []Status{StatusAll, StatusActive, StatusCompleted}
}

func SortOptions() []SortOption {
	return []SortOption{SortCreatedAt, SortDueDate, SortPriority, SortCompletionDate}
}

// PriorityFilters lists "all" followed by the known priorities.
func PriorityFilters() []task.Priority {
	return append([]task.Priority{PriorityAll}, task.Priorities()...)
}

func ParseStatus(s string) (Status, error) {
	v := Status(strings.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return StatusAll, nil
	}
	for _, st := range Statuses() {
		if st == v {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid status %q (expected all, active or completed)", s)
}

func ParsePriorityFilter(s string) (task.Priority, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" || v == string(PriorityAll) {
		return PriorityAll, nil
	}
	return task.ParsePriority(v)
}

func ParseSortOption(s string) (SortOption, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return SortCreatedAt, nil
	}
	for _, o := range SortOptions() {
		if strings.ToLower(string(o)) == v {
			return o, nil
		}
	}
	switch v {
	case "created":
		return SortCreatedAt, nil
	case "due":
		return SortDueDate, nil
	case "completed", "completion":
		return SortCompletionDate, nil
	}
	return "", fmt.Errorf("invalid sort %q (expected createdAt, dueDate, priority or completionDate)", s)
}

// Label is the human readable name of a sort option.
func (o SortOption) Label() string {
	switch o {
	case SortDueDate:
		return "Due Date"
	case SortPriority:
		return "Priority"
	case SortCompletionDate:
		return "Completion Date"
	default:
		return "Creation Date"
	}
}
