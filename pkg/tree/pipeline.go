package tree

import (
	"sort"
	"time"

	"tableflip.dev/planner/pkg/task"
)

// ChildrenOf returns the tasks whose parent is parentID, oldest first.
// Ties keep collection order.
func ChildrenOf(tasks []task.Task, parentID string) []task.Task {
	var out []task.Task
	for _, t := range tasks {
		if t.ParentID == parentID && parentID != "" {
			out = append(out, t)
		}
	}
	sortByCreatedAsc(out)
	return out
}

func sortByCreatedAsc(tasks []task.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt.Time)
	})
}

// Filter applies opts. OverdueOnly overrides the status and priority
// filters.
func Filter(tasks []task.Task, opts Options, now time.Time) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	if opts.OverdueOnly {
		for _, t := range tasks {
			if t.Overdue(now) {
				out = append(out, t)
			}
		}
		return out
	}
	for _, t := range tasks {
		switch opts.Status {
		case StatusActive:
			if t.Completed {
				continue
			}
		case StatusCompleted:
			if !t.Completed {
				continue
			}
		}
		if opts.Priority != "" && opts.Priority != PriorityAll && t.Priority != opts.Priority {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Sort returns a sorted copy of tasks. Equal keys keep their relative order.
func Sort(tasks []task.Task, by SortOption) []task.Task {
	out := make([]task.Task, len(tasks))
	copy(out, tasks)

	var less func(a, b task.Task) bool
	switch by {
	case SortDueDate:
		less = func(a, b task.Task) bool {
			return missingLast(a.DueDate, b.DueDate, func(x, y time.Time) bool { return x.Before(y) })
		}
	case SortPriority:
		less = func(a, b task.Task) bool {
			return a.Priority.Rank() > b.Priority.Rank()
		}
	case SortCompletionDate:
		less = func(a, b task.Task) bool {
			return missingLast(a.CompletionDate, b.CompletionDate, func(x, y time.Time) bool { return x.After(y) })
		}
	default:
		less = func(a, b task.Task) bool {
			return a.CreatedAt.After(b.CreatedAt.Time)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func missingLast(a, b *task.Timestamp, before func(x, y time.Time) bool) bool {
	switch {
	case a.Set() && b.Set():
		return before(a.Time, b.Time)
	case a.Set():
		return true
	default:
		return false
	}
}
