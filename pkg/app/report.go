package app

import (
	"time"

	"tableflip.dev/planner/pkg/task"
)

// ReportItem is a task listed in a report. Parents of completed tasks are
// included for context with Completed false.
type ReportItem struct {
	Task        task.Task
	Completed   bool
	CompletedAt time.Time
}

// ReportResult encapsulates a completed-tasks report for a time window.
type ReportResult struct {
	Since time.Time
	Until time.Time
	Items []ReportItem
	Total int
}

// CompletedReport returns tasks completed between the provided bounds, in
// stored order, with their ancestors.
func (s *Service) CompletedReport(since, until time.Time) ReportResult {
	if since.After(until) {
		since, until = until, since
	}
	all := s.Tasks()

	byID := make(map[string]task.Task, len(all))
	for _, t := range all {
		byID[t.ID] = t
	}
	items := make(map[string]*ReportItem)
	ensure := func(t task.Task) *ReportItem {
		if item, ok := items[t.ID]; ok {
			return item
		}
		item := &ReportItem{Task: t}
		items[t.ID] = item
		return item
	}

	total := 0
	for _, t := range all {
		if !t.Completed || !t.CompletionDate.Set() {
			continue
		}
		completedAt := t.CompletionDate.Time
		if completedAt.Before(since) || completedAt.After(until) {
			continue
		}
		item := ensure(t)
		item.Completed = true
		item.CompletedAt = completedAt
		total++

		parentID := t.ParentID
		visited := make(map[string]bool)
		for parentID != "" {
			if visited[parentID] {
				break
			}
			visited[parentID] = true
			parent, ok := byID[parentID]
			if !ok {
				break
			}
			ensure(parent)
			parentID = parent.ParentID
		}
	}

	result := ReportResult{Since: since, Until: until, Total: total}
	for _, t := range all {
		if item, ok := items[t.ID]; ok {
			result.Items = append(result.Items, *item)
		}
	}
	return result
}
