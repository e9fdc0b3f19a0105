package app

import (
	"math"

	"tableflip.dev/planner/pkg/task"
)

// PriorityCount is the number of open tasks at one priority.
type PriorityCount struct {
	Priority task.Priority `json:"priority"`
	Count    int           `json:"count"`
}

// Stats summarises the collection.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Active    int `json:"active"`
	// Percent is the rounded share of completed tasks, 0 when empty.
	Percent    int             `json:"percent"`
	ByPriority []PriorityCount `json:"byPriority"`
	Overdue    int             `json:"overdue"`
}

// Stats computes the productivity summary. Per-priority counts cover open
// tasks with a known priority and leave out empty buckets.
func (s *Service) Stats() Stats {
	tasks := s.Tasks()
	now := s.now()
	st := Stats{Total: len(tasks), ByPriority: []PriorityCount{}}
	counts := map[task.Priority]int{}
	for _, t := range tasks {
		if t.Completed {
			st.Completed++
			continue
		}
		st.Active++
		if t.Priority.Known() {
			counts[t.Priority]++
		}
		if t.Overdue(now) {
			st.Overdue++
		}
	}
	if st.Total > 0 {
		st.Percent = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
	}
	for _, p := range task.Priorities() {
		if counts[p] > 0 {
			st.ByPriority = append(st.ByPriority, PriorityCount{Priority: p, Count: counts[p]})
		}
	}
	return st
}
