package task

import "time"

// The functions below never modify the slice they are given. Each returns
// a fresh list so callers can persist the result and keep the old one on
// failure.

func clone(list []Task) []Task {
	out := make([]Task, len(list))
	copy(out, list)
	return out
}

func indexOf(list []Task, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the task with the given id.
func Find(list []Task, id string) (Task, bool) {
	if i := indexOf(list, id); i >= 0 {
		return list[i], true
	}
	return Task{}, false
}

// Append adds tasks to the end of list.
func Append(list []Task, tasks ...Task) []Task {
	out := make([]Task, 0, len(list)+len(tasks))
	out = append(out, list...)
	return append(out, tasks...)
}

// Toggle flips the completed flag of id.
func Toggle(list []Task, id string, now time.Time) ([]Task, Task, error) {
	i := indexOf(list, id)
	if i < 0 {
		return list, Task{}, ErrTaskNotFound
	}
	out := clone(list)
	out[i].SetCompleted(!out[i].Completed, now)
	return out, out[i], nil
}

// Update applies p to id.
func Update(list []Task, id string, p Patch) ([]Task, Task, error) {
	i := indexOf(list, id)
	if i < 0 {
		return list, Task{}, ErrTaskNotFound
	}
	updated, err := list[i].Apply(p)
	if err != nil {
		return list, Task{}, err
	}
	out := clone(list)
	out[i] = updated
	return out, updated, nil
}

// Delete removes id and its direct children. Grandchildren are kept and
// become orphans.
func Delete(list []Task, id string) ([]Task, []Task, error) {
	if indexOf(list, id) < 0 {
		return list, nil, ErrTaskNotFound
	}
	out := make([]Task, 0, len(list))
	var removed []Task
	for _, t := range list {
		if t.ID == id || t.ParentID == id {
			removed = append(removed, t)
			continue
		}
		out = append(out, t)
	}
	return out, removed, nil
}
