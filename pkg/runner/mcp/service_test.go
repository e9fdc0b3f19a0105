package mcp

import (
	"context"
	"strconv"
	"testing"
	"time"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/task"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type memoryStore struct {
	tasks []task.Task
}

func (m *memoryStore) Load(context.Context) ([]task.Task, error) {
	return m.tasks, nil
}

func (m *memoryStore) SaveAll(_ context.Context, tasks []task.Task) error {
	m.tasks = tasks
	return nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	counter := 0
	a := &app.Service{
		Store: &memoryStore{tasks: task.Seed(now)},
		Now:   func() time.Time { return now },
		NewID: func() string {
			counter++
			return "mcp-" + strconv.Itoa(counter)
		},
	}
	if err := a.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	svc := NewService(a)
	svc.Now = func() time.Time { return now }
	return svc
}

func TestServiceCreateTaskDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	dto, err := svc.CreateTask(ctx, CreateOptions{Title: "Write tests", Due: "2025-03-05", DueTime: "09:15"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if dto.ID != "mcp-1" {
		t.Fatalf("expected generated id mcp-1, got %s", dto.ID)
	}
	if dto.Priority != string(task.Medium) {
		t.Fatalf("expected medium priority, got %s", dto.Priority)
	}
	due, err := task.ParseTime(dto.DueISO)
	if err != nil {
		t.Fatalf("parse due: %v", err)
	}
	if local := due.Local(); local.Hour() != 9 || local.Minute() != 15 {
		t.Fatalf("expected 09:15 local, got %v", local)
	}
}

func TestServiceCreateTaskRejectsShortTitle(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.CreateTask(context.Background(), CreateOptions{Title: "no"}); err == nil {
		t.Fatalf("expected error for short title")
	}
}

func TestServiceListTasksOverdue(t *testing.T) {
	svc := newTestService(t)
	tasks, err := svc.ListTasks(context.Background(), ListOptions{OverdueOnly: true})
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "5" || !tasks[0].Overdue {
		t.Fatalf("expected only overdue task 5, got %+v", tasks)
	}
}

func TestServiceListTasksDepth(t *testing.T) {
	svc := newTestService(t)
	tasks, err := svc.ListTasks(context.Background(), ListOptions{Sort: "priority"})
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(tasks))
	}
	for i, dto := range tasks {
		if dto.ID == "4" {
			if dto.Depth != 1 || tasks[i-1].ID != "1" {
				t.Fatalf("expected task 4 nested under 1, got %+v", dto)
			}
		}
	}
	if _, err := svc.ListTasks(context.Background(), ListOptions{Sort: "alphabetical"}); err == nil {
		t.Fatalf("expected error for unknown sort")
	}
}

func TestServiceUpdateAndToggle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	empty := ""
	urgent := "urgent"
	dto, err := svc.UpdateTask(ctx, UpdateOptions{ID: "1", Due: &empty, Priority: &urgent})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if dto.DueISO != "" || dto.Priority != "urgent" {
		t.Fatalf("unexpected update result %+v", dto)
	}

	toggled, err := svc.ToggleTask(ctx, "1")
	if err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}
	if !toggled.Completed || toggled.CompletedAt == "" {
		t.Fatalf("expected completed task, got %+v", toggled)
	}
}

func TestServiceSubtasksAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.AddSubtasks(ctx, "2", []string{"Wireframes", "Copy review"})
	if err != nil {
		t.Fatalf("AddSubtasks failed: %v", err)
	}
	if len(created) != 2 || created[0].ParentID != "2" {
		t.Fatalf("unexpected sub-tasks %+v", created)
	}
	got, err := svc.TaskByID(ctx, "2")
	if err != nil {
		t.Fatalf("TaskByID failed: %v", err)
	}
	if got.SubTasks != 2 {
		t.Fatalf("expected 2 sub-tasks, got %d", got.SubTasks)
	}

	removed, err := svc.DeleteTask(ctx, "2")
	if err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if len(removed) != 3 {
		t.Fatalf("expected parent and two children removed, got %d", len(removed))
	}
	if _, err := svc.TaskByID(ctx, "2"); err == nil {
		t.Fatalf("expected deleted task to be gone")
	}
}

func TestServiceStats(t *testing.T) {
	svc := newTestService(t)
	st, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if st.Total != 7 || st.Overdue != 1 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestParseDue(t *testing.T) {
	if _, err := ParseDue("2025-03-01T15:00:00.000Z"); err != nil {
		t.Fatalf("expected RFC3339 to parse: %v", err)
	}
	if _, err := ParseDue("next week"); err == nil {
		t.Fatalf("expected error for free text")
	}
}

func TestTemplateArg(t *testing.T) {
	if templateArg([]string{"abc"}) != "abc" || templateArg("xyz") != "xyz" || templateArg(nil) != "" {
		t.Fatalf("unexpected template argument handling")
	}
}
