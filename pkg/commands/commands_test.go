package commands

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/task"
)

func TestNewRegistersCommands(t *testing.T) {
	cmd := New()
	want := []string{"add", "completion", "done", "edit", "export", "ics", "import", "list", "mcp", "notify", "report", "rm", "show", "stats", "sub", "ui", "version", "watch"}
	var got []string
	for _, c := range cmd.Commands() {
		got = append(got, c.Name())
	}
	sort.Strings(got)
	for _, name := range want {
		i := sort.SearchStrings(got, name)
		if i >= len(got) || got[i] != name {
			t.Fatalf("expected command %q, got %v", name, got)
		}
	}
}

func tempStore(t *testing.T) store.Persistence {
	t.Helper()
	t.Setenv("PLANNER_PATH", filepath.Join(t.TempDir(), "planner.db"))
	cfg, err := store.LoadConfig()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	p, err := store.Load(cfg)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return p
}

func run(t *testing.T, args ...string) {
	t.Helper()
	cmd := New()
	cmd.SetArgs(args)
	cmd.SetOut(os.Stderr)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("planner %v: %v", args, err)
	}
}

func findTitle(t *testing.T, tasks []task.Task, title string) task.Task {
	t.Helper()
	for _, tk := range tasks {
		if tk.Title == title {
			return tk
		}
	}
	t.Fatalf("expected a task titled %q", title)
	return task.Task{}
}

func TestAddSubDoneRemove(t *testing.T) {
	p := tempStore(t)
	ctx := context.Background()

	run(t, "add", "Write", "release", "notes", "--priority", "high", "--due", "2030-1-2", "--at", "09:15")
	tasks, err := p.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tasks) != 8 {
		t.Fatalf("expected demo tasks plus one, got %d", len(tasks))
	}
	notes := findTitle(t, tasks, "Write release notes")
	if notes.Priority != task.High {
		t.Fatalf("expected high priority, got %s", notes.Priority)
	}
	if due := notes.DueDate.Instant().Local(); due.Hour() != 9 || due.Minute() != 15 {
		t.Fatalf("expected 09:15, got %v", due)
	}

	run(t, "sub", notes.ID, "Collect changes", "Proofread")
	run(t, "done", notes.ID)
	tasks, _ = p.Load(ctx)
	if !findTitle(t, tasks, "Write release notes").Completed {
		t.Fatalf("expected task completed")
	}
	if findTitle(t, tasks, "Proofread").ParentID != notes.ID {
		t.Fatalf("expected sub-task parent %s", notes.ID)
	}

	run(t, "edit", notes.ID, "--title", "Publish release notes", "--no-due")
	tasks, _ = p.Load(ctx)
	edited := findTitle(t, tasks, "Publish release notes")
	if edited.DueDate.Set() {
		t.Fatalf("expected due date cleared")
	}

	run(t, "rm", notes.ID)
	tasks, _ = p.Load(ctx)
	if len(tasks) != 7 {
		t.Fatalf("expected sub-tasks removed with parent, got %d tasks", len(tasks))
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	p := tempStore(t)
	ctx := context.Background()
	out := filepath.Join(t.TempDir(), "tasks.yaml")

	run(t, "add", "Renew passport")
	run(t, "export", "--output", out)
	run(t, "rm", "1")
	run(t, "import", out)

	tasks, err := p.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tasks) != 8 {
		t.Fatalf("expected 8 tasks after import, got %d", len(tasks))
	}
	findTitle(t, tasks, "Renew passport")
}

func TestImportRejectsInvalidFile(t *testing.T) {
	p := tempStore(t)
	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`[{"title":"no id"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	run(t, "list")

	cmd := New()
	cmd.SetArgs([]string{"import", bad})
	cmd.SetOut(os.Stderr)
	cmd.SetErr(os.Stderr)
	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatalf("expected import to fail")
	}
	tasks, _ := p.Load(context.Background())
	if len(tasks) != 7 {
		t.Fatalf("expected the collection untouched, got %d tasks", len(tasks))
	}
}

func TestNotifyLeadPersists(t *testing.T) {
	p := tempStore(t)

	run(t, "notify", "lead", "5m")
	d, err := p.NotificationLeadTime()
	if err != nil {
		t.Fatalf("lead: %v", err)
	}
	if d.Minutes() != 5 {
		t.Fatalf("expected 5m, got %v", d)
	}

	cmd := New()
	cmd.SetArgs([]string{"notify", "lead", "7m"})
	cmd.SetOut(os.Stderr)
	cmd.SetErr(os.Stderr)
	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatalf("expected 7m to be rejected")
	}
}

func TestCalendarWritesFile(t *testing.T) {
	tempStore(t)
	dir := t.TempDir()

	run(t, "ics", "1", "--dir", dir)
	b, err := os.ReadFile(filepath.Join(dir, "Finalize_Q3_marketing_strategy.ics"))
	if err != nil {
		t.Fatalf("expected ics file: %v", err)
	}
	if len(b) == 0 {
		t.Fatalf("expected event content")
	}
}
