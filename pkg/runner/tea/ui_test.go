package teaui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/notify"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/task"
	"tableflip.dev/planner/pkg/tree"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type memStore struct {
	tasks []task.Task
}

func (m *memStore) Load(context.Context) ([]task.Task, error) {
	if m.tasks == nil {
		return nil, store.ErrNotFound
	}
	return append([]task.Task(nil), m.tasks...), nil
}

func (m *memStore) SaveAll(_ context.Context, tasks []task.Task) error {
	m.tasks = append([]task.Task(nil), tasks...)
	return nil
}

type memSettings struct {
	enabled bool
	lead    time.Duration
}

func (s *memSettings) SetNotificationsEnabled(_ context.Context, on bool) error {
	s.enabled = on
	return nil
}

func (s *memSettings) SetNotificationLeadTime(_ context.Context, d time.Duration) error {
	s.lead = d
	return nil
}

func newTestModel(t *testing.T) (Model, *app.Service, *memSettings) {
	t.Helper()
	svc := &app.Service{Store: &memStore{}, Now: func() time.Time { return testNow }}
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	settings := &memSettings{}
	m := New(Config{
		Service:     svc,
		Scheduler:   notify.NewScheduler(notify.PermissionGranted, time.Second),
		Settings:    settings,
		Now:         func() time.Time { return testNow },
		CalendarDir: t.TempDir(),
	})
	return m, svc, settings
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func rowIDs(m Model) []string {
	ids := make([]string, 0, len(m.rows))
	for _, r := range m.rows {
		ids = append(ids, r.Task.ID)
	}
	return ids
}

func TestNewBuildsTreeNewestFirst(t *testing.T) {
	m, _, _ := newTestModel(t)

	got := strings.Join(rowIDs(m), ",")
	if got != "5,2,7,1,4,3,6" {
		t.Fatalf("expected rows 5,2,7,1,4,3,6, got %s", got)
	}
	if m.rows[4].Depth != 1 {
		t.Fatalf("expected sub-task at depth 1, got %d", m.rows[4].Depth)
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(m, "k")
	if m.cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", m.cursor)
	}
	m = press(m, "j", "j")
	if m.cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", m.cursor)
	}
	m = press(m, "G", "j")
	if m.cursor != len(m.rows)-1 {
		t.Fatalf("expected cursor on last row, got %d", m.cursor)
	}
}

func TestCollapseHidesSubTasks(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(m, "j", "j", "j")
	if m.rows[m.cursor].Task.ID != "1" {
		t.Fatalf("expected cursor on task 1, got %s", m.rows[m.cursor].Task.ID)
	}
	m = press(m, "h")
	if len(m.rows) != 6 {
		t.Fatalf("expected 6 rows after collapse, got %d", len(m.rows))
	}
	m = press(m, "enter")
	if len(m.rows) != 7 {
		t.Fatalf("expected 7 rows after expand, got %d", len(m.rows))
	}
}

func TestToggleMarksSelectedDone(t *testing.T) {
	m, svc, _ := newTestModel(t)

	m = press(m, "x")
	got, err := svc.Get("5")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Completed || !got.CompletionDate.Set() {
		t.Fatalf("expected task 5 completed with a completion date, got %+v", got)
	}
	if !strings.Contains(m.status, "Completed") {
		t.Fatalf("expected completion status, got %q", m.status)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m, svc, _ := newTestModel(t)
	m = press(m, "j", "j", "j")

	m = press(m, "d", "n")
	if len(svc.Tasks()) != 7 {
		t.Fatalf("expected cancel to keep 7 tasks, got %d", len(svc.Tasks()))
	}

	m = press(m, "d", "y")
	if len(svc.Tasks()) != 5 {
		t.Fatalf("expected task and sub-task removed, got %d tasks", len(svc.Tasks()))
	}
	for _, id := range rowIDs(m) {
		if id == "1" || id == "4" {
			t.Fatalf("expected %s gone from rows", id)
		}
	}
}

func TestQuickAddCreatesTask(t *testing.T) {
	m, svc, _ := newTestModel(t)

	m = press(m, "a")
	if m.mode != modeInput {
		t.Fatalf("expected input mode, got %v", m.mode)
	}
	m = press(m, "Write report @2025-03-04 @09:30 !high", "enter")
	if m.mode != modeNormal {
		t.Fatalf("expected normal mode after submit, got %v", m.mode)
	}

	var found *task.Task
	for _, tk := range svc.Tasks() {
		if tk.Title == "Write report" {
			tk := tk
			found = &tk
		}
	}
	if found == nil {
		t.Fatalf("expected new task, got %v", svc.Tasks())
	}
	if found.Priority != task.High {
		t.Fatalf("expected high priority, got %s", found.Priority)
	}
	due := found.DueDate.Instant().Local()
	if due.Day() != 4 || due.Hour() != 9 || due.Minute() != 30 {
		t.Fatalf("expected due 2025-03-04 09:30, got %v", due)
	}
}

func TestAddSubTaskExpandsParent(t *testing.T) {
	m, svc, _ := newTestModel(t)

	m = press(m, "A", "Draft agenda", "enter")
	if m.err != nil {
		t.Fatalf("unexpected error: %v", m.err)
	}
	children := tree.ChildrenOf(svc.Tasks(), "5")
	if len(children) != 1 || children[0].Title != "Draft agenda" {
		t.Fatalf("expected one sub-task of 5, got %v", children)
	}
	if m.rows[1].Task.ParentID != "5" {
		t.Fatalf("expected sub-task rendered under 5, got %+v", m.rows[1].Task)
	}
}

func TestShortTitleReportsError(t *testing.T) {
	m, svc, _ := newTestModel(t)

	m = press(m, "a", "ab", "enter")
	if m.err == nil {
		t.Fatalf("expected an error for a short title")
	}
	if len(svc.Tasks()) != 7 {
		t.Fatalf("expected no task added, got %d", len(svc.Tasks()))
	}
}

func TestOverdueOnlyAndStatusCycle(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(m, "!")
	if got := strings.Join(rowIDs(m), ","); got != "5" {
		t.Fatalf("expected only task 5, got %s", got)
	}
	if strings.Contains(m.View(), "overdue task(s)") {
		t.Fatalf("expected no banner in overdue-only view")
	}

	m = press(m, "s")
	if m.opts.OverdueOnly {
		t.Fatalf("expected status change to clear overdue-only")
	}
	if m.opts.Status != tree.StatusActive {
		t.Fatalf("expected active status, got %s", m.opts.Status)
	}
	if len(m.rows) != 5 {
		t.Fatalf("expected 5 active rows, got %d", len(m.rows))
	}
}

func TestViewShowsOverdueBanner(t *testing.T) {
	m, _, _ := newTestModel(t)

	view := m.View()
	if !strings.Contains(view, "You have 1 overdue task(s).") {
		t.Fatalf("expected overdue banner, got:\n%s", view)
	}
	if !strings.Contains(view, "Fix login issue on mobile app") {
		t.Fatalf("expected task title in view")
	}
}

func TestNotificationsPersist(t *testing.T) {
	m, _, settings := newTestModel(t)

	m = press(m, "n")
	if !m.cfg.Scheduler.Enabled() || !settings.enabled {
		t.Fatalf("expected alerts enabled and persisted")
	}
	m = press(m, "L")
	if settings.lead != 5*time.Minute || m.cfg.Scheduler.LeadTime() != 5*time.Minute {
		t.Fatalf("expected 5 minute lead time after the 1 minute default, got %v", settings.lead)
	}
	m = press(m, "n")
	if settings.enabled {
		t.Fatalf("expected alerts disabled")
	}
}

func TestTickRaisesAlert(t *testing.T) {
	m, svc, _ := newTestModel(t)
	m = press(m, "n")

	legal, err := svc.Get("7")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	next, cmd := m.Update(tickMsg(legal.DueDate.Instant()))
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("expected commands after tick")
	}
	if m.mode != modeAlert || m.alert == nil || m.alert.ID != "7" {
		t.Fatalf("expected alert for task 7, got mode %v", m.mode)
	}
	if !strings.Contains(m.View(), "Task Due: Call with the legal team") {
		t.Fatalf("expected alert dialog, got:\n%s", m.View())
	}

	m = press(m, "enter")
	if m.mode != modeNormal {
		t.Fatalf("expected alert acknowledged")
	}
	if _, pending := m.cfg.Scheduler.Pending(); pending {
		t.Fatalf("expected no pending alert")
	}

	next, _ = m.Update(tickMsg(legal.DueDate.Instant()))
	if next.(Model).mode == modeAlert {
		t.Fatalf("expected a task to alert only once")
	}
}

func TestCalendarExport(t *testing.T) {
	m, svc, _ := newTestModel(t)

	m = press(m, "c")
	if m.err != nil {
		t.Fatalf("unexpected error: %v", m.err)
	}
	fixed, _ := svc.Get("5")
	b, err := os.ReadFile(filepath.Join(m.cfg.CalendarDir, calendar.FileName(fixed)))
	if err != nil {
		t.Fatalf("expected calendar file: %v", err)
	}
	if !strings.Contains(string(b), "BEGIN:VEVENT") {
		t.Fatalf("expected an event, got %s", b)
	}

	// task 6 has no due date
	m = press(m, "G", "c")
	if m.err == nil {
		t.Fatalf("expected an error exporting a task without a due date")
	}
}
