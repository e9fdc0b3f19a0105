package teaui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/notify"
	"tableflip.dev/planner/pkg/runner/tea/internal/theme"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/task"
	"tableflip.dev/planner/pkg/tree"
)

// Model states and actions
type mode int

const (
	modeNormal mode = iota
	modeInput
	modeConfirmDelete
	modeAlert
	modeHelp
)

type action int

const (
	actionNone action = iota
	actionAdd
	actionAddSub
	actionEdit
)

// Settings persists alert preferences.
type Settings interface {
	SetNotificationsEnabled(ctx context.Context, on bool) error
	SetNotificationLeadTime(ctx context.Context, d time.Duration) error
}

// Config wires the UI to the planner core.
type Config struct {
	Service   *app.Service
	Scheduler *notify.Scheduler
	Settings  Settings
	// Events, when set, triggers a reload after external writes.
	Events   <-chan store.Event
	Interval time.Duration
	Now      func() time.Time
	// CalendarDir is where .ics files are written; defaults to the working directory.
	CalendarDir string
}

// Model contains UI state
type Model struct {
	cfg   Config
	ctx   context.Context
	theme theme.Theme

	mode   mode
	action action
	input  textinput.Model

	opts      tree.Options
	sortBy    tree.SortOption
	collapsed map[string]bool
	rows      []tree.Row
	cursor    int
	targetID  string

	alert  *task.Task
	status string
	err    error

	termWidth  int
	termHeight int
}

// messages
type tickMsg time.Time
type storeEventMsg struct{ ev store.Event }
type errMsg struct{ err error }

// New creates a new UI model backed by the Service.
func New(cfg Config) Model {
	if cfg.Interval <= 0 {
		cfg.Interval = notify.DefaultInterval
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	ti := textinput.New()
	ti.Placeholder = "Title  @2025-03-05 @15:00 !high"
	ti.CharLimit = 256
	ti.Prompt = ""

	m := Model{
		cfg:       cfg,
		ctx:       context.Background(),
		theme:     theme.Default(),
		mode:      modeNormal,
		input:     ti,
		opts:      tree.DefaultOptions(),
		sortBy:    tree.SortCreatedAt,
		collapsed: map[string]bool{},
		status:    "j/k move, enter fold, x done, a add, A sub-task, e edit, d delete, ? help",
	}
	m.rebuild()
	return m
}

// Init starts the alert poll and the store watch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.waitForEvent())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.cfg.Interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) waitForEvent() tea.Cmd {
	if m.cfg.Events == nil {
		return nil
	}
	events := m.cfg.Events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return storeEventMsg{ev: ev}
	}
}

func bell() tea.Msg {
	_, _ = fmt.Fprint(os.Stderr, "\a")
	return nil
}

// rebuild recomputes visible rows from the service and keeps the cursor on
// the same task when possible.
func (m *Model) rebuild() {
	if m.cfg.Service == nil {
		m.rows = nil
		return
	}
	selected := ""
	if t, ok := m.selected(); ok {
		selected = t.ID
	}
	nodes := m.cfg.Service.View(m.opts, m.sortBy)
	m.rows = tree.Flatten(nodes, func(id string) bool { return !m.collapsed[id] })
	m.cursor = clamp(m.cursor, len(m.rows))
	for i, r := range m.rows {
		if r.Task.ID == selected {
			m.cursor = i
			break
		}
	}
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (m *Model) selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return task.Task{}, false
	}
	return m.rows[m.cursor].Task, true
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.input.Width = msg.Width - 12
	case errMsg:
		m.err = msg.err
	case tickMsg:
		cmds = append(cmds, m.poll(time.Time(msg)), m.tick())
		m.rebuild()
	case storeEventMsg:
		if msg.ev.Key == "" || msg.ev.Key == store.KeyTasks {
			if err := m.cfg.Service.Load(m.ctx); err != nil {
				m.err = err
			}
			m.rebuild()
		}
		cmds = append(cmds, m.waitForEvent())
	case tea.KeyMsg:
		switch m.mode {
		case modeAlert:
			switch msg.String() {
			case "enter", "esc", " ":
				m.acknowledge()
			}
		case modeHelp:
			m.mode = modeNormal
		case modeConfirmDelete:
			if msg.String() == "y" {
				m.apply(m.deleteSelected())
			} else {
				m.status = "Delete cancelled"
			}
			m.mode = modeNormal
		case modeInput:
			switch msg.String() {
			case "esc":
				m.mode = modeNormal
				m.action = actionNone
				m.input.Blur()
				m.status = "Cancelled"
			case "enter":
				m.apply(m.submit(m.input.Value()))
				m.mode = modeNormal
				m.action = actionNone
				m.input.Blur()
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
			}
		default:
			if cmd := m.handleKey(msg.String()); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	return m, tea.Batch(cmds...)
}

// poll asks the scheduler for a newly due task and raises the alert dialog.
func (m *Model) poll(now time.Time) tea.Cmd {
	if m.cfg.Scheduler == nil || m.cfg.Service == nil {
		return nil
	}
	t, ok := m.cfg.Scheduler.Poll(m.cfg.Service.Tasks(), m.cfg.Service.Loaded(), now)
	if !ok {
		return nil
	}
	m.alert = &t
	m.mode = modeAlert
	return bell
}

func (m *Model) acknowledge() {
	if m.cfg.Scheduler != nil {
		m.cfg.Scheduler.Acknowledge()
	}
	m.alert = nil
	m.mode = modeNormal
}

// apply records the outcome of an action in the status line.
func (m *Model) apply(status string, err error) {
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = status
	m.rebuild()
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "ctrl+c":
		return tea.Quit
	case "?":
		m.mode = modeHelp
	case "up", "k":
		m.cursor = clamp(m.cursor-1, len(m.rows))
	case "down", "j":
		m.cursor = clamp(m.cursor+1, len(m.rows))
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = clamp(len(m.rows)-1, len(m.rows))
	case "enter", "right", "l", "left", "h":
		if m.cursor < len(m.rows) && m.rows[m.cursor].HasKids {
			id := m.rows[m.cursor].Task.ID
			open := key == "right" || key == "l" || (key == "enter" && m.collapsed[id])
			m.collapsed[id] = !open
			m.rebuild()
		}
	case "x", " ":
		m.apply(m.toggleSelected())
	case "d":
		if t, ok := m.selected(); ok {
			m.mode = modeConfirmDelete
			m.targetID = t.ID
			m.status = fmt.Sprintf("Delete %q and its sub-tasks? (y/n)", t.Title)
		}
	case "a":
		return m.startInput(actionAdd, "", "")
	case "A":
		if t, ok := m.selected(); ok {
			return m.startInput(actionAddSub, t.ID, "")
		}
	case "e":
		if t, ok := m.selected(); ok {
			return m.startInput(actionEdit, t.ID, t.Title)
		}
	case "s":
		m.opts.Status = nextStatus(m.opts.Status)
		m.opts.OverdueOnly = false
		m.rebuild()
	case "p":
		m.opts.Priority = nextPriority(m.opts.Priority)
		m.opts.OverdueOnly = false
		m.rebuild()
	case "o":
		m.sortBy = nextSort(m.sortBy)
		m.rebuild()
	case "!":
		m.opts.OverdueOnly = !m.opts.OverdueOnly
		m.rebuild()
	case "n":
		m.apply(m.toggleNotifications())
	case "L":
		m.apply(m.cycleLeadTime())
	case "c":
		m.apply(m.exportCalendar())
	}
	return nil
}

func (m *Model) startInput(a action, targetID, value string) tea.Cmd {
	m.mode = modeInput
	m.action = a
	m.targetID = targetID
	m.input.Reset()
	m.input.SetValue(value)
	m.input.CursorEnd()
	return tea.Batch(m.input.Focus(), textinput.Blink)
}

func (m *Model) submit(value string) (string, error) {
	if m.cfg.Service == nil {
		return "", app.ErrNoStore
	}
	switch m.action {
	case actionAdd:
		t, err := m.cfg.Service.Add(m.ctx, parseQuickAdd(value))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Task Added! %q", t.Title), nil
	case actionAddSub:
		d := parseQuickAdd(value)
		created, err := m.cfg.Service.AddSubTasks(m.ctx, m.targetID, []task.Draft{d})
		if err != nil {
			return "", err
		}
		m.collapsed[m.targetID] = false
		return fmt.Sprintf("Sub-task Added! %q", created[0].Title), nil
	case actionEdit:
		d := parseQuickAdd(value)
		p := task.Patch{Title: &d.Title}
		if d.Priority != "" {
			p.Priority = &d.Priority
		}
		if !d.Due.IsZero() {
			p.Due = &d.Due
		}
		if d.DueTime != "" {
			p.DueTime = &d.DueTime
		}
		t, err := m.cfg.Service.Update(m.ctx, m.targetID, p)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Task Updated! %q", t.Title), nil
	}
	return "", nil
}

func (m *Model) toggleSelected() (string, error) {
	t, ok := m.selected()
	if !ok {
		return "", nil
	}
	updated, err := m.cfg.Service.Toggle(m.ctx, t.ID)
	if err != nil {
		return "", err
	}
	if updated.Completed {
		return fmt.Sprintf("Completed %q", updated.Title), nil
	}
	return fmt.Sprintf("Reopened %q", updated.Title), nil
}

func (m *Model) deleteSelected() (string, error) {
	removed, err := m.cfg.Service.Delete(m.ctx, m.targetID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Task Deleted (%d removed)", len(removed)), nil
}

func (m *Model) toggleNotifications() (string, error) {
	s := m.cfg.Scheduler
	if s == nil {
		return "", notify.ErrUnsupported
	}
	on := !s.Enabled()
	if err := s.SetEnabled(on); err != nil {
		return "", err
	}
	if m.cfg.Settings != nil {
		if err := m.cfg.Settings.SetNotificationsEnabled(m.ctx, on); err != nil {
			return "", err
		}
	}
	if on {
		return "In-App Alerts Enabled", nil
	}
	return "In-App Alerts Disabled", nil
}

func (m *Model) cycleLeadTime() (string, error) {
	s := m.cfg.Scheduler
	if s == nil {
		return "", notify.ErrUnsupported
	}
	next := notify.NextLeadTime(s.LeadTime())
	if err := s.SetLeadTime(next); err != nil {
		return "", err
	}
	if m.cfg.Settings != nil {
		if err := m.cfg.Settings.SetNotificationLeadTime(m.ctx, next); err != nil {
			return "", err
		}
	}
	return "Alert lead time: " + notify.LeadLabel(next), nil
}

func (m *Model) exportCalendar() (string, error) {
	t, ok := m.selected()
	if !ok {
		return "", nil
	}
	path := filepath.Join(m.cfg.CalendarDir, calendar.FileName(t))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	werr := calendar.Write(f, t, m.cfg.Now())
	cerr := f.Close()
	if werr != nil {
		_ = os.Remove(path)
		if errors.Is(werr, calendar.ErrNoDueDate) {
			return "", errors.New("cannot create a calendar event: the task has no due date")
		}
		return "", werr
	}
	if cerr != nil {
		return "", cerr
	}
	return "Calendar event saved to " + path, nil
}

func nextStatus(s tree.Status) tree.Status {
	all := tree.Statuses()
	for i, v := range all {
		if v == s {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func nextPriority(p task.Priority) task.Priority {
	all := tree.PriorityFilters()
	for i, v := range all {
		if v == p {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func nextSort(o tree.SortOption) tree.SortOption {
	all := tree.SortOptions()
	for i, v := range all {
		if v == o {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}
