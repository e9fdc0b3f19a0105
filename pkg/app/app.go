package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/task"
	"tableflip.dev/planner/pkg/tree"
)

// Store persists the whole collection.
type Store interface {
	Load(ctx context.Context) ([]task.Task, error)
	SaveAll(ctx context.Context, tasks []task.Task) error
}

// Service owns the in-memory collection. Every mutation is a pure list
// transform followed by a single SaveAll; if saving fails the collection is
// left as it was.
type Service struct {
	Store Store
	// Now and NewID default to time.Now and task.NewID.
	Now   func() time.Time
	NewID func() string

	mu     sync.RWMutex
	tasks  []task.Task
	loaded bool
}

var (
	ErrNoStore       = errors.New("app: no persistence configured")
	ErrParentMissing = errors.New("app: parent task not found")
)

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return task.NewID()
}

// Load reads the collection. When nothing is stored, or the stored value
// cannot be decoded, the demo tasks are used instead and written back.
func (s *Service) Load(ctx context.Context) error {
	if s.Store == nil {
		return ErrNoStore
	}
	tasks, err := s.Store.Load(ctx)
	seeded := false
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
		fmt.Fprintf(os.Stderr, "app: no saved tasks, starting with the demo list\n")
		tasks, seeded = task.Seed(s.now()), true
	case errors.Is(err, store.ErrCorrupt):
		fmt.Fprintf(os.Stderr, "app: saved tasks unreadable, starting with the demo list: %v\n", err)
		tasks, seeded = task.Seed(s.now()), true
	default:
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = s.normalize(tasks)
	s.loaded = true
	if seeded {
		if err := s.Store.SaveAll(ctx, s.tasks); err != nil {
			fmt.Fprintf(os.Stderr, "app: saving demo list: %v\n", err)
		}
	}
	return nil
}

func (s *Service) normalize(tasks []task.Task) []task.Task {
	out := make([]task.Task, len(tasks))
	copy(out, tasks)
	now := s.now()
	for i := range out {
		if out[i].CreatedAt.IsZero() {
			out[i].CreatedAt = task.Timestamp{Time: now}
		}
	}
	return out
}

// Tasks returns a copy of the collection in stored order.
func (s *Service) Tasks() []task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Loaded reports whether Load has completed.
func (s *Service) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *Service) Get(id string) (task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := task.Find(s.tasks, id)
	if !ok {
		return task.Task{}, fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	return t, nil
}

// commit persists next and makes it current. Callers hold s.mu.
func (s *Service) commit(ctx context.Context, next []task.Task) error {
	if s.Store == nil {
		return ErrNoStore
	}
	if err := s.Store.SaveAll(ctx, next); err != nil {
		return err
	}
	s.tasks = next
	return nil
}

// Add creates a task. A parent, when given, must exist.
func (s *Service) Add(ctx context.Context, d task.Draft) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ParentID != "" {
		if _, ok := task.Find(s.tasks, d.ParentID); !ok {
			return task.Task{}, fmt.Errorf("%w: %s", ErrParentMissing, d.ParentID)
		}
	}
	t, err := task.New(d, s.now(), s.newID())
	if err != nil {
		return task.Task{}, err
	}
	if err := s.commit(ctx, task.Append(s.tasks, t)); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

// AddSubTasks creates one sub-task of parentID per draft. Either all are
// added or none.
func (s *Service) AddSubTasks(ctx context.Context, parentID string, drafts []task.Draft) ([]task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := task.Find(s.tasks, parentID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrParentMissing, parentID)
	}
	now := s.now()
	created := make([]task.Task, 0, len(drafts))
	for _, d := range drafts {
		d.ParentID = parentID
		t, err := task.New(d, now, s.newID())
		if err != nil {
			return nil, err
		}
		created = append(created, t)
	}
	if err := s.commit(ctx, task.Append(s.tasks, created...)); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, p task.Patch) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, t, err := task.Update(s.tasks, id, p)
	if err != nil {
		return task.Task{}, err
	}
	if err := s.commit(ctx, next); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

// Toggle flips completion of id.
func (s *Service) Toggle(ctx context.Context, id string) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, t, err := task.Toggle(s.tasks, id, s.now())
	if err != nil {
		return task.Task{}, err
	}
	if err := s.commit(ctx, next); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

// Delete removes id and its direct sub-tasks, returning what was removed.
func (s *Service) Delete(ctx context.Context, id string) ([]task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, removed, err := task.Delete(s.tasks, id)
	if err != nil {
		return nil, err
	}
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	return removed, nil
}

// Replace swaps the whole collection, as after an import.
func (s *Service) Replace(ctx context.Context, tasks []task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.normalize(tasks)
	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.loaded = true
	return nil
}

// View returns the filtered, sorted display tree.
func (s *Service) View(opts tree.Options, by tree.SortOption) []*tree.Node {
	return tree.View(s.Tasks(), opts, by, s.now())
}

// Overdue lists open tasks past their due date, in stored order.
func (s *Service) Overdue() []task.Task {
	return tree.Filter(s.Tasks(), tree.Options{OverdueOnly: true}, s.now())
}
