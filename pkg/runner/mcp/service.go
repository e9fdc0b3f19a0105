// Package mcp provides the Model Context Protocol server integration for planner.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/task"
	"tableflip.dev/planner/pkg/tree"
)

const dateLayout = "2006-01-02"

// Service adapts the application service to transport-friendly values.
type Service struct {
	App *app.Service
	Now func() time.Time
}

// TaskDTO is a transport-friendly projection of a task.
type TaskDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority"`
	Completed   bool   `json:"completed"`
	Overdue     bool   `json:"overdue"`
	DueISO      string `json:"dueDate,omitempty"`
	CompletedAt string `json:"completionDate,omitempty"`
	CreatedISO  string `json:"createdAt"`
	ParentID    string `json:"parentId,omitempty"`
	Depth       int    `json:"depth"`
	SubTasks    int    `json:"subTasks,omitempty"`
}

// ListOptions selects and orders tasks.
type ListOptions struct {
	Status      string
	Priority    string
	Sort        string
	OverdueOnly bool
}

// CreateOptions captures the parameters used to create a task.
type CreateOptions struct {
	Title       string
	Description string
	Due         string
	DueTime     string
	Priority    string
	ParentID    string
}

// UpdateOptions captures an edit; nil fields are unchanged.
type UpdateOptions struct {
	ID          string
	Title       *string
	Description *string
	Due         *string
	Priority    *string
}

// NewService builds a service wrapper around svc.
func NewService(svc *app.Service) *Service {
	return &Service{App: svc}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) ready() error {
	if s.App == nil {
		return errors.New("planner service is not configured")
	}
	return nil
}

// ListTasks returns the display tree flattened depth first.
func (s *Service) ListTasks(_ context.Context, opts ListOptions) ([]TaskDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	status, err := tree.ParseStatus(opts.Status)
	if err != nil {
		return nil, err
	}
	priority, err := tree.ParsePriorityFilter(opts.Priority)
	if err != nil {
		return nil, err
	}
	by, err := tree.ParseSortOption(opts.Sort)
	if err != nil {
		return nil, err
	}
	nodes := s.App.View(tree.Options{Status: status, Priority: priority, OverdueOnly: opts.OverdueOnly}, by)
	rows := tree.Flatten(nodes, nil)
	out := make([]TaskDTO, 0, len(rows))
	for _, r := range rows {
		dto := s.toDTO(r.Task)
		dto.Depth = r.Depth
		out = append(out, dto)
	}
	return out, nil
}

// TaskByID returns one task with its direct sub-tasks counted.
func (s *Service) TaskByID(_ context.Context, id string) (*TaskDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	t, err := s.App.Get(id)
	if err != nil {
		return nil, err
	}
	dto := s.toDTO(t)
	dto.SubTasks = len(tree.ChildrenOf(s.App.Tasks(), id))
	return &dto, nil
}

func (s *Service) CreateTask(ctx context.Context, opts CreateOptions) (*TaskDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	d, err := s.draft(opts)
	if err != nil {
		return nil, err
	}
	t, err := s.App.Add(ctx, d)
	if err != nil {
		return nil, err
	}
	dto := s.toDTO(t)
	return &dto, nil
}

// AddSubtasks creates one sub-task per title under parentID.
func (s *Service) AddSubtasks(ctx context.Context, parentID string, titles []string) ([]TaskDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if len(titles) == 0 {
		return nil, errors.New("at least one title is required")
	}
	drafts := make([]task.Draft, 0, len(titles))
	for _, title := range titles {
		drafts = append(drafts, task.Draft{Title: title})
	}
	created, err := s.App.AddSubTasks(ctx, parentID, drafts)
	if err != nil {
		return nil, err
	}
	return s.toDTOs(created), nil
}

func (s *Service) UpdateTask(ctx context.Context, opts UpdateOptions) (*TaskDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	p := task.Patch{Title: opts.Title, Description: opts.Description}
	if opts.Priority != nil {
		pr, err := task.ParsePriority(*opts.Priority)
		if err != nil {
			return nil, err
		}
		p.Priority = &pr
	}
	if opts.Due != nil {
		if strings.TrimSpace(*opts.Due) == "" {
			p.ClearDue = true
		} else {
			due, err := ParseDue(*opts.Due)
			if err != nil {
				return nil, err
			}
			p.Due = &due
		}
	}
	t, err := s.App.Update(ctx, opts.ID, p)
	if err != nil {
		return nil, err
	}
	dto := s.toDTO(t)
	return &dto, nil
}

func (s *Service) ToggleTask(ctx context.Context, id string) (*TaskDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	t, err := s.App.Toggle(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := s.toDTO(t)
	return &dto, nil
}

// DeleteTask removes id and its direct sub-tasks.
func (s *Service) DeleteTask(ctx context.Context, id string) ([]TaskDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	removed, err := s.App.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDTOs(removed), nil
}

func (s *Service) OverdueTasks(_ context.Context) ([]TaskDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.toDTOs(s.App.Overdue()), nil
}

func (s *Service) Stats(_ context.Context) (app.Stats, error) {
	if err := s.ready(); err != nil {
		return app.Stats{}, err
	}
	return s.App.Stats(), nil
}

func (s *Service) draft(opts CreateOptions) (task.Draft, error) {
	d := task.Draft{
		Title:       opts.Title,
		Description: opts.Description,
		DueTime:     opts.DueTime,
		ParentID:    opts.ParentID,
	}
	if strings.TrimSpace(opts.Priority) != "" {
		p, err := task.ParsePriority(opts.Priority)
		if err != nil {
			return d, err
		}
		d.Priority = p
	}
	if strings.TrimSpace(opts.Due) != "" {
		due, err := ParseDue(opts.Due)
		if err != nil {
			return d, err
		}
		d.Due = due
	}
	return d, nil
}

// ParseDue accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date in the
// local zone.
func ParseDue(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := task.ParseTime(v); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(dateLayout, v, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q: expected YYYY-MM-DD or RFC3339", v)
	}
	return t, nil
}

func (s *Service) toDTOs(tasks []task.Task) []TaskDTO {
	out := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, s.toDTO(t))
	}
	return out
}

func (s *Service) toDTO(t task.Task) TaskDTO {
	dto := TaskDTO{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Completed:   t.Completed,
		Overdue:     t.Overdue(s.now()),
		CreatedISO:  task.FormatTime(t.CreatedAt.Time),
		ParentID:    t.ParentID,
	}
	if t.DueDate.Set() {
		dto.DueISO = task.FormatTime(t.DueDate.Time)
	}
	if t.CompletionDate.Set() {
		dto.CompletedAt = task.FormatTime(t.CompletionDate.Time)
	}
	return dto
}
