package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/task"
	"tableflip.dev/planner/pkg/timeutil"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// TaskOptions holds the editable task fields.
type TaskOptions struct {
	Description string
	DueString   string
	At          string
	Priority    string
	Parent      string
}

func AddTaskArgs(cmd *cobra.Command, o *TaskOptions) {
	cmd.Flags().StringVarP(&o.Description, "description", "d", "",
		"Longer description of the task.")
	cmd.Flags().StringVar(&o.DueString, "due", "",
		`Due date, example: --due="2025-3-5" or --due="3/5".`)
	cmd.Flags().StringVar(&o.At, "at", "",
		`Time of day the task is due, example: --at="15:00".`)
	cmd.Flags().StringVarP(&o.Priority, "priority", "p", "",
		"One of low, medium, high or urgent.")
}

func AddParentArg(cmd *cobra.Command, o *TaskOptions) {
	cmd.Flags().StringVar(&o.Parent, "parent", "",
		"Add as a sub-task of this task id.")
}

// GetDue parses the due date relative to now. A zero time means no date.
func (o *TaskOptions) GetDue(now time.Time) (time.Time, error) {
	if o.DueString == "" {
		return time.Time{}, nil
	}
	v := strings.TrimSpace(o.DueString)
	if t, err := task.ParseTime(v); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(layoutISO, v, time.Local)
	if err != nil {
		// Let the year be the same.
		t, err = time.ParseInLocation(layoutISOShort, v, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid due date %q: expected YYYY-M-D or M/D", v)
		}
		t = t.AddDate(now.Year(), 0, 0)
		// A month/day already passed this year means next year.
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		if t.Before(today) {
			t = t.AddDate(1, 0, 0)
		}
	}
	return t, nil
}

// Draft converts the flags to a draft for a new task.
func (o *TaskOptions) Draft(title string, now time.Time) (task.Draft, error) {
	d := task.Draft{Title: title, ParentID: strings.TrimSpace(o.Parent)}
	var err error
	if d.Due, err = o.GetDue(now); err != nil {
		return d, err
	}
	if o.At != "" {
		if _, err := timeutil.CombineDateTime(now, o.At); err != nil {
			return d, err
		}
		d.DueTime = o.At
		if d.Due.IsZero() {
			d.Due = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		}
	}
	if o.Priority != "" {
		if d.Priority, err = task.ParsePriority(o.Priority); err != nil {
			return d, err
		}
	}
	d.Description = o.Description
	return d, nil
}

// Patch converts the flags that were set on cmd to an update.
func (o *TaskOptions) Patch(cmd *cobra.Command, title string, clearDue bool, now time.Time) (task.Patch, error) {
	var p task.Patch
	if title != "" {
		p.Title = &title
	}
	if cmd.Flags().Changed("description") {
		p.Description = &o.Description
	}
	if clearDue {
		p.ClearDue = true
	} else if o.DueString != "" {
		due, err := o.GetDue(now)
		if err != nil {
			return p, err
		}
		p.Due = &due
	}
	if o.At != "" {
		if _, err := timeutil.CombineDateTime(now, o.At); err != nil {
			return p, err
		}
		p.DueTime = &o.At
	}
	if o.Priority != "" {
		prio, err := task.ParsePriority(o.Priority)
		if err != nil {
			return p, err
		}
		p.Priority = &prio
	}
	return p, nil
}
