// Package calendar renders a task as a one-hour iCalendar event.
package calendar

import (
	"errors"
	"io"
	"regexp"
	"time"

	ics "github.com/arran4/golang-ical"

	"tableflip.dev/planner/pkg/task"
)

const (
	productID     = "-//tableflip.dev//planner//EN"
	eventDuration = time.Hour
)

var ErrNoDueDate = errors.New("calendar: task has no due date")

var whitespace = regexp.MustCompile(`\s+`)

// FileName is the title with whitespace runs replaced by "_" plus ".ics".
func FileName(t task.Task) string {
	return whitespace.ReplaceAllString(t.Title, "_") + ".ics"
}

// Event builds the calendar for t. stamp is used for DTSTAMP.
func Event(t task.Task, stamp time.Time) (*ics.Calendar, error) {
	if !t.DueDate.Set() {
		return nil, ErrNoDueDate
	}
	start := t.DueDate.UTC()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)

	event := cal.AddEvent(t.ID)
	event.SetDtStampTime(stamp.UTC())
	if !t.CreatedAt.IsZero() {
		event.SetCreatedTime(t.CreatedAt.UTC())
	}
	event.SetStartAt(start)
	event.SetEndAt(start.Add(eventDuration))
	event.SetSummary(t.Title)
	if t.Description != "" {
		event.SetDescription(t.Description)
	}
	return cal, nil
}

// Write serializes the event for t to w.
func Write(w io.Writer, t task.Task, stamp time.Time) error {
	cal, err := Event(t, stamp)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, cal.Serialize())
	return err
}
