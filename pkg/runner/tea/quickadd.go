package teaui

import (
	"strings"
	"time"

	"tableflip.dev/planner/pkg/task"
)

// parseQuickAdd reads "title words @2025-03-05 @15:00 !high" into a draft.
// Tokens that do not parse stay part of the title.
func parseQuickAdd(line string) task.Draft {
	var d task.Draft
	var words []string
	for _, tok := range strings.Fields(line) {
		switch {
		case strings.HasPrefix(tok, "!"):
			if p, err := task.ParsePriority(tok[1:]); err == nil {
				d.Priority = p
				continue
			}
		case strings.HasPrefix(tok, "@"):
			v := tok[1:]
			if day, err := time.ParseInLocation("2006-01-02", v, time.Local); err == nil {
				d.Due = day
				continue
			}
			if _, err := time.Parse("15:04", v); err == nil {
				d.DueTime = v
				continue
			}
		}
		words = append(words, tok)
	}
	d.Title = strings.Join(words, " ")
	if d.DueTime != "" && d.Due.IsZero() {
		now := time.Now()
		d.Due = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	}
	return d
}
