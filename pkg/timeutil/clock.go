package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// CombineDateTime returns date with its hour and minute replaced by the
// "HH:mm" value in hhmm. Seconds are cleared.
func CombineDateTime(date time.Time, hhmm string) (time.Time, error) {
	clock, err := time.Parse("15:04", strings.TrimSpace(hhmm))
	if err != nil {
		return date, fmt.Errorf("invalid time of day %q: expected HH:mm", hhmm)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, date.Location()), nil
}

// ClockOf formats the time of day of t as "HH:mm".
func ClockOf(t time.Time) string {
	return t.Format("15:04")
}
