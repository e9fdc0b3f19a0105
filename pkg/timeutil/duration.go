package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// DefaultWindow is the stats window when none is given.
const DefaultWindow = "1w"

const (
	day  = 24 * time.Hour
	week = 7 * day
)

// spans lists the window units from largest to smallest. The first name is
// the one FormatWindow prints.
var spans = []struct {
	size  time.Duration
	names []string
}{
	{week, []string{"w", "wk", "wks", "week", "weeks"}},
	{day, []string{"d", "day", "days"}},
	{time.Hour, []string{"h", "hr", "hrs", "hour", "hours"}},
	{time.Minute, []string{"m", "min", "mins", "minute", "minutes"}},
	{time.Second, []string{"s", "sec", "secs", "second", "seconds"}},
}

func spanOf(name string) (time.Duration, bool) {
	for _, s := range spans {
		for _, n := range s.names {
			if n == name {
				return s.size, true
			}
		}
	}
	return 0, false
}

// ParseWindow reads a stats window such as "1w", "3 days" or "1w2d6h" and
// returns it with its compact label. An empty input means DefaultWindow.
func ParseWindow(input string) (time.Duration, string, error) {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		in = DefaultWindow
	}

	var total time.Duration
	rest := in
	for rest != "" {
		count, unit, tail := splitTerm(rest)
		if count == "" || unit == "" {
			return 0, "", fmt.Errorf("invalid window %q near %q", input, strings.TrimSpace(rest))
		}
		n, err := strconv.ParseInt(count, 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid window count %q: %w", count, err)
		}
		size, ok := spanOf(unit)
		if !ok {
			return 0, "", fmt.Errorf("unknown window unit %q", unit)
		}
		total += time.Duration(n) * size
		rest = tail
	}
	if total <= 0 {
		return 0, "", fmt.Errorf("window %q must be longer than zero", input)
	}
	return total, FormatWindow(total), nil
}

// splitTerm peels one "<digits><letters>" term, allowing blanks around
// either part.
func splitTerm(s string) (count, unit, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if i <= 0 {
		return "", "", s
	}
	count, s = s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
	j := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
	if j < 0 {
		j = len(s)
	}
	return count, s[:j], strings.TrimLeftFunc(s[j:], unicode.IsSpace)
}

// FormatWindow prints d with the largest units first, for example "1w2d".
func FormatWindow(d time.Duration) string {
	var b strings.Builder
	for _, s := range spans {
		if d < s.size {
			continue
		}
		fmt.Fprintf(&b, "%d%s", d/s.size, s.names[0])
		d %= s.size
	}
	if b.Len() == 0 {
		return "0s"
	}
	return b.String()
}

// ParseLead reads an alert lead time. It takes "0" or "none", a bare count
// of minutes, or a window such as "5m".
func ParseLead(input string) (time.Duration, error) {
	in := strings.TrimSpace(input)
	switch {
	case in == "":
		return 0, fmt.Errorf("lead time is required")
	case in == "0" || strings.EqualFold(in, "none"):
		return 0, nil
	}
	if minutes, err := strconv.Atoi(in); err == nil {
		if minutes < 0 {
			return 0, fmt.Errorf("lead time must not be negative")
		}
		return time.Duration(minutes) * time.Minute, nil
	}
	d, _, err := ParseWindow(in)
	return d, err
}

// ParseMillis reads a stored lead time in milliseconds.
func ParseMillis(v string) (time.Duration, error) {
	ms, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid millisecond value %q: %w", v, err)
	}
	if ms < 0 {
		return 0, fmt.Errorf("invalid millisecond value %q: must not be negative", v)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// FormatMillis is the inverse of ParseMillis.
func FormatMillis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10)
}
