package task

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Priority is one of low, medium, high or urgent. Imported data may carry
// other values; those are kept verbatim and rank below low.
type Priority string

const (
	Low    Priority = "low"
	Medium Priority = "medium"
	High   Priority = "high"
	Urgent Priority = "urgent"
)

// Priorities lists the known priorities from most to least important.
func Priorities() []Priority {
	return []Priority{Urgent, High, Medium, Low}
}

// Rank orders priorities urgent=4, high=3, medium=2, low=1. Unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case Urgent:
		return 4
	case High:
		return 3
	case Medium:
		return 2
	case Low:
		return 1
	default:
		return 0
	}
}

// Known reports whether p is one of the four defined priorities.
func (p Priority) Known() bool {
	return p.Rank() > 0
}

// Label is the capitalized display name.
func (p Priority) Label() string {
	if p == "" {
		return "None"
	}
	r, size := utf8.DecodeRuneInString(string(p))
	if r == utf8.RuneError {
		return string(p)
	}
	return string(unicode.ToTitle(r)) + string(p)[size:]
}

func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Known() {
		return "", fmt.Errorf("%w: %q (expected low, medium, high or urgent)", ErrInvalidPriority, s)
	}
	return p, nil
}
