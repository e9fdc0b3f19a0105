package timeutil

import (
	"testing"
	"time"
)

func TestParseWindowDefault(t *testing.T) {
	dur, label, err := ParseWindow("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 7 * 24 * time.Hour
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "1w" {
		t.Fatalf("expected label 1w, got %s", label)
	}
}

func TestParseWindowComposite(t *testing.T) {
	dur, label, err := ParseWindow("1w2d6h30m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (7*24+2*24+6)*time.Hour + 30*time.Minute
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "1w2d6h30m" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseWindowInvalid(t *testing.T) {
	if _, _, err := ParseWindow("noop"); err == nil {
		t.Fatalf("expected error for invalid window")
	}
}

func TestCombineDateTime(t *testing.T) {
	date := time.Date(2025, 3, 1, 8, 12, 45, 0, time.UTC)
	got, err := CombineDateTime(date, "17:05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 3, 1, 17, 5, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if ClockOf(got) != "17:05" {
		t.Fatalf("expected clock 17:05, got %s", ClockOf(got))
	}
}

func TestCombineDateTimeInvalid(t *testing.T) {
	date := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	for _, in := range []string{"", "7pm", "24:00", "12:61"} {
		got, err := CombineDateTime(date, in)
		if err == nil {
			t.Fatalf("expected error for %q", in)
		}
		if !got.Equal(date) {
			t.Fatalf("expected original date for %q, got %v", in, got)
		}
	}
}

func TestMillisRoundTrip(t *testing.T) {
	d, err := ParseMillis("300000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 5*time.Minute {
		t.Fatalf("expected 5m, got %v", d)
	}
	if FormatMillis(d) != "300000" {
		t.Fatalf("unexpected format: %s", FormatMillis(d))
	}
	if _, err := ParseMillis("soon"); err == nil {
		t.Fatalf("expected error for non-numeric value")
	}
}

func TestParseLead(t *testing.T) {
	cases := map[string]time.Duration{
		"0":     0,
		"none":  0,
		"10":    10 * time.Minute,
		"5m":    5 * time.Minute,
		"30min": 30 * time.Minute,
	}
	for in, want := range cases {
		got, err := ParseLead(in)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("expected %v for %q, got %v", want, in, got)
		}
	}
	if _, err := ParseLead("-5"); err == nil {
		t.Fatalf("expected error for negative lead")
	}
}

func TestParseWindowSpelledOut(t *testing.T) {
	dur, label, err := ParseWindow(" 2 Days 3 hours ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dur != 51*time.Hour {
		t.Fatalf("expected 51h, got %v", dur)
	}
	if label != "2d3h" {
		t.Fatalf("expected label 2d3h, got %s", label)
	}
	for _, in := range []string{"3 fortnights", "0d", "5", "d5"} {
		if _, _, err := ParseWindow(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
	if FormatWindow(0) != "0s" {
		t.Fatalf("expected 0s, got %s", FormatWindow(0))
	}
}

func TestParseLeadRequired(t *testing.T) {
	if _, err := ParseLead("  "); err == nil {
		t.Fatalf("expected error for empty lead")
	}
}
