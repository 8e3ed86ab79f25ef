package schedule

import (
	"testing"
	"time"
)

// ref is Monday 2024-06-10.
var ref = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

func TestResolveDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"tomorrow", "can we do tomorrow?", "2024-06-11", true},
		{"tomorrow beats weekday", "tomorrow, not Friday", "2024-06-11", true},
		{"weekday", "how about Tuesday at 10?", "2024-06-11", true},
		{"weekday later in week", "Friday works for me", "2024-06-14", true},
		{"same weekday rolls a week", "Monday please", "2024-06-17", true},
		{"next weekday", "next Tuesday at 10am", "2024-06-18", true},
		{"next same weekday", "next Monday", "2024-06-24", true},
		{"no date", "sounds good to me", "", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ResolveDate(tc.text, ref)
			if ok != tc.ok {
				t.Fatalf("ResolveDate(%q) ok = %v, want %v", tc.text, ok, tc.ok)
			}
			if got != tc.want {
				t.Fatalf("ResolveDate(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestResolveTime(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"am", "10am works", "10:00", true},
		{"pm with minutes", "2:30pm", "14:30", true},
		{"noon", "12pm", "12:00", true},
		{"midnight", "12am", "00:00", true},
		{"twenty four hour", "14:00 is fine", "14:00", true},
		{"bare hour", "at 9 then", "09:00", true},
		{"hour out of range", "25:00", "", false},
		{"minute out of range", "how about 9:75", "", false},
		{"last valid minute", "10:59pm", "22:59", true},
		{"no time", "whenever works", "", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ResolveTime(tc.text)
			if ok != tc.ok {
				t.Fatalf("ResolveTime(%q) ok = %v, want %v", tc.text, ok, tc.ok)
			}
			if got != tc.want {
				t.Fatalf("ResolveTime(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestResolveDateTime(t *testing.T) {
	t.Parallel()

	date, timeOfDay := ResolveDateTime("how about Tuesday at 10am?", ref)
	if date != "2024-06-11" || timeOfDay != "10:00" {
		t.Fatalf("ResolveDateTime() = (%q, %q), want (2024-06-11, 10:00)", date, timeOfDay)
	}

	date, timeOfDay = ResolveDateTime("Tuesday sometime?", ref)
	if date != "2024-06-11" || timeOfDay != "" {
		t.Fatalf("expected date only, got (%q, %q)", date, timeOfDay)
	}

	date, timeOfDay = ResolveDateTime("10am any day", ref)
	if date != "" || timeOfDay != "10:00" {
		t.Fatalf("expected time only, got (%q, %q)", date, timeOfDay)
	}
}
