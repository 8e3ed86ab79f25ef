package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Natural-language date/time resolution. Pure functions over the utterance
// text and the conversation's reference timestamp; date and time resolve
// independently, so either side may come back unresolved.

var weekdayNames = []struct {
	name string
	day  time.Weekday
}{
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
	{"wednesday", time.Wednesday},
	{"thursday", time.Thursday},
	{"friday", time.Friday},
	{"saturday", time.Saturday},
	{"sunday", time.Sunday},
}

var timePattern = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)

// ResolveDate resolves a date mention relative to ref. "tomorrow" takes
// precedence over weekday names. A bare weekday name always resolves to the
// next occurrence, never today; the word "next" pushes it one further week
// out, so "next Tuesday" on a Monday is the Tuesday of the following week.
func ResolveDate(text string, ref time.Time) (string, bool) {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "tomorrow") {
		return ref.AddDate(0, 0, 1).Format(DateLayout), true
	}

	for _, wd := range weekdayNames {
		if !strings.Contains(lower, wd.name) {
			continue
		}
		daysAhead := (int(wd.day) - int(ref.Weekday()) + 7) % 7
		if daysAhead == 0 {
			daysAhead = 7
		}
		if strings.Contains(lower, "next") {
			daysAhead += 7
		}
		return ref.AddDate(0, 0, daysAhead).Format(DateLayout), true
	}

	return "", false
}

// ResolveTime resolves a time mention to canonical HH:MM. The minute defaults
// to 00, "pm" adds 12 unless the hour already is 12, and "12am" maps to 00:00.
// A bare hour with no marker is taken literally; hours past 23 and minutes
// past 59 do not resolve.
func ResolveTime(text string) (string, bool) {
	match := timePattern.FindStringSubmatch(strings.ToLower(text))
	if match == nil {
		return "", false
	}

	hour, err := strconv.Atoi(match[1])
	if err != nil {
		return "", false
	}
	minute := match[2]
	if minute == "" {
		minute = "00"
	} else if m, err := strconv.Atoi(minute); err != nil || m > 59 {
		return "", false
	}

	switch match[3] {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}

	if hour > 23 {
		return "", false
	}
	return fmt.Sprintf("%02d:%s", hour, minute), true
}

// ResolveDateTime resolves both parts; either may come back empty.
func ResolveDateTime(text string, ref time.Time) (date string, timeOfDay string) {
	if d, ok := ResolveDate(text, ref); ok {
		date = d
	}
	if t, ok := ResolveTime(text); ok {
		timeOfDay = t
	}
	return date, timeOfDay
}
