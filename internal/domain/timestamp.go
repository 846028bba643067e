package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the ISO calendar-day format used for TimeEntry.Date.
	DateLayout = "2006-01-02"
	// DateTimeLayout is the canonical stored form of TimeEntry.Start and End.
	DateTimeLayout = "2006-01-02T15:04:05"
	// MonthKeyLayout is the ISO month key used for grouping.
	MonthKeyLayout = "2006-01"
)

// localLayouts are the accepted zone-less inputs, interpreted in the caller's location.
var localLayouts = []string{
	"2006-01-02T15:04",
	DateTimeLayout,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// ParseLocalDateTime parses an ISO 8601 local datetime. Values carrying an
// offset (RFC3339) are converted into loc; zone-less values are read in loc.
// A nil loc means time.Local. A wall time skipped by a forward DST shift is
// moved forward by the size of the shift, so 02:30 on a spring-forward night
// becomes 03:30.
func ParseLocalDateTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty datetime")
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range localLayouts {
		wall, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return inLocation(wall, loc), nil
	}
	return time.Time{}, fmt.Errorf("unrecognised datetime %q", s)
}

// inLocation reads the wall clock of a UTC-parsed time in loc.
func inLocation(wall time.Time, loc *time.Location) time.Time {
	t := time.Date(wall.Year(), wall.Month(), wall.Day(), wall.Hour(), wall.Minute(), wall.Second(), wall.Nanosecond(), loc)
	if wallClock(t).Equal(wall) {
		return t
	}
	// wall falls in a gap; apply the offset in force before the shift
	_, before := wall.Add(-24 * time.Hour).In(loc).Zone()
	return wall.Add(-time.Duration(before) * time.Second).In(loc)
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// FormatLocalDateTime renders t in the canonical stored layout.
func FormatLocalDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// ParseDate parses a YYYY-MM-DD day at midnight in loc (time.Local when nil).
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
}

// FormatDate renders the calendar day of t.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
