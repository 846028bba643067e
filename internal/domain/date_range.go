package domain

import "time"

// DateRange is an inclusive calendar-day range. Start is held at the first
// instant of its day and End at 23:59:59.999 of its day.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange widens start and end to whole days.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{
		Start: StartOfDay(start),
		End:   EndOfDay(end),
	}
}

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of t's day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// Contains reports whether the calendar day date (YYYY-MM-DD) falls inside
// the range. Malformed dates are never contained.
func (r DateRange) Contains(date string) bool {
	d, err := ParseDate(date, r.Start.Location())
	if err != nil {
		return false
	}
	return !d.Before(r.Start) && !d.After(r.End)
}

// StartDate returns the first day as YYYY-MM-DD.
func (r DateRange) StartDate() string {
	return FormatDate(r.Start)
}

// EndDate returns the last day as YYYY-MM-DD.
func (r DateRange) EndDate() string {
	return FormatDate(r.End)
}

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}
