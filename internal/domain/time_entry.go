package domain

import (
	"time"
)

// TimeEntry is one logged overtime interval.
// Date, RawHours and ConvertedHours are derived from Start, End and the
// conversion rate in force when the entry was written; they are not
// recomputed if the rate changes later.
type TimeEntry struct {
	ID             int64   `json:"id"`
	Date           string  `json:"date"`
	Start          string  `json:"start"`
	End            string  `json:"end"`
	RawHours       float64 `json:"rawHours"`
	ConvertedHours float64 `json:"convertedHours"`
	Notes          string  `json:"notes"`
}

// NewTimeEntry builds an unsaved entry (ID 0) with every derived field filled in.
func NewTimeEntry(start, end time.Time, notes string, rate float64) TimeEntry {
	rawHours := CalculateHours(start, end)
	return TimeEntry{
		Date:           FormatDate(start),
		Start:          FormatLocalDateTime(start),
		End:            FormatLocalDateTime(end),
		RawHours:       rawHours,
		ConvertedHours: rawHours * rate,
		Notes:          notes,
	}
}

// CalculateHours returns the elapsed time between start and end in hours.
func CalculateHours(start, end time.Time) float64 {
	return end.Sub(start).Hours()
}

// MonthKey returns the YYYY-MM key of the entry's Date, or "" if Date is malformed.
func (te TimeEntry) MonthKey() string {
	d, err := time.Parse(DateLayout, te.Date)
	if err != nil {
		return ""
	}
	return d.Format(MonthKeyLayout)
}

// EntryPatch is a partial TimeEntry. Nil fields are left untouched by Apply.
type EntryPatch struct {
	Date           *string
	Start          *string
	End            *string
	RawHours       *float64
	ConvertedHours *float64
	Notes          *string
}

// FullPatch returns a patch that overwrites every mutable field with e's values.
func FullPatch(e TimeEntry) EntryPatch {
	return EntryPatch{
		Date:           &e.Date,
		Start:          &e.Start,
		End:            &e.End,
		RawHours:       &e.RawHours,
		ConvertedHours: &e.ConvertedHours,
		Notes:          &e.Notes,
	}
}

// Apply merges the patch over e (shallow field overwrite). The ID never changes.
func (p EntryPatch) Apply(e TimeEntry) TimeEntry {
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Start != nil {
		e.Start = *p.Start
	}
	if p.End != nil {
		e.End = *p.End
	}
	if p.RawHours != nil {
		e.RawHours = *p.RawHours
	}
	if p.ConvertedHours != nil {
		e.ConvertedHours = *p.ConvertedHours
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	return e
}

// IsEmpty reports whether the patch changes nothing.
func (p EntryPatch) IsEmpty() bool {
	return p.Date == nil && p.Start == nil && p.End == nil &&
		p.RawHours == nil && p.ConvertedHours == nil && p.Notes == nil
}
