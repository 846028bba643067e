package sqlite

import (
	"database/sql"

	"overtime-tracker/internal/domain"
)

// entryRow mirrors one row of the entries table
type entryRow struct {
	ID             int64
	Date           string
	StartTime      string
	EndTime        string
	RawHours       float64
	ConvertedHours float64
	Notes          sql.NullString
}

func (r *entryRow) toDomain() domain.TimeEntry {
	return domain.TimeEntry{
		ID:             r.ID,
		Date:           r.Date,
		Start:          r.StartTime,
		End:            r.EndTime,
		RawHours:       r.RawHours,
		ConvertedHours: r.ConvertedHours,
		Notes:          r.Notes.String,
	}
}

// entryColumns is the select list matching ScanEntry
const entryColumns = `id, date, start_time, end_time, raw_hours, converted_hours, notes`

// conversionRateKey is the settings row holding the conversion rate
const conversionRateKey = "conversionRate"
