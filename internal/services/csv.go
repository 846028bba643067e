package services

import (
	"fmt"
	"strings"

	"overtime-tracker/internal/domain"
)

// CSVHeader is the first row of every export
const CSVHeader = "Date,Start Time,End Time,Raw Hours,Converted Hours,Notes"

// FormatCSV renders entries as CSV rows joined by "\n" with no trailing
// newline. Hours use two decimals; notes are always quoted.
func FormatCSV(entries []domain.TimeEntry) string {
	var b strings.Builder
	b.WriteString(CSVHeader)
	for _, e := range entries {
		b.WriteByte('\n')
		fmt.Fprintf(&b, "%s,%s,%s,%.2f,%.2f,%s",
			e.Date, e.Start, e.End, e.RawHours, e.ConvertedHours, quoteField(e.Notes))
	}
	return b.String()
}

// quoteField wraps s in double quotes, doubling any quotes inside it
func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
