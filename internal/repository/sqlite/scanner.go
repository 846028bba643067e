package sqlite

import (
	"overtime-tracker/internal/domain"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanEntry scans a single entry from a database row
func ScanEntry(scanner Scanner) (*domain.TimeEntry, error) {
	row := &entryRow{}
	err := scanner.Scan(
		&row.ID,
		&row.Date,
		&row.StartTime,
		&row.EndTime,
		&row.RawHours,
		&row.ConvertedHours,
		&row.Notes,
	)
	if err != nil {
		return nil, err
	}

	entry := row.toDomain()
	return &entry, nil
}

// ScanEntries scans multiple entries from database rows
func ScanEntries(rows Rows) ([]*domain.TimeEntry, error) {
	var entries []*domain.TimeEntry
	for rows.Next() {
		entry, err := ScanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ScanSettingValue scans the value column of a settings row
func ScanSettingValue(scanner Scanner) (*string, error) {
	var value string
	if err := scanner.Scan(&value); err != nil {
		return nil, err
	}
	return &value, nil
}
