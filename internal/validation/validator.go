package validation

import (
	"math"
	"strings"
	"time"

	"overtime-tracker/internal/domain"
)

// MinConversionRate is the smallest rate accepted; converted hours never shrink raw hours.
const MinConversionRate = 1.0

// Validator provides common validation utilities
type Validator struct {
	location *time.Location
}

// NewValidator creates a validator that reads zone-less timestamps in time.Local
func NewValidator() *Validator {
	return &Validator{location: time.Local}
}

// NewValidatorInLocation creates a validator that reads zone-less timestamps in loc
func NewValidatorInLocation(loc *time.Location) *Validator {
	if loc == nil {
		loc = time.Local
	}
	return &Validator{location: loc}
}

// Location returns the location used to read timestamps
func (v *Validator) Location() *time.Location {
	return v.location
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// ParseTimestamp parses an ISO 8601 local datetime
func (v *Validator) ParseTimestamp(s string) (time.Time, bool) {
	t, err := domain.ParseLocalDateTime(s, v.location)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseDay parses a YYYY-MM-DD day
func (v *Validator) ParseDay(s string) (time.Time, bool) {
	t, err := domain.ParseDate(s, v.location)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsValidTimeRange checks that end is strictly after start
func (v *Validator) IsValidTimeRange(start, end time.Time) bool {
	return end.After(start)
}

// IsValidConversionRate checks that a rate is a finite number of at least MinConversionRate
func (v *Validator) IsValidConversionRate(rate float64) bool {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return false
	}
	return rate >= MinConversionRate
}

// IsValidEntryID checks that an entry id is positive
func (v *Validator) IsValidEntryID(id int64) bool {
	return id > 0
}
