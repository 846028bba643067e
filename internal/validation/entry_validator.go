package validation

import (
	"time"
)

// InvalidTimeRangeMessage is shown for any unusable start/end pair.
const InvalidTimeRangeMessage = "Invalid time range."

// EntryValidator validates the user-supplied parts of a time entry
type EntryValidator struct {
	validator *Validator
}

// NewEntryValidator creates an entry validator reading timestamps in time.Local
func NewEntryValidator() *EntryValidator {
	return &EntryValidator{validator: NewValidator()}
}

// NewEntryValidatorInLocation creates an entry validator reading timestamps in loc
func NewEntryValidatorInLocation(loc *time.Location) *EntryValidator {
	return &EntryValidator{validator: NewValidatorInLocation(loc)}
}

// ValidateTimes parses start and end and checks end > start. It returns the
// parsed times so callers can derive the entry fields without re-parsing.
func (ev *EntryValidator) ValidateTimes(start, end string) (time.Time, time.Time, error) {
	validationError := NewValidationError()

	startTime, startOK := ev.validator.ParseTimestamp(start)
	endTime, endOK := ev.validator.ParseTimestamp(end)

	if !ev.validator.IsNonEmptyString(start) {
		validationError.AddError("start", ErrorTypeRequired, InvalidTimeRangeMessage, start)
	} else if !startOK {
		validationError.AddError("start", ErrorTypeInvalidFormat, InvalidTimeRangeMessage, start)
	}

	if !ev.validator.IsNonEmptyString(end) {
		validationError.AddError("end", ErrorTypeRequired, InvalidTimeRangeMessage, end)
	} else if !endOK {
		validationError.AddError("end", ErrorTypeInvalidFormat, InvalidTimeRangeMessage, end)
	}

	if startOK && endOK && !ev.validator.IsValidTimeRange(startTime, endTime) {
		validationError.AddError("time_range", ErrorTypeInvalidRange, InvalidTimeRangeMessage, map[string]string{
			"start": start,
			"end":   end,
		})
	}

	if validationError.HasErrors() {
		return time.Time{}, time.Time{}, validationError
	}
	return startTime, endTime, nil
}

// ValidateEntryForCreation checks the times and the rate applied to them
func (ev *EntryValidator) ValidateEntryForCreation(start, end string, rate float64) (time.Time, time.Time, error) {
	startTime, endTime, err := ev.ValidateTimes(start, end)
	if err != nil {
		return startTime, endTime, err
	}
	if rateErr := ValidateConversionRate(rate); rateErr != nil {
		return time.Time{}, time.Time{}, rateErr
	}
	return startTime, endTime, nil
}

// ValidateEntryForUpdate additionally checks the entry id
func (ev *EntryValidator) ValidateEntryForUpdate(id int64, start, end string, rate float64) (time.Time, time.Time, error) {
	validationError := NewValidationError()

	if !ev.validator.IsValidEntryID(id) {
		validationError.AddInvalidValueError("id", id, "must be a positive integer")
	}

	startTime, endTime, err := ev.ValidateEntryForCreation(start, end, rate)
	if err != nil {
		if ve, ok := AsValidationError(err); ok {
			validationError.Errors = append(validationError.Errors, ve.Errors...)
		}
	}

	if validationError.HasErrors() {
		return time.Time{}, time.Time{}, validationError
	}
	return startTime, endTime, nil
}

// ValidateEntryID checks an id used for delete or edit
func (ev *EntryValidator) ValidateEntryID(id int64) error {
	if ev.validator.IsValidEntryID(id) {
		return nil
	}
	validationError := NewValidationError()
	validationError.AddInvalidValueError("id", id, "must be a positive integer")
	return validationError
}
