package validation

import (
	"time"

	"overtime-tracker/internal/domain"
)

// MissingFilterDatesMessage is shown when only one side of a filter is given.
const MissingFilterDatesMessage = "Please select both a start and end date."

// RangeValidator validates history filter bounds
type RangeValidator struct {
	validator *Validator
}

// NewRangeValidator creates a range validator reading days in loc (time.Local when nil)
func NewRangeValidator(loc *time.Location) *RangeValidator {
	return &RangeValidator{validator: NewValidatorInLocation(loc)}
}

// ValidateFilter requires both days, each as YYYY-MM-DD. An inverted pair is
// accepted and selects nothing.
func (rv *RangeValidator) ValidateFilter(from, to string) (domain.DateRange, error) {
	validationError := NewValidationError()

	if !rv.validator.IsNonEmptyString(from) || !rv.validator.IsNonEmptyString(to) {
		validationError.AddError("date_range", ErrorTypeRequired, MissingFilterDatesMessage, nil)
		return domain.DateRange{}, validationError
	}

	start, startOK := rv.validator.ParseDay(from)
	if !startOK {
		validationError.AddInvalidFormatError("from", from, domain.DateLayout)
	}
	end, endOK := rv.validator.ParseDay(to)
	if !endOK {
		validationError.AddInvalidFormatError("to", to, domain.DateLayout)
	}

	if validationError.HasErrors() {
		return domain.DateRange{}, validationError
	}
	return domain.NewDateRange(start, end), nil
}
