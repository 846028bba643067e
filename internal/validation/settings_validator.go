package validation

import (
	"strconv"
	"strings"
)

// InvalidRateMessage is shown when a conversion rate is rejected.
const InvalidRateMessage = "Please enter a valid conversion rate (e.g., 1.5)."

// ValidateConversionRate rejects NaN, infinities and rates below MinConversionRate
func ValidateConversionRate(rate float64) error {
	if NewValidator().IsValidConversionRate(rate) {
		return nil
	}
	validationError := NewValidationError()
	validationError.AddError("conversion_rate", ErrorTypeInvalidValue, InvalidRateMessage, rate)
	return validationError
}

// ParseConversionRate parses user text into a validated rate
func ParseConversionRate(s string) (float64, error) {
	rate, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		validationError := NewValidationError()
		validationError.AddError("conversion_rate", ErrorTypeInvalidFormat, InvalidRateMessage, s)
		return 0, validationError
	}
	if err := ValidateConversionRate(rate); err != nil {
		return 0, err
	}
	return rate, nil
}
