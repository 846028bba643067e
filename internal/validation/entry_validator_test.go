package validation

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryValidator_ValidateTimes(t *testing.T) {
	validator := NewEntryValidatorInLocation(time.UTC)

	tests := []struct {
		name        string
		start       string
		end         string
		expectError bool
		field       string
	}{
		{"Valid range", "2024-01-05T18:00", "2024-01-05T20:00", false, ""},
		{"Valid overnight range", "2024-01-05T23:00", "2024-01-06T01:30", false, ""},
		{"End equals start", "2024-01-05T18:00", "2024-01-05T18:00", true, "time_range"},
		{"End before start", "2024-01-05T18:00", "2024-01-05T17:00", true, "time_range"},
		{"Missing start", "", "2024-01-05T17:00", true, "start"},
		{"Missing end", "2024-01-05T18:00", " ", true, "end"},
		{"Unparsable start", "six pm", "2024-01-05T19:00", true, "start"},
		{"Unparsable end", "2024-01-05T18:00", "2024-01-05T25:00", true, "end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := validator.ValidateTimes(tt.start, tt.end)
			if !tt.expectError {
				require.NoError(t, err)
				assert.True(t, end.After(start))
				return
			}

			require.Error(t, err)
			ve, ok := AsValidationError(err)
			require.True(t, ok)
			assert.NotEmpty(t, ve.GetFieldErrors(tt.field))
			assert.Equal(t, InvalidTimeRangeMessage, ve.GetUserFriendlyMessage())
		})
	}
}

func TestEntryValidator_ValidateEntryForCreation(t *testing.T) {
	validator := NewEntryValidatorInLocation(time.UTC)

	_, _, err := validator.ValidateEntryForCreation("2024-01-05T18:00", "2024-01-05T19:00", 1.5)
	assert.NoError(t, err)

	_, _, err = validator.ValidateEntryForCreation("2024-01-05T18:00", "2024-01-05T19:00", 0.5)
	assert.True(t, IsValidationError(err))

	_, _, err = validator.ValidateEntryForCreation("2024-01-05T18:00", "2024-01-05T19:00", math.NaN())
	assert.True(t, IsValidationError(err))
}

func TestEntryValidator_ValidateEntryForUpdate(t *testing.T) {
	validator := NewEntryValidatorInLocation(time.UTC)

	_, _, err := validator.ValidateEntryForUpdate(3, "2024-01-05T18:00", "2024-01-05T19:00", 1.5)
	assert.NoError(t, err)

	_, _, err = validator.ValidateEntryForUpdate(0, "2024-01-05T18:00", "2024-01-05T17:00", 1.5)
	require.Error(t, err)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Len(t, ve.GetFieldErrors("id"), 1)
	assert.Len(t, ve.GetFieldErrors("time_range"), 1)
}

func TestEntryValidator_ValidateEntryID(t *testing.T) {
	validator := NewEntryValidator()

	assert.NoError(t, validator.ValidateEntryID(1))
	assert.True(t, IsValidationError(validator.ValidateEntryID(0)))
	assert.True(t, IsValidationError(validator.ValidateEntryID(-4)))
}
