package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeValidator_ValidateFilter(t *testing.T) {
	validator := NewRangeValidator(time.UTC)

	r, err := validator.ValidateFilter("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", r.StartDate())
	assert.Equal(t, "2024-01-31", r.EndDate())
	assert.True(t, r.Contains("2024-01-31"))

	r, err = validator.ValidateFilter("2024-01-15", "2024-01-15")
	require.NoError(t, err)
	assert.True(t, r.Contains("2024-01-15"))

	// inverted bounds are accepted but match no day
	r, err = validator.ValidateFilter("2024-02-01", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", r.StartDate())
	assert.Equal(t, "2024-01-01", r.EndDate())
	assert.False(t, r.Contains("2024-01-15"))
	assert.False(t, r.Contains("2024-02-01"))
}

func TestRangeValidator_Rejects(t *testing.T) {
	validator := NewRangeValidator(time.UTC)

	tests := []struct {
		name    string
		from    string
		to      string
		message string
	}{
		{"missing from", "", "2024-01-31", MissingFilterDatesMessage},
		{"missing to", "2024-01-01", "", MissingFilterDatesMessage},
		{"bad format", "01/01/2024", "2024-01-31", "from has invalid format, expected: 2006-01-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validator.ValidateFilter(tt.from, tt.to)
			require.Error(t, err)
			ve, ok := AsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tt.message, ve.GetUserFriendlyMessage())
		})
	}
}

func TestValidator_Basics(t *testing.T) {
	v := NewValidatorInLocation(nil)
	assert.Equal(t, time.Local, v.Location())
	assert.True(t, v.IsValidTimeRange(time.Unix(0, 0), time.Unix(1, 0)))
	assert.False(t, v.IsValidTimeRange(time.Unix(1, 0), time.Unix(1, 0)))
	assert.False(t, v.IsValidEntryID(0))
}
