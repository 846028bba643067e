package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConversionRate(t *testing.T) {
	tests := []struct {
		name  string
		rate  float64
		valid bool
	}{
		{"default rate", 1.5, true},
		{"minimum", 1.0, true},
		{"large", 3.25, true},
		{"below minimum", 0.99, false},
		{"zero", 0, false},
		{"negative", -2, false},
		{"NaN", math.NaN(), false},
		{"positive infinity", math.Inf(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConversionRate(tt.rate)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			ve, ok := AsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, InvalidRateMessage, ve.GetUserFriendlyMessage())
		})
	}
}

func TestParseConversionRate(t *testing.T) {
	rate, err := ParseConversionRate(" 2.0 ")
	require.NoError(t, err)
	assert.Equal(t, 2.0, rate)

	_, err = ParseConversionRate("one and a half")
	assert.True(t, IsValidationError(err))

	_, err = ParseConversionRate("0.5")
	assert.True(t, IsValidationError(err))

	_, err = ParseConversionRate("NaN")
	assert.True(t, IsValidationError(err))
}
