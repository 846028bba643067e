package domain

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocalDateTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{"minutes", "2024-01-05T18:00", time.Date(2024, 1, 5, 18, 0, 0, 0, time.UTC)},
		{"seconds", "2024-01-05T18:00:30", time.Date(2024, 1, 5, 18, 0, 30, 0, time.UTC)},
		{"fraction", "2024-01-05T18:00:30.5", time.Date(2024, 1, 5, 18, 0, 30, 500000000, time.UTC)},
		{"space separated", "2024-01-05 18:00", time.Date(2024, 1, 5, 18, 0, 0, 0, time.UTC)},
		{"offset converted", "2024-01-05T18:00:00+02:00", time.Date(2024, 1, 5, 16, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseLocalDateTime(tt.input, time.UTC)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(result), "got %v", result)
		})
	}

	_, err := ParseLocalDateTime("  ", time.UTC)
	assert.Error(t, err)
	_, err = ParseLocalDateTime("05/01/2024 18:00", time.UTC)
	assert.Error(t, err)
}

func TestParseLocalDateTime_DaylightSaving(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name   string
		input  string
		wall   string
		offset int
	}{
		{"before spring forward", "2024-03-10T01:30", "2024-03-10T01:30:00", -5 * 3600},
		{"skipped hour rolls forward", "2024-03-10T02:30", "2024-03-10T03:30:00", -4 * 3600},
		{"skipped hour start", "2024-03-10T02:00", "2024-03-10T03:00:00", -4 * 3600},
		{"after spring forward", "2024-03-10T03:30", "2024-03-10T03:30:00", -4 * 3600},
		{"repeated hour", "2024-11-03T01:30", "2024-11-03T01:30:00", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseLocalDateTime(tt.input, ny)
			require.NoError(t, err)
			assert.Equal(t, tt.wall, FormatLocalDateTime(result))
			if tt.offset != 0 {
				_, offset := result.Zone()
				assert.Equal(t, tt.offset, offset)
			}
		})
	}

	start, err := ParseLocalDateTime("2024-03-10T01:30", ny)
	require.NoError(t, err)
	end, err := ParseLocalDateTime("2024-03-10T02:30", ny)
	require.NoError(t, err)
	assert.InDelta(t, 1, CalculateHours(start, end), 1e-9)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-01-31 ", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2024-01-31", FormatDate(d))

	_, err = ParseDate("2024-13-01", time.UTC)
	assert.Error(t, err)
}
