package sqlite

import (
	"fmt"
	"math"
	"strconv"
)

// FormatRateForDB renders a conversion rate for the settings value column
func FormatRateForDB(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

// ParseRateFromDB parses a conversion rate stored by FormatRateForDB
func ParseRateFromDB(s string) (float64, error) {
	rate, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, fmt.Errorf("stored rate is not finite: %q", s)
	}
	return rate, nil
}
