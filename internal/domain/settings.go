package domain

// DefaultConversionRate is used until a rate has been saved.
const DefaultConversionRate = 1.5

// Settings is the singleton configuration record.
type Settings struct {
	ConversionRate float64 `json:"conversionRate"`
}

// DefaultSettings returns the settings in effect before anything is saved.
func DefaultSettings() Settings {
	return Settings{ConversionRate: DefaultConversionRate}
}

// Convert turns raw hours into business-equivalent hours.
func (s Settings) Convert(rawHours float64) float64 {
	return rawHours * s.ConversionRate
}
