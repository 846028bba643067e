package services

import (
	"context"
	"time"

	"overtime-tracker/internal/domain"
)

// Clock returns the current time. Tests inject a fixed clock so the
// current-month default range is deterministic.
type Clock func() time.Time

// Totals is the raw and converted hour sum over a set of entries
type Totals struct {
	Raw       float64 `json:"rawTotal"`
	Converted float64 `json:"convertedTotal"`
}

// DailyTotal is the summed raw hours for one chart label
type DailyTotal struct {
	Label    string  `json:"label"`
	RawHours float64 `json:"rawHours"`
}

// RawVsConverted is the two-slice proportion chart series
type RawVsConverted struct {
	Raw       float64 `json:"raw"`
	Converted float64 `json:"converted"`
}

// ChartSeries holds the chart-ready projections of a history view
type ChartSeries struct {
	Daily []DailyTotal   `json:"dailyTotals"`
	Pie   RawVsConverted `json:"rawVsConvertedPie"`
}

// MonthSummary is one month group of a history view
type MonthSummary struct {
	Key     string             `json:"key"`   // YYYY-MM
	Label   string             `json:"label"` // Jan 2024
	Entries []domain.TimeEntry `json:"entries"`
	Totals  Totals             `json:"totals"`
}

// HistoryView is everything a collaborator needs to render the history tab
type HistoryView struct {
	Range       domain.DateRange   `json:"effectiveRange"`
	Entries     []domain.TimeEntry `json:"filteredEntries"`
	Months      []MonthSummary     `json:"groupedByMonth"`
	GrandTotals Totals             `json:"grandTotals"`
	Charts      ChartSeries        `json:"chartSeries"`
}

// IsEmpty reports whether no entry fell inside the range
func (v *HistoryView) IsEmpty() bool {
	return v == nil || len(v.Entries) == 0
}

// ReportService builds history views and CSV exports over the entry store
// and applies entry mutations.
type ReportService interface {
	// History loads every entry and builds the view for [start, end].
	// When either bound is nil the current month through today is used.
	History(ctx context.Context, start, end *time.Time) (*HistoryView, error)

	// ExportCSV serializes the entries in [start, end]. An empty selection
	// is an empty_range AppError.
	ExportCSV(ctx context.Context, start, end *time.Time) (string, error)

	RecordNewEntry(ctx context.Context, start, end, notes string, rate float64) (*domain.TimeEntry, *HistoryView, error)
	ApplyEdit(ctx context.Context, id int64, start, end, notes string, rate float64) (*HistoryView, error)
	RemoveEntry(ctx context.Context, id int64) (*HistoryView, error)
}

// SettingsService loads and saves the conversion rate
type SettingsService interface {
	Load(ctx context.Context) (float64, error)
	Save(ctx context.Context, rate float64) error
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	ReportService   ReportService
	SettingsService SettingsService
}
