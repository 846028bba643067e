package cli

import (
	"bytes"
	"context"
	"regexp"
	"testing"
	"time"

	"overtime-tracker/internal/api"
	"overtime-tracker/internal/config"
	"overtime-tracker/internal/domain"
	"overtime-tracker/internal/services"
)

// mockAPI records calls and returns canned views
type mockAPI struct {
	rate     float64
	view     *services.HistoryView
	csv      string
	err      error
	rateErr  error
	nextID   int64
	calls    []string
	lastRate float64
	lastID   int64
	lastFrom string
	lastTo   string
	lastArgs []string
}

var _ api.API = (*mockAPI)(nil)

func newMockAPI() *mockAPI {
	return &mockAPI{
		rate:   1.5,
		view:   sampleView(),
		csv:    services.CSVHeader,
		nextID: 1,
	}
}

func (m *mockAPI) record(call string) {
	m.calls = append(m.calls, call)
}

func (m *mockAPI) CreateEntry(ctx context.Context, start, end, notes string, rate float64) (*domain.TimeEntry, *services.HistoryView, error) {
	m.record("CreateEntry")
	m.lastRate = rate
	m.lastArgs = []string{start, end, notes}
	if m.err != nil {
		return nil, nil, m.err
	}
	entry := domain.TimeEntry{
		ID:             m.nextID,
		Date:           "2024-01-05",
		Start:          "2024-01-05T18:00:00",
		End:            "2024-01-05T20:00:00",
		RawHours:       2,
		ConvertedHours: 2 * rate,
		Notes:          notes,
	}
	m.nextID++
	return &entry, m.view, nil
}

func (m *mockAPI) EditEntry(ctx context.Context, id int64, start, end, notes string, rate float64) (*services.HistoryView, error) {
	m.record("EditEntry")
	m.lastID = id
	m.lastRate = rate
	m.lastArgs = []string{start, end, notes}
	if m.err != nil {
		return nil, m.err
	}
	return m.view, nil
}

func (m *mockAPI) DeleteEntry(ctx context.Context, id int64) (*services.HistoryView, error) {
	m.record("DeleteEntry")
	m.lastID = id
	if m.err != nil {
		return nil, m.err
	}
	return m.view, nil
}

func (m *mockAPI) FilterHistory(ctx context.Context, from, to string) (*services.HistoryView, error) {
	m.record("FilterHistory")
	m.lastFrom, m.lastTo = from, to
	if m.err != nil {
		return nil, m.err
	}
	return m.view, nil
}

func (m *mockAPI) ResetFilter(ctx context.Context) (*services.HistoryView, error) {
	m.record("ResetFilter")
	if m.err != nil {
		return nil, m.err
	}
	return m.view, nil
}

func (m *mockAPI) ExportCSV(ctx context.Context, from, to string) (string, error) {
	m.record("ExportCSV")
	m.lastFrom, m.lastTo = from, to
	if m.err != nil {
		return "", m.err
	}
	return m.csv, nil
}

func (m *mockAPI) LoadSettings(ctx context.Context) (domain.Settings, error) {
	m.record("LoadSettings")
	if m.rateErr != nil {
		return domain.Settings{}, m.rateErr
	}
	return domain.Settings{ConversionRate: m.rate}, nil
}

func (m *mockAPI) SaveSettings(ctx context.Context, rate float64) error {
	m.record("SaveSettings")
	m.lastRate = rate
	if m.err != nil {
		return m.err
	}
	m.rate = rate
	return nil
}

func (m *mockAPI) CurrentRate(ctx context.Context) (float64, error) {
	m.record("CurrentRate")
	if m.rateErr != nil {
		return 0, m.rateErr
	}
	return m.rate, nil
}

func sampleView() *services.HistoryView {
	entries := []domain.TimeEntry{
		{ID: 1, Date: "2024-01-05", Start: "2024-01-05T18:00:00", End: "2024-01-05T20:00:00", RawHours: 2, ConvertedHours: 3, Notes: "release"},
		{ID: 2, Date: "2024-01-06", Start: "2024-01-06T09:00:00", End: "2024-01-06T10:00:00", RawHours: 1, ConvertedHours: 1.5},
	}
	rng := domain.NewDateRange(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC),
	)
	return services.BuildHistoryView(entries, rng)
}

func emptyView() *services.HistoryView {
	rng := domain.NewDateRange(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC),
	)
	return services.BuildHistoryView(nil, rng)
}

// testApp returns an app writing to a buffer that always answers confirm
func testApp(t *testing.T, m *mockAPI, confirm bool) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	app := NewAppWithConfig(m, config.NewConfig()).
		WithOutput(&out).
		WithPrompter(
			func(ctx context.Context, title string) (bool, error) { return confirm, nil },
			func() bool { return true },
		)
	return app, &out
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// plain strips terminal styling
func plain(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
