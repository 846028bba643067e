package api

import (
	"context"
	"strings"
	"time"

	"overtime-tracker/internal/domain"
	"overtime-tracker/internal/logging"
	"overtime-tracker/internal/repository"
	"overtime-tracker/internal/services"
	"overtime-tracker/internal/validation"
)

// API is the event surface a presentation layer drives. Every call returns
// a fresh view model or a failure; no state is held between calls.
type API interface {
	// Entry events
	CreateEntry(ctx context.Context, start, end, notes string, rate float64) (*domain.TimeEntry, *services.HistoryView, error)
	EditEntry(ctx context.Context, id int64, start, end, notes string, rate float64) (*services.HistoryView, error)
	DeleteEntry(ctx context.Context, id int64) (*services.HistoryView, error)

	// History events. Dates are YYYY-MM-DD.
	FilterHistory(ctx context.Context, from, to string) (*services.HistoryView, error)
	ResetFilter(ctx context.Context) (*services.HistoryView, error)
	ExportCSV(ctx context.Context, from, to string) (string, error)

	// Settings events
	LoadSettings(ctx context.Context) (domain.Settings, error)
	SaveSettings(ctx context.Context, rate float64) error

	// CurrentRate loads the rate a caller should pass to CreateEntry and EditEntry
	CurrentRate(ctx context.Context) (float64, error)
}

type apiImpl struct {
	services       *services.ServiceContainer
	rangeValidator *validation.RangeValidator
	log            *logging.Logger
}

// New wires the services over store. A nil clock means time.Now.
func New(store repository.Store, clock services.Clock, logger *logging.Logger) API {
	return NewWithServices(&services.ServiceContainer{
		ReportService:   services.NewReportService(store, clock, logger),
		SettingsService: services.NewSettingsService(store, logger),
	}, locationOf(clock), logger)
}

// NewWithServices builds the API over existing services. Filter dates are
// read in loc (time.Local when nil).
func NewWithServices(container *services.ServiceContainer, loc *time.Location, logger *logging.Logger) API {
	return &apiImpl{
		services:       container,
		rangeValidator: validation.NewRangeValidator(loc),
		log:            logging.OrDiscard(logger).WithComponent("api"),
	}
}

func locationOf(clock services.Clock) *time.Location {
	if clock == nil {
		return time.Local
	}
	return clock().Location()
}

func (a *apiImpl) CreateEntry(ctx context.Context, start, end, notes string, rate float64) (*domain.TimeEntry, *services.HistoryView, error) {
	return a.services.ReportService.RecordNewEntry(ctx, start, end, notes, rate)
}

func (a *apiImpl) EditEntry(ctx context.Context, id int64, start, end, notes string, rate float64) (*services.HistoryView, error) {
	return a.services.ReportService.ApplyEdit(ctx, id, start, end, notes, rate)
}

func (a *apiImpl) DeleteEntry(ctx context.Context, id int64) (*services.HistoryView, error) {
	return a.services.ReportService.RemoveEntry(ctx, id)
}

// FilterHistory requires both dates
func (a *apiImpl) FilterHistory(ctx context.Context, from, to string) (*services.HistoryView, error) {
	rng, err := a.rangeValidator.ValidateFilter(from, to)
	if err != nil {
		return nil, err
	}
	a.log.Debug("filter history", "from", from, "to", to)
	return a.services.ReportService.History(ctx, &rng.Start, &rng.End)
}

func (a *apiImpl) ResetFilter(ctx context.Context) (*services.HistoryView, error) {
	return a.services.ReportService.History(ctx, nil, nil)
}

// ExportCSV exports [from, to]. With neither date given it exports the
// current month; with only one it fails like FilterHistory.
func (a *apiImpl) ExportCSV(ctx context.Context, from, to string) (string, error) {
	if strings.TrimSpace(from) == "" && strings.TrimSpace(to) == "" {
		return a.services.ReportService.ExportCSV(ctx, nil, nil)
	}

	rng, err := a.rangeValidator.ValidateFilter(from, to)
	if err != nil {
		return "", err
	}
	return a.services.ReportService.ExportCSV(ctx, &rng.Start, &rng.End)
}

func (a *apiImpl) LoadSettings(ctx context.Context) (domain.Settings, error) {
	rate, err := a.services.SettingsService.Load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	return domain.Settings{ConversionRate: rate}, nil
}

func (a *apiImpl) SaveSettings(ctx context.Context, rate float64) error {
	return a.services.SettingsService.Save(ctx, rate)
}

func (a *apiImpl) CurrentRate(ctx context.Context) (float64, error) {
	return a.services.SettingsService.Load(ctx)
}
