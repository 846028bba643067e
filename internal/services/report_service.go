package services

import (
	"context"
	"time"

	"overtime-tracker/internal/domain"
	"overtime-tracker/internal/errors"
	"overtime-tracker/internal/logging"
	"overtime-tracker/internal/repository"
	"overtime-tracker/internal/validation"
)

// reportServiceImpl implements the ReportService interface
type reportServiceImpl struct {
	entries   repository.EntryStore
	validator *validation.EntryValidator
	clock     Clock
	log       *logging.Logger
}

// NewReportService creates a new ReportService instance. Timestamps are read
// in the clock's location; a nil clock means time.Now.
func NewReportService(entries repository.EntryStore, clock Clock, logger *logging.Logger) ReportService {
	if clock == nil {
		clock = time.Now
	}
	return &reportServiceImpl{
		entries:   entries,
		validator: validation.NewEntryValidatorInLocation(clock().Location()),
		clock:     clock,
		log:       logging.OrDiscard(logger).WithComponent("report"),
	}
}

// History loads all entries and builds the view for the resolved range
func (r *reportServiceImpl) History(ctx context.Context, start, end *time.Time) (*HistoryView, error) {
	all, err := r.entries.ListAll(ctx)
	if err != nil {
		r.logFailure("list entries", err)
		return nil, err
	}

	rng := ResolveRange(start, end, r.clock())
	view := BuildHistoryView(all, rng)
	r.log.Debug("built history", "from", rng.StartDate(), "to", rng.EndDate(), "entries", len(view.Entries))
	return view, nil
}

// ExportCSV re-filters the store by the resolved range and serializes the result
func (r *reportServiceImpl) ExportCSV(ctx context.Context, start, end *time.Time) (string, error) {
	all, err := r.entries.ListAll(ctx)
	if err != nil {
		r.logFailure("list entries", err)
		return "", err
	}

	rng := ResolveRange(start, end, r.clock())
	filtered := FilterByDateRange(all, rng)
	if len(filtered) == 0 {
		return "", errors.NewEmptyRangeError(rng.StartDate(), rng.EndDate())
	}

	r.log.Debug("exported csv", "from", rng.StartDate(), "to", rng.EndDate(), "rows", len(filtered))
	return FormatCSV(filtered), nil
}

// RecordNewEntry validates and stores a new entry, then rebuilds the default history
func (r *reportServiceImpl) RecordNewEntry(ctx context.Context, start, end, notes string, rate float64) (*domain.TimeEntry, *HistoryView, error) {
	startTime, endTime, err := r.validator.ValidateEntryForCreation(start, end, rate)
	if err != nil {
		return nil, nil, err
	}

	entry := domain.NewTimeEntry(startTime, endTime, notes, rate)
	id, err := r.entries.Insert(ctx, entry)
	if err != nil {
		r.logFailure("insert entry", err)
		return nil, nil, err
	}
	entry.ID = id

	view, err := r.History(ctx, nil, nil)
	if err != nil {
		return nil, nil, err
	}
	return &entry, view, nil
}

// ApplyEdit overwrites every mutable field of entry id with values derived from
// the new times, notes and rate
func (r *reportServiceImpl) ApplyEdit(ctx context.Context, id int64, start, end, notes string, rate float64) (*HistoryView, error) {
	startTime, endTime, err := r.validator.ValidateEntryForUpdate(id, start, end, rate)
	if err != nil {
		return nil, err
	}

	edited := domain.NewTimeEntry(startTime, endTime, notes, rate)
	all, err := r.entries.Update(ctx, id, domain.FullPatch(edited))
	if err != nil {
		r.logFailure("update entry", err)
		return nil, err
	}

	return BuildHistoryView(all, DefaultRange(r.clock())), nil
}

// RemoveEntry deletes entry id; a missing id still yields a refreshed view
func (r *reportServiceImpl) RemoveEntry(ctx context.Context, id int64) (*HistoryView, error) {
	if err := r.validator.ValidateEntryID(id); err != nil {
		return nil, err
	}

	all, err := r.entries.Delete(ctx, id)
	if err != nil {
		r.logFailure("delete entry", err)
		return nil, err
	}

	return BuildHistoryView(all, DefaultRange(r.clock())), nil
}

func (r *reportServiceImpl) logFailure(operation string, err error) {
	if errors.ShouldLogError(err) {
		r.log.Error(operation+" failed", "error", err, "code", errors.GetErrorCode(err))
	}
}
