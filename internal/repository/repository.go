package repository

import (
	"context"
	"time"

	"overtime-tracker/internal/domain"
)

// EntryStore persists time entries in insertion order.
//
// Update and Delete of an id that does not exist are silent no-ops; both
// return the full list as it stands after the mutation. Failures of the
// underlying medium are reported as storage AppErrors.
type EntryStore interface {
	// Insert assigns a fresh id to entry, persists it and returns the id.
	// Any ID already set on entry is ignored.
	Insert(ctx context.Context, entry domain.TimeEntry) (int64, error)

	// ListAll returns every stored entry ordered by id.
	ListAll(ctx context.Context) ([]domain.TimeEntry, error)

	Update(ctx context.Context, id int64, patch domain.EntryPatch) ([]domain.TimeEntry, error)
	Delete(ctx context.Context, id int64) ([]domain.TimeEntry, error)

	Close() error
}

// SettingsStore persists the single conversion rate setting.
type SettingsStore interface {
	// Load returns the saved rate, or the store's default rate when none has
	// been saved. The default is persisted on that first read.
	Load(ctx context.Context) (float64, error)

	// Save validates and persists rate.
	Save(ctx context.Context, rate float64) error
}

// Store is a backend serving both entries and settings from one medium.
type Store interface {
	EntryStore
	SettingsStore
}

// Options configures a storage backend
type Options struct {
	// QueryTimeout bounds each read; zero means no bound.
	QueryTimeout time.Duration
	// WriteTimeout bounds each mutation; zero means no bound.
	WriteTimeout time.Duration
	// DefaultRate is returned by Load until a rate has been saved.
	DefaultRate float64
}

// RateOrDefault returns the configured default rate, falling back to
// domain.DefaultConversionRate when unset.
func (o Options) RateOrDefault() float64 {
	if o.DefaultRate <= 0 {
		return domain.DefaultConversionRate
	}
	return o.DefaultRate
}

// WithTimeout derives a context bounded by d when d is positive.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}
