package services

import (
	"context"
	"sync"

	"overtime-tracker/internal/domain"
	"overtime-tracker/internal/errors"
)

// fakeStore is an in-memory repository.Store with per-operation failure injection
type fakeStore struct {
	mu      sync.Mutex
	entries []domain.TimeEntry
	nextID  int64
	rate    *float64

	insertErr error
	listErr   error
	updateErr error
	deleteErr error
	loadErr   error
	saveErr   error

	mutations int
}

func newFakeStore(entries ...domain.TimeEntry) *fakeStore {
	f := &fakeStore{}
	for _, e := range entries {
		f.nextID++
		e.ID = f.nextID
		f.entries = append(f.entries, e)
	}
	return f
}

func (f *fakeStore) Insert(_ context.Context, entry domain.TimeEntry) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.mutations++
	f.nextID++
	entry.ID = f.nextID
	f.entries = append(f.entries, entry)
	return entry.ID, nil
}

func (f *fakeStore) ListAll(_ context.Context) ([]domain.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.snapshot(), nil
}

func (f *fakeStore) snapshot() []domain.TimeEntry {
	out := make([]domain.TimeEntry, len(f.entries))
	copy(out, f.entries)
	return out
}

func (f *fakeStore) Update(_ context.Context, id int64, patch domain.EntryPatch) ([]domain.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i, e := range f.entries {
		if e.ID == id {
			f.mutations++
			f.entries[i] = patch.Apply(e)
		}
	}
	return f.snapshot(), nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) ([]domain.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.ID == id {
			f.mutations++
			continue
		}
		kept = append(kept, e)
	}
	f.entries = kept
	return f.snapshot(), nil
}

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) Load(_ context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return 0, f.loadErr
	}
	if f.rate == nil {
		rate := domain.DefaultConversionRate
		f.rate = &rate
	}
	return *f.rate, nil
}

func (f *fakeStore) Save(_ context.Context, rate float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mutations++
	f.rate = &rate
	return nil
}

var errMedium = errors.NewStorageError("medium unavailable", nil)

// entryOn builds a stored-form entry with explicit hours on date
func entryOn(date string, raw, converted float64, notes string) domain.TimeEntry {
	return domain.TimeEntry{
		Date:           date,
		Start:          date + "T18:00:00",
		End:            date + "T20:00:00",
		RawHours:       raw,
		ConvertedHours: converted,
		Notes:          notes,
	}
}
