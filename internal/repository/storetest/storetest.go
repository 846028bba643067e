// Package storetest holds the behaviour every repository.Store backend must share.
package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overtime-tracker/internal/domain"
	"overtime-tracker/internal/repository"
	"overtime-tracker/internal/validation"
)

// Factory opens a fresh, empty store. The suite closes it.
type Factory func(t *testing.T) repository.Store

// Entry builds a stored-form entry on day 2024-01-<day> from startHour for hours.
func Entry(day, startHour int, hours float64, notes string) domain.TimeEntry {
	start := time.Date(2024, time.January, day, startHour, 0, 0, 0, time.UTC)
	end := start.Add(time.Duration(hours * float64(time.Hour)))
	return domain.NewTimeEntry(start, end, notes, domain.DefaultConversionRate)
}

// Run executes the contract suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, store repository.Store)
	}{
		{"insert assigns increasing ids", testInsertAssignsIDs},
		{"list empty store", testListEmpty},
		{"list preserves insertion order and fields", testListRoundTrip},
		{"update merges patch", testUpdateMergesPatch},
		{"update missing id is a no-op", testUpdateMissing},
		{"delete removes entry", testDeleteRemoves},
		{"delete missing id is a no-op", testDeleteMissing},
		{"ids are not reused after delete", testIDsNotReused},
		{"settings default persists", testSettingsDefault},
		{"settings save and load", testSettingsSave},
		{"settings reject invalid rate", testSettingsRejectInvalid},
		{"concurrent mutations serialise", testConcurrentMutations},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)
			defer store.Close()
			tt.fn(t, store)
		})
	}
}

func testInsertAssignsIDs(t *testing.T, store repository.Store) {
	ctx := context.Background()

	first := Entry(5, 18, 2, "first")
	first.ID = 99
	id1, err := store.Insert(ctx, first)
	require.NoError(t, err)
	id2, err := store.Insert(ctx, Entry(6, 18, 1, "second"))
	require.NoError(t, err)

	assert.Greater(t, id1, int64(0))
	assert.Greater(t, id2, id1)
}

func testListEmpty(t *testing.T, store repository.Store) {
	entries, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func testListRoundTrip(t *testing.T, store repository.Store) {
	ctx := context.Background()

	inputs := []domain.TimeEntry{
		Entry(7, 18, 2, `said "hi"`),
		Entry(5, 9, 0.5, ""),
		Entry(6, 20, 1.25, "release"),
	}
	var ids []int64
	for _, e := range inputs {
		id, err := store.Insert(ctx, e)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	entries, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, len(inputs))
	for i, got := range entries {
		want := inputs[i]
		want.ID = ids[i]
		assert.Equal(t, want, got)
	}
}

func testUpdateMergesPatch(t *testing.T, store repository.Store) {
	ctx := context.Background()

	id, err := store.Insert(ctx, Entry(5, 18, 2, "before"))
	require.NoError(t, err)
	otherID, err := store.Insert(ctx, Entry(6, 18, 1, "untouched"))
	require.NoError(t, err)

	notes := "after"
	entries, err := store.Update(ctx, id, domain.EntryPatch{Notes: &notes})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, id, entries[0].ID)
	assert.Equal(t, "after", entries[0].Notes)
	assert.Equal(t, 2.0, entries[0].RawHours)
	assert.Equal(t, "2024-01-05T18:00:00", entries[0].Start)
	assert.Equal(t, otherID, entries[1].ID)
	assert.Equal(t, "untouched", entries[1].Notes)

	replacement := Entry(9, 17, 3, "moved")
	entries, err = store.Update(ctx, id, domain.FullPatch(replacement))
	require.NoError(t, err)
	replacement.ID = id
	assert.Equal(t, replacement, entries[0])

	listed, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, listed)
}

func testUpdateMissing(t *testing.T, store repository.Store) {
	ctx := context.Background()

	_, err := store.Insert(ctx, Entry(5, 18, 2, "only"))
	require.NoError(t, err)
	before, err := store.ListAll(ctx)
	require.NoError(t, err)

	notes := "ghost"
	after, err := store.Update(ctx, 4242, domain.EntryPatch{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func testDeleteRemoves(t *testing.T, store repository.Store) {
	ctx := context.Background()

	id1, err := store.Insert(ctx, Entry(5, 18, 2, "a"))
	require.NoError(t, err)
	id2, err := store.Insert(ctx, Entry(6, 18, 2, "b"))
	require.NoError(t, err)

	entries, err := store.Delete(ctx, id1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, id2, entries[0].ID)

	entries, err = store.Delete(ctx, id2)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func testDeleteMissing(t *testing.T, store repository.Store) {
	ctx := context.Background()

	_, err := store.Insert(ctx, Entry(5, 18, 2, "keep"))
	require.NoError(t, err)

	entries, err := store.Delete(ctx, 777)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func testIDsNotReused(t *testing.T, store repository.Store) {
	ctx := context.Background()

	id1, err := store.Insert(ctx, Entry(5, 18, 2, "a"))
	require.NoError(t, err)
	id2, err := store.Insert(ctx, Entry(6, 18, 2, "b"))
	require.NoError(t, err)
	_, err = store.Delete(ctx, id2)
	require.NoError(t, err)

	id3, err := store.Insert(ctx, Entry(7, 18, 2, "c"))
	require.NoError(t, err)
	assert.Greater(t, id3, id2)
	assert.NotEqual(t, id1, id3)
}

func testSettingsDefault(t *testing.T, store repository.Store) {
	ctx := context.Background()

	rate, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConversionRate, rate)

	rate, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConversionRate, rate)
}

func testSettingsSave(t *testing.T, store repository.Store) {
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, 2.0))
	rate, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.0, rate)

	require.NoError(t, store.Save(ctx, 1.75))
	rate, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1.75, rate)
}

func testSettingsRejectInvalid(t *testing.T, store repository.Store) {
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, 2.5))

	err := store.Save(ctx, 0.5)
	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))

	rate, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.5, rate)
}

func testConcurrentMutations(t *testing.T, store repository.Store) {
	ctx := context.Background()

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers*2)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := store.Insert(ctx, Entry(1+i, 18, 1, "w"))
			if err != nil {
				errs <- err
				return
			}
			notes := "patched"
			if _, err := store.Update(ctx, id, domain.EntryPatch{Notes: &notes}); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	entries, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, writers)
	for _, e := range entries {
		assert.Equal(t, "patched", e.Notes)
	}
}
