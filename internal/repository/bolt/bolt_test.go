package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"overtime-tracker/internal/errors"
	"overtime-tracker/internal/repository"
	"overtime-tracker/internal/repository/storetest"
)

func openTestStore(t *testing.T) (*Bolt, string) {
	path := filepath.Join(t.TempDir(), "ot.bolt")

	store, err := Open(path, repository.Options{}, nil)
	require.NoError(t, err)

	return store, path
}

func TestBolt_Contract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) repository.Store {
		store, _ := openTestStore(t)
		return store
	})
}

func TestBolt_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	store, path := openTestStore(t)

	id, err := store.Insert(ctx, storetest.Entry(5, 18, 2, "durable"))
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, 1.25))
	require.NoError(t, store.Close())

	reopened, err := Open(path, repository.Options{}, nil)
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ID)

	rate, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1.25, rate)

	next, err := reopened.Insert(ctx, storetest.Entry(6, 18, 1, "next"))
	require.NoError(t, err)
	assert.Greater(t, next, id)
}

func TestBolt_KeysAreBigEndianIDs(t *testing.T) {
	ctx := context.Background()
	store, _ := openTestStore(t)
	defer store.Close()

	for i := 0; i < 300; i++ {
		_, err := store.Insert(ctx, storetest.Entry(1+i%28, 18, 1, "bulk"))
		require.NoError(t, err)
	}

	entries, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 300)
	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].ID, entries[i].ID)
	}
}

func TestBolt_CorruptRecord(t *testing.T) {
	ctx := context.Background()
	store, _ := openTestStore(t)
	defer store.Close()

	require.NoError(t, store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketEntries)).Put(itob(1), []byte("{not json"))
	}))

	_, err := store.ListAll(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsStorageError(err))
}

func TestBolt_CancelledContext(t *testing.T) {
	store, _ := openTestStore(t)
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Insert(ctx, storetest.Entry(5, 18, 2, "late"))
	assert.True(t, errors.IsStorageError(err))

	_, err = store.Load(ctx)
	assert.True(t, errors.IsStorageError(err))
}

func TestBolt_ClosedDatabase(t *testing.T) {
	store, _ := openTestStore(t)
	require.NoError(t, store.Close())

	_, err := store.ListAll(context.Background())
	assert.True(t, errors.IsStorageError(err))
}
