// Package bolt stores entries and settings in a single bbolt file.
package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"sync"
	"time"

	"go.etcd.io/bbolt"

	"overtime-tracker/internal/domain"
	"overtime-tracker/internal/errors"
	"overtime-tracker/internal/logging"
	"overtime-tracker/internal/repository"
	"overtime-tracker/internal/validation"
)

const (
	bucketEntries  = "entries"  // key: big-endian id -> TimeEntry JSON
	bucketSettings = "settings" // key: setting name -> value JSON

	conversionRateKey = "conversionRate"
)

var _ repository.Store = (*Bolt)(nil)

// Bolt implements repository.Store on a bbolt database
type Bolt struct {
	db   *bbolt.DB
	opts repository.Options
	log  *logging.Logger

	mu sync.Mutex
}

// Open opens (creating if needed) the bbolt file at path
func Open(path string, opts repository.Options, logger *logging.Logger) (*Bolt, error) {
	log := logging.OrDiscard(logger).WithComponent("bolt")

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketEntries)); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketSettings)); err != nil {
			return err
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, errors.NewStorageError("create buckets", err)
	}

	log.Debug("opened store", "path", path)
	return &Bolt{db: db, opts: opts, log: log}, nil
}

// Close closes the database file
func (b *Bolt) Close() error {
	return b.db.Close()
}

func itob(id int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key
}

// ready fails fast on a cancelled or expired context; bbolt has no ctx support.
func ready(ctx context.Context, operation string) error {
	if err := ctx.Err(); err != nil {
		return errors.NewStorageError(operation, err)
	}
	return nil
}

// Insert persists entry under the bucket's next sequence number
func (b *Bolt) Insert(ctx context.Context, entry domain.TimeEntry) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ctx, cancel := repository.WithTimeout(ctx, b.opts.WriteTimeout)
	defer cancel()

	if err := ready(ctx, "insert entry"); err != nil {
		return 0, err
	}

	var id int64
	err := b.db.Update(func(tx *bbolt.Tx) error {
		entries := tx.Bucket([]byte(bucketEntries))
		seq, err := entries.NextSequence()
		if err != nil {
			return err
		}
		id = int64(seq)
		entry.ID = id

		data, err := json.Marshal(&entry)
		if err != nil {
			return err
		}
		return entries.Put(itob(id), data)
	})
	if err != nil {
		b.log.Error("insert entry failed", "error", err)
		return 0, errors.NewStorageError("insert entry", err)
	}

	b.log.Debug("inserted entry", "id", id, "date", entry.Date)
	return id, nil
}

// ListAll returns every entry in id order
func (b *Bolt) ListAll(ctx context.Context) ([]domain.TimeEntry, error) {
	ctx, cancel := repository.WithTimeout(ctx, b.opts.QueryTimeout)
	defer cancel()

	if err := ready(ctx, "list entries"); err != nil {
		return nil, err
	}

	var out []domain.TimeEntry
	err := b.db.View(func(tx *bbolt.Tx) error {
		var err error
		out, err = listEntries(tx)
		return err
	})
	if err != nil {
		return nil, errors.NewStorageError("list entries", err)
	}
	return out, nil
}

func listEntries(tx *bbolt.Tx) ([]domain.TimeEntry, error) {
	out := make([]domain.TimeEntry, 0)
	err := tx.Bucket([]byte(bucketEntries)).ForEach(func(k, v []byte) error {
		var e domain.TimeEntry
		if err := json.Unmarshal(v, &e); err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	return out, err
}

// Update merges patch into the entry with the given id. A missing id leaves
// the store unchanged.
func (b *Bolt) Update(ctx context.Context, id int64, patch domain.EntryPatch) ([]domain.TimeEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ctx, cancel := repository.WithTimeout(ctx, b.opts.WriteTimeout)
	defer cancel()

	if err := ready(ctx, "update entry"); err != nil {
		return nil, err
	}

	var out []domain.TimeEntry
	err := b.db.Update(func(tx *bbolt.Tx) error {
		entries := tx.Bucket([]byte(bucketEntries))
		if raw := entries.Get(itob(id)); raw != nil && !patch.IsEmpty() {
			var existing domain.TimeEntry
			if err := json.Unmarshal(raw, &existing); err != nil {
				return err
			}
			updated := patch.Apply(existing)
			data, err := json.Marshal(&updated)
			if err != nil {
				return err
			}
			if err := entries.Put(itob(id), data); err != nil {
				return err
			}
		}

		var err error
		out, err = listEntries(tx)
		return err
	})
	if err != nil {
		b.log.Error("update entry failed", "id", id, "error", err)
		return nil, errors.NewStorageError("update entry", err)
	}

	b.log.Debug("updated entry", "id", id)
	return out, nil
}

// Delete removes the entry with the given id. A missing id leaves the store unchanged.
func (b *Bolt) Delete(ctx context.Context, id int64) ([]domain.TimeEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ctx, cancel := repository.WithTimeout(ctx, b.opts.WriteTimeout)
	defer cancel()

	if err := ready(ctx, "delete entry"); err != nil {
		return nil, err
	}

	var out []domain.TimeEntry
	err := b.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket([]byte(bucketEntries)).Delete(itob(id)); err != nil {
			return err
		}
		var err error
		out, err = listEntries(tx)
		return err
	})
	if err != nil {
		b.log.Error("delete entry failed", "id", id, "error", err)
		return nil, errors.NewStorageError("delete entry", err)
	}

	b.log.Debug("deleted entry", "id", id)
	return out, nil
}

// Load returns the saved conversion rate, persisting the default on first read
func (b *Bolt) Load(ctx context.Context) (float64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ctx, cancel := repository.WithTimeout(ctx, b.opts.QueryTimeout)
	defer cancel()

	if err := ready(ctx, "load settings"); err != nil {
		return 0, err
	}

	var settings domain.Settings
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketSettings))
		if raw := bucket.Get([]byte(conversionRateKey)); raw != nil {
			return json.Unmarshal(raw, &settings.ConversionRate)
		}

		settings.ConversionRate = b.opts.RateOrDefault()
		data, err := json.Marshal(settings.ConversionRate)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(conversionRateKey), data)
	})
	if err != nil {
		return 0, errors.NewStorageError("load settings", err)
	}
	return settings.ConversionRate, nil
}

// Save validates and persists the conversion rate
func (b *Bolt) Save(ctx context.Context, rate float64) error {
	if err := validation.ValidateConversionRate(rate); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	ctx, cancel := repository.WithTimeout(ctx, b.opts.WriteTimeout)
	defer cancel()

	if err := ready(ctx, "save settings"); err != nil {
		return err
	}

	data, err := json.Marshal(rate)
	if err != nil {
		return errors.NewStorageError("save settings", err)
	}
	if err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketSettings)).Put([]byte(conversionRateKey), data)
	}); err != nil {
		b.log.Error("save conversion rate failed", "error", err)
		return errors.NewStorageError("save settings", err)
	}

	b.log.Debug("saved conversion rate", "rate", rate)
	return nil
}
