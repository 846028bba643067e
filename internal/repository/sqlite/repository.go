package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"overtime-tracker/internal/domain"
	"overtime-tracker/internal/errors"
	"overtime-tracker/internal/logging"
	"overtime-tracker/internal/repository"
	"overtime-tracker/internal/validation"

	_ "modernc.org/sqlite"
)

var _ repository.Store = (*SQLiteRepository)(nil)

// SQLiteRepository implements repository.Store on a single SQLite file
type SQLiteRepository struct {
	db   *sql.DB
	opts repository.Options
	log  *logging.Logger

	// mu serialises mutations so read-modify-write sequences never interleave
	mu sync.Mutex
}

// New creates a new SQLite repository instance with default options
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, repository.Options{}, nil)
}

// NewWithOptions opens dbPath, applies pending migrations and returns the repository
func NewWithOptions(dbPath string, opts repository.Options, logger *logging.Logger) (*SQLiteRepository, error) {
	log := logging.OrDiscard(logger).WithComponent("sqlite")

	if err := RunMigrations(dbPath); err != nil {
		return nil, errors.NewStorageError("run migrations", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.NewStorageError("open database", err)
	}

	log.Debug("opened store", "path", dbPath)
	return &SQLiteRepository{db: db, opts: opts, log: log}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Insert persists entry under a fresh id
func (r *SQLiteRepository) Insert(ctx context.Context, entry domain.TimeEntry) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := repository.WithTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	query := `
	INSERT INTO entries (date, start_time, end_time, raw_hours, converted_hours, notes)
	VALUES (?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		entry.Date, entry.Start, entry.End, entry.RawHours, entry.ConvertedHours, entry.Notes)
	if err != nil {
		r.log.Error("insert entry failed", "error", err)
		return 0, err
	}

	r.log.Debug("inserted entry", "id", id, "date", entry.Date)
	return id, nil
}

// ListAll returns every entry ordered by id
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]domain.TimeEntry, error) {
	ctx, cancel := repository.WithTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	return r.listAll(ctx, r.db)
}

func (r *SQLiteRepository) listAll(ctx context.Context, db execer) ([]domain.TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries ORDER BY id ASC`

	entries, err := QueryMultiple(ctx, db, query, ScanEntries, "entries")
	if err != nil {
		return nil, err
	}
	return derefAll(entries), nil
}

// Update merges patch into the entry with the given id. A missing id leaves
// the store unchanged.
func (r *SQLiteRepository) Update(ctx context.Context, id int64, patch domain.EntryPatch) ([]domain.TimeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := repository.WithTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, HandleDatabaseError("begin update", err)
	}
	defer tx.Rollback()

	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = ?`
	existing, err := QuerySingle(ctx, tx, query, ScanEntry, "entry", id)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		r.log.Debug("update skipped, entry not found", "id", id)
	} else if !patch.IsEmpty() {
		updated := patch.Apply(*existing)
		update := `
		UPDATE entries
		SET date = ?, start_time = ?, end_time = ?, raw_hours = ?, converted_hours = ?, notes = ?
		WHERE id = ?`
		if _, err := ExecuteWithRowsAffected(ctx, tx, update,
			updated.Date, updated.Start, updated.End, updated.RawHours, updated.ConvertedHours, updated.Notes, id); err != nil {
			return nil, err
		}
		r.log.Debug("updated entry", "id", id)
	}

	entries, err := r.listAll(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, HandleDatabaseError("commit update", err)
	}
	return entries, nil
}

// Delete removes the entry with the given id. A missing id leaves the store unchanged.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) ([]domain.TimeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := repository.WithTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, HandleDatabaseError("begin delete", err)
	}
	defer tx.Rollback()

	affected, err := ExecuteWithRowsAffected(ctx, tx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	r.log.Debug("deleted entry", "id", id, "rows", affected)

	entries, err := r.listAll(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, HandleDatabaseError("commit delete", err)
	}
	return entries, nil
}

// Load returns the saved conversion rate, persisting the default on first read
func (r *SQLiteRepository) Load(ctx context.Context) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := repository.WithTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	value, err := QuerySingle(ctx, r.db, `SELECT value FROM settings WHERE key = ?`, ScanSettingValue, "setting", conversionRateKey)
	if err != nil {
		return 0, err
	}

	if value == nil {
		rate := r.opts.RateOrDefault()
		if _, err := ExecuteWithRowsAffected(ctx, r.db,
			`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`,
			conversionRateKey, FormatRateForDB(rate)); err != nil {
			return 0, err
		}
		r.log.Debug("stored default conversion rate", "rate", rate)
		return rate, nil
	}

	rate, err := ParseRateFromDB(*value)
	if err != nil {
		return 0, errors.NewStorageError("decode conversion rate", fmt.Errorf("%s: %w", conversionRateKey, err))
	}
	return rate, nil
}

// Save validates and persists the conversion rate
func (r *SQLiteRepository) Save(ctx context.Context, rate float64) error {
	if err := validation.ValidateConversionRate(rate); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := repository.WithTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	query := `
	INSERT INTO settings (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value`

	if _, err := ExecuteWithRowsAffected(ctx, r.db, query, conversionRateKey, FormatRateForDB(rate)); err != nil {
		r.log.Error("save conversion rate failed", "error", err)
		return err
	}
	r.log.Debug("saved conversion rate", "rate", rate)
	return nil
}
