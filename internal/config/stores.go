package config

import (
	"fmt"
	"os"

	"overtime-tracker/internal/logging"
	"overtime-tracker/internal/repository"
	"overtime-tracker/internal/repository/bolt"
	"overtime-tracker/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// GetEnvironment reads OT_ENV, defaulting to production
func GetEnvironment() Environment {
	switch Environment(os.Getenv("OT_ENV")) {
	case Development:
		return Development
	case Testing:
		return Testing
	default:
		return Production
	}
}

// StoreOptions maps the database and conversion settings onto backend options
func (c *Config) StoreOptions() repository.Options {
	return repository.Options{
		QueryTimeout: c.Database.QueryTimeout,
		WriteTimeout: c.Database.WriteTimeout,
		DefaultRate:  c.Conversion.DefaultRate,
	}
}

// CreateStores opens the configured backend, creating its directory if needed
func CreateStores(cfg *Config, logger *logging.Logger) (repository.Store, error) {
	if err := os.MkdirAll(cfg.Database.Dir, os.FileMode(cfg.Database.DirPermissions)); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dbPath := cfg.GetDatabasePath()

	switch cfg.Database.Driver {
	case DriverBolt:
		store, err := bolt.Open(dbPath, cfg.StoreOptions(), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return store, nil
	case DriverSQLite, "":
		store, err := sqlite.NewWithOptions(dbPath, cfg.StoreOptions(), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return store, nil
	default:
		return nil, &ConfigError{Field: "database.driver", Message: fmt.Sprintf("unknown driver %q", cfg.Database.Driver)}
	}
}

// CreateTestStores opens the store described by cfg (defaults when nil) in a
// fresh temporary directory. The returned cleanup closes the store and
// removes the directory.
func CreateTestStores(cfg *Config) (repository.Store, func(), error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	dir, err := os.MkdirTemp("", "ot-test-*")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create test directory: %w", err)
	}

	test := *cfg
	test.Database.Dir = dir

	store, err := CreateStores(&test, nil)
	if err != nil {
		os.RemoveAll(dir)
		return nil, nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	cleanup := func() {
		store.Close()
		os.RemoveAll(dir)
	}
	return store, cleanup, nil
}

// StoreFactory creates stores based on environment
type StoreFactory struct {
	env Environment
	cfg *Config
}

// NewStoreFactory creates a new store factory for the given environment
func NewStoreFactory(env Environment, cfg *Config) *StoreFactory {
	return &StoreFactory{env: env, cfg: cfg}
}

// CreateStore returns the store for the factory's environment and a cleanup func.
// Development keeps its database in the working directory; testing uses a
// throwaway directory.
func (f *StoreFactory) CreateStore(logger *logging.Logger) (repository.Store, func(), error) {
	switch f.env {
	case Testing:
		return CreateTestStores(f.cfg)
	case Development:
		dev := *f.cfg
		dev.Database.Dir = "."
		store, err := CreateStores(&dev, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	default:
		store, err := CreateStores(f.cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}
}
