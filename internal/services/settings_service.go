package services

import (
	"context"

	"overtime-tracker/internal/errors"
	"overtime-tracker/internal/logging"
	"overtime-tracker/internal/repository"
	"overtime-tracker/internal/validation"
)

// settingsServiceImpl implements the SettingsService interface
type settingsServiceImpl struct {
	store repository.SettingsStore
	log   *logging.Logger
}

// NewSettingsService creates a new SettingsService instance
func NewSettingsService(store repository.SettingsStore, logger *logging.Logger) SettingsService {
	return &settingsServiceImpl{
		store: store,
		log:   logging.OrDiscard(logger).WithComponent("settings"),
	}
}

// Load returns the saved conversion rate or the default
func (s *settingsServiceImpl) Load(ctx context.Context) (float64, error) {
	rate, err := s.store.Load(ctx)
	if err != nil {
		if errors.ShouldLogError(err) {
			s.log.Error("load settings failed", "error", err)
		}
		return 0, err
	}
	return rate, nil
}

// Save rejects invalid rates before they reach the store
func (s *settingsServiceImpl) Save(ctx context.Context, rate float64) error {
	if err := validation.ValidateConversionRate(rate); err != nil {
		return err
	}
	if err := s.store.Save(ctx, rate); err != nil {
		if errors.ShouldLogError(err) {
			s.log.Error("save settings failed", "error", err)
		}
		return err
	}
	s.log.Debug("conversion rate saved", "rate", rate)
	return nil
}
