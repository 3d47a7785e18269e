package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/drmnef/storefront/internal/models"
	"github.com/drmnef/storefront/internal/repository"
)

// SettingsService reads and updates the platform-settings singleton.
type SettingsService struct {
	store repository.SettingsStore
}

func NewSettingsService(store repository.SettingsStore) *SettingsService {
	return &SettingsService{store: store}
}

// Get returns the settings row, falling back to defaults when the row is
// missing or unreadable. Settings feed display concerns only, so a lookup
// failure is downgraded, not propagated.
func (s *SettingsService) Get(ctx context.Context) *models.PlatformSettings {
	settings, err := s.store.Settings(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.Warn("could not fetch platform settings", "error", err)
		}
		return defaultSettings()
	}
	if settings.BankTransferBarcodeURL == "" {
		settings.BankTransferBarcodeURL = models.DefaultBarcodePlaceholder
	}
	if settings.DefaultLanguage == "" {
		settings.DefaultLanguage = "ar"
	}
	return settings
}

// Update upserts the singleton row.
func (s *SettingsService) Update(ctx context.Context, settings *models.PlatformSettings) error {
	return s.store.UpsertSettings(ctx, settings)
}

func defaultSettings() *models.PlatformSettings {
	return &models.PlatformSettings{
		ID:                     models.SettingsRowID,
		BankTransferBarcodeURL: models.DefaultBarcodePlaceholder,
		DefaultLanguage:        "ar",
	}
}
