package services

import (
	"context"
	"errors"
	"testing"

	"github.com/drmnef/storefront/internal/models"
	"github.com/drmnef/storefront/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSettingsStore struct {
	row *models.PlatformSettings
	err error
}

func (s *stubSettingsStore) Settings(ctx context.Context) (*models.PlatformSettings, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.row == nil {
		return nil, repository.ErrNotFound
	}
	return s.row, nil
}

func (s *stubSettingsStore) UpsertSettings(ctx context.Context, settings *models.PlatformSettings) error {
	s.row = settings
	return nil
}

func TestSettingsGetFallsBackToDefaults(t *testing.T) {
	svc := NewSettingsService(&stubSettingsStore{})

	settings := svc.Get(context.Background())
	require.NotNil(t, settings)
	assert.Equal(t, models.SettingsRowID, settings.ID)
	assert.Equal(t, models.DefaultBarcodePlaceholder, settings.BankTransferBarcodeURL)
	assert.Equal(t, "ar", settings.DefaultLanguage)
}

func TestSettingsGetDowngradesInfraError(t *testing.T) {
	svc := NewSettingsService(&stubSettingsStore{err: errors.New("connection refused")})

	settings := svc.Get(context.Background())
	require.NotNil(t, settings)
	assert.Equal(t, models.DefaultBarcodePlaceholder, settings.BankTransferBarcodeURL)
}

func TestSettingsGetFillsBlankBarcode(t *testing.T) {
	store := &stubSettingsStore{row: &models.PlatformSettings{
		ID:           models.SettingsRowID,
		ContactEmail: "support@example.com",
	}}
	svc := NewSettingsService(store)

	settings := svc.Get(context.Background())
	assert.Equal(t, "support@example.com", settings.ContactEmail)
	assert.Equal(t, models.DefaultBarcodePlaceholder, settings.BankTransferBarcodeURL)
	assert.Equal(t, "ar", settings.DefaultLanguage)
}

func TestSettingsUpdate(t *testing.T) {
	store := &stubSettingsStore{}
	svc := NewSettingsService(store)

	err := svc.Update(context.Background(), &models.PlatformSettings{
		ID:             models.SettingsRowID,
		WhatsappNumber: "+966500000000",
	})
	require.NoError(t, err)
	assert.Equal(t, "+966500000000", store.row.WhatsappNumber)
}
