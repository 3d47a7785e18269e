// Package repository defines the storage interfaces the services depend on
// and their GORM/Postgres implementation.
package repository

import (
	"context"
	"errors"

	"github.com/drmnef/storefront/internal/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a lookup matches no row. Callers must be able
// to tell it apart from infrastructure failures.
var ErrNotFound = errors.New("record not found")

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// RoleByID reads only the role column of the profile row.
	RoleByID(ctx context.Context, id uuid.UUID) (string, error)
}

type TokenStore interface {
	CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error
	RefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id uuid.UUID) error
	RevokeByHash(ctx context.Context, hash string) error
}

type ServiceStore interface {
	ServiceByType(ctx context.Context, serviceType string) (*models.Service, error)
	// ServicesByNamePattern matches name case-insensitively against the
	// given substring and returns every hit; the caller decides whether
	// one hit is unambiguous.
	ServicesByNamePattern(ctx context.Context, pattern string) ([]models.Service, error)
	ListServices(ctx context.Context) ([]models.Service, error)
	CreateService(ctx context.Context, svc *models.Service) error
	UpdateService(ctx context.Context, svc *models.Service) error
	DeleteService(ctx context.Context, id uuid.UUID) error
}

type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	OrderByID(ctx context.Context, id string) (*models.Order, error)
	OrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) error
	CreateDeviceInfo(ctx context.Context, info *models.DeviceInfo) error
}

type SettingsStore interface {
	Settings(ctx context.Context) (*models.PlatformSettings, error)
	UpsertSettings(ctx context.Context, settings *models.PlatformSettings) error
}
