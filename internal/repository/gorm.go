package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/drmnef/storefront/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements every storage interface over a shared *gorm.DB.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *GormStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, wrapNotFound(err, "user by email")
	}
	return &user, nil
}

func (s *GormStore) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, wrapNotFound(err, "user by id")
	}
	return &user, nil
}

func (s *GormStore) RoleByID(ctx context.Context, id uuid.UUID) (string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Select("role").First(&user, "id = ?", id).Error
	if err != nil {
		return "", wrapNotFound(err, "role by id")
	}
	return user.Role, nil
}

func (s *GormStore) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	if err := s.db.WithContext(ctx).Create(token).Error; err != nil {
		return fmt.Errorf("create refresh token: %w", err)
	}
	return nil
}

func (s *GormStore) RefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := s.db.WithContext(ctx).
		Where("token_hash = ? AND revoked = false", hash).
		First(&token).Error
	if err != nil {
		return nil, wrapNotFound(err, "refresh token")
	}
	return &token, nil
}

func (s *GormStore) RevokeRefreshToken(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("id = ?", id).
		Update("revoked", true).Error
}

func (s *GormStore) RevokeByHash(ctx context.Context, hash string) error {
	return s.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("token_hash = ?", hash).
		Update("revoked", true).Error
}

func (s *GormStore) ServiceByType(ctx context.Context, serviceType string) (*models.Service, error) {
	var svc models.Service
	err := s.db.WithContext(ctx).Where("service_type = ?", serviceType).First(&svc).Error
	if err != nil {
		return nil, wrapNotFound(err, "service by type")
	}
	return &svc, nil
}

func (s *GormStore) ServicesByNamePattern(ctx context.Context, pattern string) ([]models.Service, error) {
	var services []models.Service
	err := s.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+pattern+"%").
		Find(&services).Error
	if err != nil {
		return nil, fmt.Errorf("services by name: %w", err)
	}
	return services, nil
}

func (s *GormStore) ListServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	err := s.db.WithContext(ctx).Order("created_at ASC").Find(&services).Error
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

func (s *GormStore) CreateService(ctx context.Context, svc *models.Service) error {
	if err := s.db.WithContext(ctx).Create(svc).Error; err != nil {
		return fmt.Errorf("create service: %w", err)
	}
	return nil
}

func (s *GormStore) UpdateService(ctx context.Context, svc *models.Service) error {
	result := s.db.WithContext(ctx).Model(&models.Service{}).
		Where("id = ?", svc.ID).
		Updates(map[string]interface{}{
			"name":            svc.Name,
			"description":     svc.Description,
			"price":           svc.Price,
			"service_type":    svc.ServiceType,
			"category":        svc.Category,
			"specific_fields": svc.SpecificFields,
			"packages":        svc.Packages,
		})
	if result.Error != nil {
		return fmt.Errorf("update service: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteService(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Service{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete service: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) CreateOrder(ctx context.Context, order *models.Order) error {
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (s *GormStore) OrderByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if err != nil {
		return nil, wrapNotFound(err, "order by id")
	}
	return &order, nil
}

func (s *GormStore) OrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("orders by user: %w", err)
	}
	return orders, nil
}

func (s *GormStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).Order("order_date DESC").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *GormStore) UpdateOrderStatus(ctx context.Context, id, status string) error {
	result := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) CreateDeviceInfo(ctx context.Context, info *models.DeviceInfo) error {
	if err := s.db.WithContext(ctx).Create(info).Error; err != nil {
		return fmt.Errorf("create device info: %w", err)
	}
	return nil
}

func (s *GormStore) Settings(ctx context.Context) (*models.PlatformSettings, error) {
	var settings models.PlatformSettings
	err := s.db.WithContext(ctx).First(&settings, "id = ?", models.SettingsRowID).Error
	if err != nil {
		return nil, wrapNotFound(err, "platform settings")
	}
	return &settings, nil
}

func (s *GormStore) UpsertSettings(ctx context.Context, settings *models.PlatformSettings) error {
	settings.ID = models.SettingsRowID
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(settings).Error
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}

func wrapNotFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
