package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service is a canonical catalog entry for a purchasable service.
// ServiceType is both the routing slug and the discriminator that drives the
// dynamic request form; it is unique among active records.
type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	// Price is a display string ("15 USD", "٥٠ ريال"), not a typed amount.
	Price       string `gorm:"size:100" json:"price"`
	ServiceType string `gorm:"size:100;not null;uniqueIndex" json:"service_type"`
	Category    string `gorm:"size:100" json:"category"`
	// SpecificFields is the ordered list of extra inputs this service
	// requires beyond the generic contact fields.
	SpecificFields datatypes.JSONSlice[string] `json:"specific_fields"`
	// Packages is an opaque per-service blob (tier lists etc.); the core
	// never interprets it.
	Packages  datatypes.JSON `gorm:"type:jsonb" json:"packages,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (Service) TableName() string {
	return "services"
}
