package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeviceInfo is the best-effort side record storing the device identifier
// for UDID-based subscription orders. Losing one never invalidates the order
// it enriches.
type DeviceInfo struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   string    `gorm:"size:32;not null;index" json:"order_id"`
	UDID      string    `gorm:"size:100;not null" json:"udid"`
	CreatedAt time.Time `json:"created_at"`
}

func (d *DeviceInfo) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func (DeviceInfo) TableName() string {
	return "udid_device_info"
}
