package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role classifies an account's access level.
const (
	RoleClient  = "client"
	RoleAdmin   = "admin"
	RoleUnknown = "unknown"
)

// User is the storefront account record. It doubles as the profile row the
// role resolver reads: Role here is the authoritative value.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	FullName  string         `gorm:"size:255" json:"full_name"`
	Role      string         `gorm:"size:20;default:'client'" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
