package models

import "time"

// SettingsRowID is the fixed primary key of the singleton settings row.
const SettingsRowID = 1

// DefaultBarcodePlaceholder is served when no barcode image has been
// uploaded yet.
const DefaultBarcodePlaceholder = "/assets/images/alrajhi-barcode-placeholder.png"

// PlatformSettings is the storefront-wide configuration singleton.
type PlatformSettings struct {
	ID                     int       `gorm:"primaryKey" json:"id"`
	ContactEmail           string    `gorm:"size:255" json:"contact_email"`
	WhatsappNumber         string    `gorm:"size:50" json:"whatsapp_number"`
	LogoURL                string    `gorm:"size:500" json:"logo_url"`
	BankTransferBarcodeURL string    `gorm:"size:500" json:"bank_transfer_barcode_url"`
	DefaultLanguage        string    `gorm:"size:10;default:'ar'" json:"default_language"`
	UpdatedAt              time.Time `json:"updated_at"`
}

func (PlatformSettings) TableName() string {
	return "platform_settings"
}
