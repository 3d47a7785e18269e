package dto

import (
	"github.com/drmnef/storefront/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ServiceSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	ServiceType string    `json:"service_type"`
}

func NewServiceSummary(svc *models.Service) ServiceSummary {
	return ServiceSummary{
		ID:          svc.ID,
		Name:        svc.Name,
		Price:       svc.Price,
		ServiceType: svc.ServiceType,
	}
}

type ServiceRequest struct {
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Price          string         `json:"price"`
	ServiceType    string         `json:"service_type"`
	Category       string         `json:"category"`
	SpecificFields []string       `json:"specific_fields"`
	Packages       datatypes.JSON `json:"packages,omitempty"`
}

type SettingsRequest struct {
	ContactEmail           string `json:"contact_email"`
	WhatsappNumber         string `json:"whatsapp_number"`
	LogoURL                string `json:"logo_url"`
	BankTransferBarcodeURL string `json:"bank_transfer_barcode_url"`
	DefaultLanguage        string `json:"default_language"`
}
