package handlers

import (
	"github.com/drmnef/storefront/internal/dto"
	"github.com/drmnef/storefront/internal/models"
	"github.com/drmnef/storefront/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	settings *services.SettingsService
}

func NewSettingsHandler(settings *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get returns the platform settings singleton; defaults are served when the
// row has not been created yet.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.settings.Get(c.Context()))
}

// Update upserts the singleton row. Admin only.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var req dto.SettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	settings := &models.PlatformSettings{
		ContactEmail:           req.ContactEmail,
		WhatsappNumber:         req.WhatsappNumber,
		LogoURL:                req.LogoURL,
		BankTransferBarcodeURL: req.BankTransferBarcodeURL,
		DefaultLanguage:        req.DefaultLanguage,
	}
	if err := h.settings.Update(c.Context(), settings); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save settings",
		})
	}
	return c.JSON(settings)
}
