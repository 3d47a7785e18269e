package handlers

import (
	"errors"

	"github.com/drmnef/storefront/internal/dto"
	"github.com/drmnef/storefront/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	catalog *services.CatalogService
}

func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List returns the whole catalog for the storefront home view.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	servicesList, err := h.catalog.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load catalog",
		})
	}
	return c.JSON(servicesList)
}

// Detail resolves the slug route param to exactly one service record. The
// request-form endpoint applies the same resolution, so a detail page and
// its form always agree on the record.
func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	svc, err := h.catalog.BySlug(c.Context(), c.Params("serviceType"))
	if err != nil {
		if errors.Is(err, services.ErrMissingSlug) {
			return c.Redirect("/", fiber.StatusFound)
		}
		if errors.Is(err, services.ErrServiceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "لم يتم العثور على الخدمة المطلوبة",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load service",
		})
	}
	return c.JSON(svc)
}
