package handlers

import (
	"errors"

	"github.com/drmnef/storefront/internal/dto"
	"github.com/drmnef/storefront/internal/models"
	"github.com/drmnef/storefront/internal/repository"
	"github.com/drmnef/storefront/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AdminHandler hosts the thin order/catalog management surface behind the
// admin guard.
type AdminHandler struct {
	orders  *services.OrderService
	catalog repository.ServiceStore
}

func NewAdminHandler(orders *services.OrderService, catalog repository.ServiceStore) *AdminHandler {
	return &AdminHandler{orders: orders, catalog: catalog}
}

func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load orders",
		})
	}
	return c.JSON(orders)
}

// UpdateOrderStatus performs a manual status transition within the fixed
// status set. The submission pipeline never changes status; only this does.
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	var req dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	err := h.orders.UpdateStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Unknown order status",
			})
		}
		if errors.Is(err, services.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Order not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update order",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) CreateService(c *fiber.Ctx) error {
	var req dto.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Name == "" || req.ServiceType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "name and service_type are required",
		})
	}

	svc := serviceFromRequest(&req)
	if err := h.catalog.CreateService(c.Context(), svc); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create service",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(svc)
}

func (h *AdminHandler) UpdateService(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid service id",
		})
	}

	var req dto.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	svc := serviceFromRequest(&req)
	svc.ID = id
	if err := h.catalog.UpdateService(c.Context(), svc); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Service not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update service",
		})
	}
	return c.JSON(svc)
}

func (h *AdminHandler) DeleteService(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid service id",
		})
	}

	if err := h.catalog.DeleteService(c.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Service not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete service",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func serviceFromRequest(req *dto.ServiceRequest) *models.Service {
	return &models.Service{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		ServiceType:    req.ServiceType,
		Category:       req.Category,
		SpecificFields: datatypes.NewJSONSlice(req.SpecificFields),
		Packages:       req.Packages,
	}
}
