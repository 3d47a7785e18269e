package handlers

import (
	"errors"
	"time"

	"github.com/drmnef/storefront/internal/dto"
	"github.com/drmnef/storefront/internal/forms"
	"github.com/drmnef/storefront/internal/middleware"
	"github.com/drmnef/storefront/internal/models"
	"github.com/drmnef/storefront/internal/repository"
	"github.com/drmnef/storefront/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const bankTransferInstructions = "يرجى تحويل المبلغ إلى حساب مصرف الراجحي وإرفاق رقم الطلب في ملاحظات التحويل. سيتم تأكيد طلبك بعد التحقق من عملية الدفع."

// formSessionTTL bounds how long an issued request form stays submittable
// under its token. An expired token just means a fresh form instance.
const formSessionTTL = 30 * time.Minute

type OrderHandler struct {
	catalog  *services.CatalogService
	orders   *services.OrderService
	settings *services.SettingsService
	users    repository.UserStore

	// One Submitter per issued form token enforces at most one in-flight
	// submission per form instance and makes success terminal.
	sessions *expirable.LRU[string, *services.Submitter]
}

func NewOrderHandler(catalog *services.CatalogService, orders *services.OrderService, settings *services.SettingsService, users repository.UserStore) *OrderHandler {
	return &OrderHandler{
		catalog:  catalog,
		orders:   orders,
		settings: settings,
		users:    users,
		sessions: expirable.NewLRU[string, *services.Submitter](4096, nil, formSessionTTL),
	}
}

// RequestForm resolves the slug and returns the dynamic form derived from
// the service record. A route entered with no slug redirects home.
func (h *OrderHandler) RequestForm(c *fiber.Ctx) error {
	svc, err := h.catalog.BySlug(c.Context(), c.Params("serviceType"))
	if err != nil {
		return h.catalogError(c, err)
	}

	pre := forms.Preselect{
		StorePackage:        c.Query("package"),
		ProductID:           c.Query("product_id"),
		SubscriptionPackage: c.Query("subscription_package"),
	}

	resp := dto.RequestFormResponse{
		Service:        dto.NewServiceSummary(svc),
		FormToken:      uuid.NewString(),
		Fields:         forms.Derive(svc, pre),
		PaymentMethods: []string{models.PaymentPayPal, models.PaymentBankTransfer},
		BankTransfer: &dto.BankTransferInfo{
			Instructions: bankTransferInstructions,
			BarcodeURL:   h.settings.Get(c.Context()).BankTransferBarcodeURL,
		},
	}

	// Authenticated clients get their contact fields pre-populated;
	// guests start blank.
	if userID, err := middleware.GetUserID(c); err == nil {
		resp.Contact.Email = middleware.GetUserEmail(c)
		if user, err := h.users.UserByID(c.Context(), userID); err == nil {
			resp.Contact.FullName = user.FullName
		}
	}

	h.sessions.Add(resp.FormToken, h.orders.NewSubmitter())
	return c.JSON(resp)
}

// Submit runs the order submission pipeline for the resolved service.
func (h *OrderHandler) Submit(c *fiber.Ctx) error {
	svc, err := h.catalog.BySlug(c.Context(), c.Params("serviceType"))
	if err != nil {
		return h.catalogError(c, err)
	}

	var req dto.SubmitOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	sub := &forms.Submission{
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		Fields:        req.Fields,
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
	}

	var userID *uuid.UUID
	if id, err := middleware.GetUserID(c); err == nil {
		userID = &id
	}

	order, repeated, err := h.submitter(req.FormToken).Submit(c.Context(), svc, sub, userID)
	if err != nil {
		return h.submitError(c, err)
	}

	resp := dto.SubmitOrderResponse{
		OrderID:  order.ID,
		Status:   order.Status,
		Message:  "تم استلام طلبك بنجاح! رقم طلبك هو " + order.ID,
		Repeated: repeated,
	}
	switch order.PaymentMethod {
	case models.PaymentPayPal:
		resp.PayPalRedirect = true
	case models.PaymentBankTransfer:
		resp.BankTransfer = &dto.BankTransferInfo{
			Instructions: bankTransferInstructions,
			BarcodeURL:   h.settings.Get(c.Context()).BankTransferBarcodeURL,
		}
	}

	status := fiber.StatusCreated
	if repeated {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(resp)
}

// Track looks an order up by id and the email it was placed under.
func (h *OrderHandler) Track(c *fiber.Ctx) error {
	orderID := c.Query("order_id")
	email := c.Query("email")
	if orderID == "" || email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "order_id and email are required",
		})
	}

	order, err := h.orders.Track(c.Context(), orderID, email)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "لم يتم العثور على طلب بهذه البيانات",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to look up order",
		})
	}

	return c.JSON(dto.NewTrackOrderResponse(order))
}

// MyOrders lists the authenticated client's own orders.
func (h *OrderHandler) MyOrders(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	orders, err := h.orders.OrdersForUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load orders",
		})
	}
	return c.JSON(orders)
}

// submitter returns the form instance for a token, minting a fresh one for
// unknown or expired tokens.
func (h *OrderHandler) submitter(token string) *services.Submitter {
	if token == "" {
		return h.orders.NewSubmitter()
	}
	if sub, ok := h.sessions.Get(token); ok {
		return sub
	}
	sub := h.orders.NewSubmitter()
	h.sessions.Add(token, sub)
	return sub
}

func (h *OrderHandler) catalogError(c *fiber.Ctx, err error) error {
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

func (h *OrderHandler) submitError(c *fiber.Ctx, err error) error {
	var vErr *forms.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: vErr.Message, Field: vErr.Field,
		})
	}
	if errors.Is(err, forms.ErrNoService) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: forms.ErrNoService.Error(),
		})
	}
	if errors.Is(err, services.ErrSubmissionInFlight) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: "طلبك قيد الإرسال بالفعل",
		})
	}
	// Persistence failure: nothing was saved, the form data is preserved
	// client-side and the customer may retry.
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "حدث خطأ أثناء إرسال الطلب. يرجى المحاولة مرة أخرى",
	})
}
