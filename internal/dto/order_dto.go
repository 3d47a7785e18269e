package dto

import (
	"time"

	"github.com/drmnef/storefront/internal/forms"
	"github.com/drmnef/storefront/internal/models"
)

// RequestFormResponse describes the dynamic request form for one service.
type RequestFormResponse struct {
	Service        ServiceSummary    `json:"service"`
	FormToken      string            `json:"form_token"`
	Contact        ContactPrefill    `json:"contact"`
	Fields         []forms.FieldSpec `json:"fields"`
	PaymentMethods []string          `json:"payment_methods"`
	BankTransfer   *BankTransferInfo `json:"bank_transfer,omitempty"`
}

type ContactPrefill struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// BankTransferInfo carries the static transfer instructions shown when the
// customer picks bank_transfer.
type BankTransferInfo struct {
	Instructions string `json:"instructions"`
	BarcodeURL   string `json:"barcode_url"`
}

type SubmitOrderRequest struct {
	FormToken     string            `json:"form_token"`
	FullName      string            `json:"full_name"`
	Email         string            `json:"email"`
	Phone         string            `json:"phone"`
	Fields        map[string]string `json:"fields"`
	Notes         string            `json:"notes"`
	PaymentMethod string            `json:"payment_method"`
}

type SubmitOrderResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
	// Repeated is set when the form instance had already succeeded and no
	// new order was created.
	Repeated bool `json:"repeated,omitempty"`
	// PayPalRedirect signals the client that a redirect to PayPal would
	// follow; no live payment call is made here.
	PayPalRedirect bool              `json:"paypal_redirect,omitempty"`
	BankTransfer   *BankTransferInfo `json:"bank_transfer,omitempty"`
}

type TrackOrderResponse struct {
	OrderID     string    `json:"order_id"`
	ServiceName string    `json:"service_name"`
	Status      string    `json:"status"`
	TotalAmount string    `json:"total_amount"`
	OrderDate   time.Time `json:"order_date"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func NewTrackOrderResponse(order *models.Order) TrackOrderResponse {
	return TrackOrderResponse{
		OrderID:     order.ID,
		ServiceName: order.ServiceName,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		OrderDate:   order.OrderDate,
	}
}
