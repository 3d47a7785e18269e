package models

import (
	"time"

	"github.com/google/uuid"
)

// Order status literals. Transitions are administrator-driven; the
// submission pipeline only ever creates orders as StatusAwaitingPayment.
const (
	StatusAwaitingPayment = "بانتظار الدفع"
	StatusInProgress      = "جارٍ التنفيذ"
	StatusCompleted       = "تم الإكمال"
	StatusCancelled       = "ملغي"
)

// Payment methods the form accepts.
const (
	PaymentPayPal       = "paypal"
	PaymentBankTransfer = "bank_transfer"
)

// OrderStatuses lists every status an administrator may set.
var OrderStatuses = []string{
	StatusAwaitingPayment,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// Order is a persisted service request. Contact and service fields are
// denormalized at submission time; service-specific values are nil unless
// the service's field list includes them.
type Order struct {
	ID            string     `gorm:"primaryKey;size:32" json:"id"`
	UserID        *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	CustomerName  string     `gorm:"not null;size:255" json:"customer_name"`
	CustomerEmail string     `gorm:"not null;size:255;index" json:"customer_email"`
	CustomerPhone *string    `gorm:"size:50" json:"customer_phone,omitempty"`
	ServiceID     uuid.UUID  `gorm:"type:uuid;not null" json:"service_id"`
	ServiceName   string     `gorm:"not null;size:255" json:"service_name"`

	UDID                *string `gorm:"size:100" json:"udid,omitempty"`
	SerialNumber        *string `gorm:"size:100" json:"serial_number,omitempty"`
	IMEI                *string `gorm:"size:50" json:"imei,omitempty"`
	DeviceModel         *string `gorm:"size:100" json:"device_model,omitempty"`
	StorePackage        *string `gorm:"size:255" json:"store_package,omitempty"`
	ProductID           *string `gorm:"size:255" json:"product_id,omitempty"`
	SubscriptionPackage *string `gorm:"size:255" json:"subscription_package,omitempty"`

	Notes         string    `gorm:"type:text" json:"notes"`
	PaymentMethod string    `gorm:"size:50;not null" json:"payment_method"`
	Status        string    `gorm:"size:50;not null" json:"status"`
	TotalAmount   string    `gorm:"size:100" json:"total_amount"`
	OrderDate     time.Time `gorm:"not null;index" json:"order_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidStatus reports whether s is one of the fixed status literals.
func ValidStatus(s string) bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}
