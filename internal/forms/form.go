package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/drmnef/storefront/internal/models"
)

// ErrNoService blocks submissions that arrive without a resolved service.
var ErrNoService = errors.New("الخدمة المطلوبة غير محددة")

// ValidationError pins a blocked submission to the control that caused it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldSpec describes one rendered input of the request form.
type FieldSpec struct {
	Key         string    `json:"key"`
	Kind        FieldKind `json:"-"`
	Label       string    `json:"label"`
	Placeholder string    `json:"placeholder,omitempty"`
	Required    bool      `json:"required"`
	InputKind   string    `json:"input_kind"`
	ReadOnly    bool      `json:"read_only"`
	Value       string    `json:"value,omitempty"`
	Hint        string    `json:"hint,omitempty"`
}

// Preselect carries package/product values handed over from a catalog page
// via query parameters. A preselected field renders read-only.
type Preselect struct {
	StorePackage        string
	ProductID           string
	SubscriptionPackage string
}

func (p Preselect) valueFor(kind FieldKind) (string, bool) {
	switch kind {
	case FieldStorePackage:
		return p.StorePackage, p.StorePackage != ""
	case FieldProductID:
		return p.ProductID, p.ProductID != ""
	case FieldSubscriptionPackage:
		return p.SubscriptionPackage, p.SubscriptionPackage != ""
	default:
		return "", false
	}
}

// Derive produces the visible service-specific inputs for a service: exactly
// the record's specific_fields, in order, each mapped through the fixed
// dictionary.
func Derive(svc *models.Service, pre Preselect) []FieldSpec {
	if svc == nil {
		return nil
	}
	specs := make([]FieldSpec, 0, len(svc.SpecificFields))
	for _, key := range svc.SpecificFields {
		kind := KindOf(key)
		meta := metaFor(key)
		spec := FieldSpec{
			Key:         key,
			Kind:        kind,
			Label:       meta.label,
			Placeholder: meta.placeholder,
			Required:    meta.required,
			InputKind:   meta.inputKind,
			Hint:        meta.hint,
		}
		if val, ok := pre.valueFor(kind); ok {
			spec.Value = val
			spec.ReadOnly = true
			spec.Hint = ""
		}
		specs = append(specs, spec)
	}
	return specs
}

// Submission is the transient form state assembled by the customer.
type Submission struct {
	FullName      string
	Email         string
	Phone         string
	Fields        map[string]string
	Notes         string
	PaymentMethod string
}

// FieldValue returns the submitted value for a specific-field key.
func (s *Submission) FieldValue(key string) string {
	if s.Fields == nil {
		return ""
	}
	return s.Fields[key]
}

// requiredMessages name the missing control in the customer's language.
var requiredMessages = map[string]string{
	KeyUDID:         "UDID مطلوب لهذه الخدمة",
	KeySerialNumber: "الرقم التسلسلي مطلوب لهذه الخدمة",
	KeyIMEI:         "IMEI مطلوب لهذه الخدمة",
}

// Validate checks a submission against the service's field list. Checks run
// in a fixed order and the first failure wins: resolved service, payment
// method, then every hard-required specific field.
func Validate(svc *models.Service, sub *Submission) error {
	if svc == nil {
		return ErrNoService
	}
	if sub.PaymentMethod != models.PaymentPayPal && sub.PaymentMethod != models.PaymentBankTransfer {
		return &ValidationError{Field: "payment_method", Message: "يرجى اختيار طريقة الدفع"}
	}
	for _, key := range svc.SpecificFields {
		meta := metaFor(key)
		if !meta.required {
			continue
		}
		if strings.TrimSpace(sub.FieldValue(key)) == "" {
			return &ValidationError{Field: key, Message: requiredMessages[key]}
		}
	}
	return nil
}
