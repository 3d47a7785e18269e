// Package forms derives the dynamic request form for a catalog service and
// validates submissions before the order pipeline runs.
package forms

import "strings"

// FieldKind is the closed set of service-specific inputs the catalog can ask
// for. Keys outside the vocabulary map to FieldUnknown and render as a
// generic text input; they are never silently dropped.
type FieldKind int

const (
	FieldUnknown FieldKind = iota
	FieldUDID
	FieldSerialNumber
	FieldIMEI
	FieldDeviceModel
	FieldStorePackage
	FieldProductID
	FieldSubscriptionPackage
)

// Field keys as stored in services.specific_fields.
const (
	KeyUDID                = "udid"
	KeySerialNumber        = "serial_number"
	KeyIMEI                = "imei"
	KeyDeviceModel         = "device_model"
	KeyStorePackage        = "store_package"
	KeyProductID           = "product_id"
	KeySubscriptionPackage = "subscription_package"
)

// NotSpecified is shown for optional fields the customer left blank.
const NotSpecified = "غير محدد"

// KindOf maps a specific_fields key to its kind.
func KindOf(key string) FieldKind {
	switch key {
	case KeyUDID:
		return FieldUDID
	case KeySerialNumber:
		return FieldSerialNumber
	case KeyIMEI:
		return FieldIMEI
	case KeyDeviceModel:
		return FieldDeviceModel
	case KeyStorePackage:
		return FieldStorePackage
	case KeyProductID:
		return FieldProductID
	case KeySubscriptionPackage:
		return FieldSubscriptionPackage
	default:
		return FieldUnknown
	}
}

// fieldMeta is the fixed dictionary entry for a known field kind.
type fieldMeta struct {
	label       string
	placeholder string
	// required fields hard-block submission when empty.
	required  bool
	inputKind string
	// hint links back to the catalog page where the value is chosen.
	hint string
}

var fieldDict = map[FieldKind]fieldMeta{
	FieldUDID: {
		label:       "UDID الخاص بالجهاز",
		placeholder: "أدخل UDID هنا (40 حرفًا)",
		required:    true,
		inputKind:   "text",
		hint:        "هذه الخدمة تتطلب UDID.",
	},
	FieldSerialNumber: {
		label:       "الرقم التسلسلي (Serial Number)",
		placeholder: "أدخل الرقم التسلسلي للجهاز",
		required:    true,
		inputKind:   "text",
	},
	FieldIMEI: {
		label:       "رقم IMEI",
		placeholder: "أدخل رقم IMEI المكون من 15 رقمًا",
		required:    true,
		inputKind:   "text",
	},
	FieldDeviceModel: {
		label:       "موديل الجهاز",
		placeholder: "مثال: iPhone 13 Pro Max",
		inputKind:   "text",
	},
	FieldStorePackage: {
		label:     "باقة المتجر المختارة",
		inputKind: "text",
		hint:      "يمكنك اختيار الباقة من صفحة خدمة إنشاء المتاجر /service/estore_general",
	},
	FieldProductID: {
		label:     "المنتج المختار",
		inputKind: "text",
		hint:      "يمكنك اختيار المنتج من صفحة بطاقات الهدايا /service/digital_cards_general",
	},
	FieldSubscriptionPackage: {
		label:     "باقة الاشتراك المختارة",
		inputKind: "text",
		hint:      "يمكنك اختيار الباقة من صفحة اشتراكات البث /service/streaming_general",
	},
}

// metaFor returns the dictionary entry for a key, synthesizing a generic
// entry for unrecognized keys.
func metaFor(key string) fieldMeta {
	kind := KindOf(key)
	if meta, ok := fieldDict[kind]; ok && kind != FieldUnknown {
		return meta
	}
	label := strings.ReplaceAll(key, "_", " ")
	return fieldMeta{
		label:       label,
		placeholder: "أدخل " + label,
		inputKind:   "text",
	}
}

// DisplayValue substitutes the "not specified" marker for blank optional
// values.
func DisplayValue(v string) string {
	if strings.TrimSpace(v) == "" {
		return NotSpecified
	}
	return v
}
