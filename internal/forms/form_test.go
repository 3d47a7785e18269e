package forms

import (
	"testing"

	"github.com/drmnef/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func svcWithFields(keys ...string) *models.Service {
	return &models.Service{
		Name:           "خدمة تجريبية",
		ServiceType:    "test_service",
		SpecificFields: datatypes.NewJSONSlice(keys),
	}
}

func TestDeriveExactFieldsInOrder(t *testing.T) {
	svc := svcWithFields(KeyIMEI, KeyUDID, KeyDeviceModel)

	specs := Derive(svc, Preselect{})
	require.Len(t, specs, 3)
	assert.Equal(t, KeyIMEI, specs[0].Key)
	assert.Equal(t, KeyUDID, specs[1].Key)
	assert.Equal(t, KeyDeviceModel, specs[2].Key)

	assert.True(t, specs[0].Required)
	assert.True(t, specs[1].Required)
	assert.False(t, specs[2].Required)
	assert.Equal(t, "رقم IMEI", specs[0].Label)
}

func TestDeriveUnknownKeyRendersGenericInput(t *testing.T) {
	svc := svcWithFields("activation_code")

	specs := Derive(svc, Preselect{})
	require.Len(t, specs, 1)
	assert.Equal(t, FieldUnknown, specs[0].Kind)
	assert.Equal(t, "activation code", specs[0].Label)
	assert.Equal(t, "أدخل activation code", specs[0].Placeholder)
	assert.False(t, specs[0].Required)
}

func TestDerivePreselectedFieldIsReadOnly(t *testing.T) {
	svc := svcWithFields(KeyStorePackage, KeyDeviceModel)

	specs := Derive(svc, Preselect{StorePackage: "الباقة الذهبية"})
	require.Len(t, specs, 2)
	assert.True(t, specs[0].ReadOnly)
	assert.Equal(t, "الباقة الذهبية", specs[0].Value)
	assert.Empty(t, specs[0].Hint)
	assert.False(t, specs[1].ReadOnly)
}

func TestDerivePreselectIgnoredWithoutMatchingField(t *testing.T) {
	svc := svcWithFields(KeyUDID)

	specs := Derive(svc, Preselect{ProductID: "card-50"})
	require.Len(t, specs, 1)
	assert.False(t, specs[0].ReadOnly)
	assert.Empty(t, specs[0].Value)
}

func TestDeriveNilService(t *testing.T) {
	assert.Nil(t, Derive(nil, Preselect{}))
}

func TestValidateNilService(t *testing.T) {
	err := Validate(nil, &Submission{PaymentMethod: models.PaymentPayPal})
	assert.ErrorIs(t, err, ErrNoService)
}

func TestValidatePaymentMethodBeforeFields(t *testing.T) {
	svc := svcWithFields(KeyUDID)
	sub := &Submission{
		FullName: "أحمد",
		Email:    "ahmed@example.com",
	}

	err := Validate(svc, sub)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "payment_method", verr.Field)
}

func TestValidateRequiredFieldBlocks(t *testing.T) {
	svc := svcWithFields(KeyUDID)
	sub := &Submission{
		PaymentMethod: models.PaymentBankTransfer,
		Fields:        map[string]string{KeyUDID: "   "},
	}

	err := Validate(svc, sub)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KeyUDID, verr.Field)
	assert.Equal(t, "UDID مطلوب لهذه الخدمة", verr.Message)
}

func TestValidateOptionalFieldsMayStayBlank(t *testing.T) {
	svc := svcWithFields(KeyDeviceModel, KeyStorePackage)
	sub := &Submission{PaymentMethod: models.PaymentPayPal}

	assert.NoError(t, Validate(svc, sub))
}

func TestValidateRequiredFieldsCheckedInServiceOrder(t *testing.T) {
	svc := svcWithFields(KeySerialNumber, KeyIMEI)
	sub := &Submission{PaymentMethod: models.PaymentPayPal}

	err := Validate(svc, sub)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KeySerialNumber, verr.Field)
}

func TestValidatePasses(t *testing.T) {
	svc := svcWithFields(KeyUDID, KeyDeviceModel)
	sub := &Submission{
		PaymentMethod: models.PaymentPayPal,
		Fields:        map[string]string{KeyUDID: "00008030-001A2B3C4D5E6F7G"},
	}

	assert.NoError(t, Validate(svc, sub))
}

func TestDisplayValue(t *testing.T) {
	assert.Equal(t, NotSpecified, DisplayValue("  "))
	assert.Equal(t, "iPhone 15", DisplayValue("iPhone 15"))
}
