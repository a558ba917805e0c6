package validator

import (
	"errors"
	"testing"

	"negromart_seller/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Name    string `json:"business_name" validate:"required"`
	Contact string `json:"contact" validate:"required,phone"`
	Type    string `json:"seller_type" validate:"required,is-seller-type"`
	PayPal  string `json:"paypal_account" validate:"omitempty,paypal-account"`
	Opens   string `json:"open_time" validate:"omitempty,hhmm"`
	Nested  struct {
		Bio string `json:"bio" validate:"max=5"`
	} `json:"about"`
}

func TestIsPhone(t *testing.T) {
	cases := map[string]bool{
		"+233241234567":     true,
		"0241234567":        true,
		"+1 (555) 010-9999": true,
		"12345":             false,
		"1234567890123456":  false,
		"+23324abc4567":     false,
		"":                  false,
	}
	for input, want := range cases {
		assert.Equal(t, want, IsPhone(input), input)
	}
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()

	form := contactForm{Contact: "123", Type: "company", PayPal: "not-an-account", Opens: "25:00"}
	form.Nested.Bio = "far too long"

	err := v.Validate(form)
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "This field is required", vErr.Errors["business_name"])
	assert.Contains(t, vErr.Errors["contact"], "10-15 digits")
	assert.Contains(t, vErr.Errors, "seller_type")
	assert.Contains(t, vErr.Errors, "paypal_account")
	assert.Contains(t, vErr.Errors, "open_time")
	assert.Contains(t, vErr.Errors, "about.bio")
}

func TestValidate_Passes(t *testing.T) {
	v := New()

	form := contactForm{Name: "Ama Crafts", Contact: "+233241234567", Type: "business", PayPal: "ama@example.com", Opens: "08:30"}
	assert.NoError(t, v.Validate(form))
}

func TestValidateIn_PrefixesNamespace(t *testing.T) {
	v := New()

	err := v.ValidateIn("payment_method", struct {
		Number string `json:"mobile_number" validate:"required"`
	}{})

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Errors, "payment_method.mobile_number")
}

func TestValidationError_MergeKeepsFirstMessage(t *testing.T) {
	agg := &ValidationError{}
	assert.NoError(t, agg.OrNil())

	require.NoError(t, agg.Merge(&ValidationError{Errors: map[string]string{"contact": "first"}}))
	require.NoError(t, agg.Merge(&ValidationError{Errors: map[string]string{"contact": "second", "email": "bad"}}))
	require.NoError(t, agg.Merge(nil))

	other := errors.New("boom")
	assert.Equal(t, other, agg.Merge(other))

	assert.Equal(t, "first", agg.Errors["contact"])
	assert.Equal(t, "bad", agg.Errors["email"])
	assert.Equal(t, "Validation failed: field 'contact': first; field 'email': bad", agg.OrNil().Error())
}

func TestPaymentMethod_BranchesOnDiscriminator(t *testing.T) {
	v := New()

	cases := []struct {
		name    string
		pm      models.PaymentMethod
		missing []string
	}{
		{
			name:    "mobile money needs number and provider",
			pm:      models.PaymentMethod{Method: models.PaymentMobileMoney, BankName: "ignored"},
			missing: []string{"payment_method.mobile_number", "payment_method.mobile_provider"},
		},
		{
			name:    "bank needs name, holder and account",
			pm:      models.PaymentMethod{Method: models.PaymentBank, MobileNumber: "+233241234567"},
			missing: []string{"payment_method.bank_name", "payment_method.account_holder", "payment_method.account_number"},
		},
		{
			name:    "paypal needs an email or phone",
			pm:      models.PaymentMethod{Method: models.PaymentPayPal, PayPalAccount: "nobody"},
			missing: []string{"payment_method.paypal_account"},
		},
		{
			name:    "unknown method",
			pm:      models.PaymentMethod{Method: "cheque"},
			missing: []string{"payment_method.method"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.PaymentMethod("payment_method", tc.pm)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Len(t, vErr.Errors, len(tc.missing))
			for _, field := range tc.missing {
				assert.Contains(t, vErr.Errors, field)
			}
		})
	}

	ok := models.PaymentMethod{Method: models.PaymentMobileMoney, MobileNumber: "0241234567", MobileProvider: "MTN"}
	assert.NoError(t, v.PaymentMethod("", ok))
}
