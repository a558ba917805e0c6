package forms

import (
	"context"

	"negromart_seller/internal/models"
	"negromart_seller/internal/services"
	"negromart_seller/internal/validator"
)

// PaymentMethodForm edits the payout destination. Switching the method
// drops the fields of the previous one, so only one method is ever filled.
type PaymentMethodForm struct {
	models.PaymentMethod
}

func PaymentMethodFormFrom(pm *models.PaymentMethod) PaymentMethodForm {
	if pm == nil {
		return PaymentMethodForm{PaymentMethod: models.PaymentMethod{Method: models.PaymentMobileMoney}}
	}
	return PaymentMethodForm{PaymentMethod: *pm}
}

func (f *PaymentMethodForm) SetMethod(m models.PaymentMethodType) {
	if f.Method == m {
		return
	}
	f.PaymentMethod = models.PaymentMethod{Method: m}
}

func (f *PaymentMethodForm) Validate(v *validator.Validator) error {
	return v.PaymentMethod("", f.PaymentMethod)
}

// Submit validates locally, then saves through the payment service, which
// also checks bank names with the server.
func (f *PaymentMethodForm) Submit(ctx context.Context, v *validator.Validator, svc services.PaymentService) (*models.PaymentMethod, error) {
	if err := f.Validate(v); err != nil {
		return nil, err
	}
	pm := f.PaymentMethod
	return svc.Update(ctx, &pm)
}
