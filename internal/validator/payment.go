package validator

import (
	"negromart_seller/internal/models"
)

type methodRules struct {
	Method string `json:"method" validate:"required,is-payment-method"`
}

type mobileMoneyRules struct {
	MobileNumber   string `json:"mobile_number" validate:"required,phone"`
	MobileProvider string `json:"mobile_provider" validate:"required"`
}

type bankRules struct {
	BankName      string `json:"bank_name" validate:"required,max=100"`
	AccountHolder string `json:"account_holder" validate:"required,max=100"`
	AccountNumber string `json:"account_number" validate:"required,max=34"`
}

type payPalRules struct {
	PayPalAccount string `json:"paypal_account" validate:"required,paypal-account"`
}

// PaymentMethod applies the rules of the active method only. Fields of the
// other methods are ignored whatever they hold.
func (v *Validator) PaymentMethod(namespace string, pm models.PaymentMethod) error {
	if err := v.ValidateIn(namespace, methodRules{Method: string(pm.Method)}); err != nil {
		return err
	}

	switch pm.Method {
	case models.PaymentMobileMoney:
		return v.ValidateIn(namespace, mobileMoneyRules{
			MobileNumber:   pm.MobileNumber,
			MobileProvider: pm.MobileProvider,
		})
	case models.PaymentBank:
		return v.ValidateIn(namespace, bankRules{
			BankName:      pm.BankName,
			AccountHolder: pm.AccountHolder,
			AccountNumber: pm.AccountNumber,
		})
	default:
		return v.ValidateIn(namespace, payPalRules{PayPalAccount: pm.PayPalAccount})
	}
}
