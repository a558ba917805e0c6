package validator

import (
	"log"
	"net/mail"
	"regexp"
	"strings"

	"negromart_seller/internal/models"

	"github.com/go-playground/validator/v10"
)

var hhmmPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// registerCustomRules registers every project-specific tag on v.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("phone", validatePhone)
	mustRegister("paypal-account", validatePayPalAccount)
	mustRegister("hhmm", validateHHMM)

	mustRegister("is-seller-type", validateSellerType)
	mustRegister("is-payment-method", validatePaymentMethod)
	mustRegister("is-order-status", validateOrderStatus)
}

// IsPhone accepts 10 to 15 digits with an optional leading "+". Spaces,
// dashes, dots and parentheses are ignored.
func IsPhone(value string) bool {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "+")

	digits := 0
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 10 && digits <= 15
}

// IsEmail is a plain address check, no display names.
func IsEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	return err == nil && addr.Address == value
}

func validatePhone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return IsPhone(value)
}

func validatePayPalAccount(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	return IsEmail(value) || IsPhone(value)
}

func validateHHMM(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return hhmmPattern.MatchString(value)
}

func validateSellerType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.SellerType(value).Valid()
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.PaymentMethodType(value).Valid()
}

func validateOrderStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.OrderStatus(value).Valid()
}
