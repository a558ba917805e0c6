package validator

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries a "field" -> "message" map. Field names are the
// json names of the validated struct, prefixed by Namespace when set.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	errMsgs := make([]string, 0, len(fields))
	for _, field := range fields {
		errMsgs = append(errMsgs, fmt.Sprintf("field '%s': %s", field, e.Errors[field]))
	}
	return "Validation failed: " + strings.Join(errMsgs, "; ")
}

// Add records msg for field unless the field already has an error.
func (e *ValidationError) Add(field, msg string) {
	if e.Errors == nil {
		e.Errors = make(map[string]string)
	}
	if _, exists := e.Errors[field]; !exists {
		e.Errors[field] = msg
	}
}

// Merge folds err into e. A nil err is a no-op; a non-validation error is returned as is.
func (e *ValidationError) Merge(err error) error {
	if err == nil {
		return nil
	}
	other, ok := err.(*ValidationError)
	if !ok {
		return err
	}
	for field, msg := range other.Errors {
		e.Add(field, msg)
	}
	return nil
}

// OrNil returns e as an error only when it holds at least one field.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

// Validator wraps go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Report json names ("business_name"), not Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomRules(v)

	return &Validator{
		validate: v,
	}
}

// Validate runs struct validation. On failure it returns *ValidationError.
func (v *Validator) Validate(i interface{}) error {
	return v.ValidateIn("", i)
}

// ValidateIn is Validate with every field name prefixed by namespace
// ("about" -> "about.address").
func (v *Validator) ValidateIn(namespace string, i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	customErrors := make(map[string]string)
	for _, fe := range validationErrors {
		fieldName := fieldPath(fe)
		if namespace != "" {
			fieldName = namespace + "." + fieldName
		}
		if _, exists := customErrors[fieldName]; !exists {
			customErrors[fieldName] = v.getErrorMessage(fe)
		}
	}

	return &ValidationError{Errors: customErrors}
}

// fieldPath drops the root struct name from the namespace: "Draft.about.bio" -> "about.bio".
// Anonymous root structs carry no type name, so both namespaces differ from the start.
func fieldPath(fe validator.FieldError) string {
	ns, structNS := fe.Namespace(), fe.StructNamespace()
	root, _, found := strings.Cut(ns, ".")
	structRoot, _, _ := strings.Cut(structNS, ".")
	if found && root == structRoot {
		return ns[len(root)+1:]
	}
	return ns
}

func (v *Validator) getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("Must be at least %s items/characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s items/characters long", fe.Param())
	case "numeric":
		return "Must contain digits only"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.Replace(fe.Param(), " ", ", ", -1))
	case "url":
		return "Must be a valid URL"
	case "latitude":
		return "Must be a latitude between -90 and 90"
	case "longitude":
		return "Must be a longitude between -180 and 180"
	case "phone":
		return "Enter a valid phone number (10-15 digits)"
	case "paypal-account":
		return "Enter the email or phone number of your PayPal account"
	case "hhmm":
		return "Must be a time in HH:MM format"
	case "is-seller-type":
		return "Must be one of: student, individual, business"
	case "is-payment-method":
		return "Must be one of: mobile_money, bank, paypal"
	case "is-order-status":
		return "Unknown order status"
	default:
		return fmt.Sprintf("Invalid value (failed on '%s' tag)", fe.Tag())
	}
}
