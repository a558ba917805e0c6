package registration

import (
	"negromart_seller/internal/models"
	"negromart_seller/internal/validator"
)

const (
	msgFileRequired = "Please upload this document"
	msgReupload     = "Please re-upload this file"
)

type businessRules struct {
	FirstName    string `json:"first_name" validate:"required,max=50"`
	LastName     string `json:"last_name" validate:"required,max=50"`
	BusinessName string `json:"business_name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Contact      string `json:"contact" validate:"required,phone"`
	SellerType   string `json:"seller_type" validate:"required,is-seller-type"`
}

type profileRules struct {
	Address   string   `json:"address" validate:"required,max=255"`
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
	Website   string   `json:"website" validate:"omitempty,url"`
	Facebook  string   `json:"facebook" validate:"omitempty,url"`
	Instagram string   `json:"instagram" validate:"omitempty,url"`
	Twitter   string   `json:"twitter" validate:"omitempty,url"`
	Bio       string   `json:"bio" validate:"max=500"`
}

// validateStep checks one step of d. It returns nil or *validator.ValidationError.
func validateStep(v *validator.Validator, step Step, d *Draft) error {
	errs := &validator.ValidationError{}

	switch step {
	case StepBusiness:
		if err := errs.Merge(v.Validate(businessRules{
			FirstName:    d.FirstName,
			LastName:     d.LastName,
			BusinessName: d.BusinessName,
			Email:        d.Email,
			Contact:      d.Contact,
			SellerType:   string(d.SellerType),
		})); err != nil {
			return err
		}

		requireFile(errs, d, d.IDSlot())
		if d.SellerType == models.SellerTypeBusiness {
			requireFile(errs, d, SlotLicense)
		}
		requireFile(errs, d, SlotProofOfAddress)

	case StepProfile:
		a := d.About
		if err := errs.Merge(v.ValidateIn("about", profileRules{
			Address:   a.Address,
			Latitude:  a.Latitude,
			Longitude: a.Longitude,
			Website:   a.Website,
			Facebook:  a.Facebook,
			Instagram: a.Instagram,
			Twitter:   a.Twitter,
			Bio:       a.Bio,
		})); err != nil {
			return err
		}
		optionalFile(errs, d, SlotProfileImage)
		optionalFile(errs, d, SlotCoverImage)

	case StepPayment:
		if err := errs.Merge(v.PaymentMethod("payment_method", d.PaymentMethod)); err != nil {
			return err
		}
	}

	return errs.OrNil()
}

// validateAll runs every step and aggregates all failing fields. first is the
// earliest step with an error.
func validateAll(v *validator.Validator, d *Draft) (first Step, err error) {
	errs := &validator.ValidationError{}
	for _, step := range []Step{StepBusiness, StepProfile, StepPayment} {
		stepErr := validateStep(v, step, d)
		if stepErr == nil {
			continue
		}
		if other := errs.Merge(stepErr); other != nil {
			return step, other
		}
		if first == 0 {
			first = step
		}
	}
	return first, errs.OrNil()
}

func requireFile(errs *validator.ValidationError, d *Draft, name string) {
	switch d.Slot(name).State() {
	case models.SlotUnset:
		errs.Add(name, msgFileRequired)
	case models.SlotNameOnly:
		errs.Add(name, msgReupload)
	}
}

// optionalFile only complains about a file that was picked and then lost.
func optionalFile(errs *validator.ValidationError, d *Draft, name string) {
	if d.Slot(name).State() == models.SlotNameOnly {
		errs.Add(name, msgReupload)
	}
}
