// Package forms validates and serializes the seller-center edit forms before
// they are handed to the REST services.
package forms

import (
	"context"
	"strconv"

	"negromart_seller/internal/api"
	"negromart_seller/internal/models"
	"negromart_seller/internal/services"
	"negromart_seller/internal/validator"
)

const (
	// DeliveryDefaultMessage is shown when zero or several delivery options are default.
	DeliveryDefaultMessage = "Exactly one delivery option must be marked as default"

	msgImageRequired   = "Add at least one product image"
	msgDuplicateOption = "Each delivery option can only be added once"
)

type ProductForm struct {
	Name            string                            `json:"name" validate:"required,max=200"`
	Description     string                            `json:"description" validate:"max=5000"`
	CategoryID      int64                             `json:"category_id" validate:"required"`
	Price           float64                           `json:"price" validate:"gt=0"`
	Stock           int                               `json:"stock" validate:"gte=0"`
	Status          models.ProductStatus              `json:"status" validate:"omitempty,oneof=draft published archived"`
	Variants        []models.Variant                  `json:"variants" validate:"dive"`
	DeliveryOptions []models.DeliveryOptionAssignment `json:"delivery_options" validate:"dive"`

	// Images are new uploads; ExistingImages counts images already on the server.
	Images         []models.FileSlot `json:"-"`
	ExistingImages int               `json:"-"`
}

// ProductFormFrom prefills the form for editing p.
func ProductFormFrom(p models.Product) ProductForm {
	return ProductForm{
		Name:            p.Name,
		Description:     p.Description,
		CategoryID:      p.CategoryID,
		Price:           p.Price,
		Stock:           p.Stock,
		Status:          p.Status,
		Variants:        append([]models.Variant(nil), p.Variants...),
		DeliveryOptions: append([]models.DeliveryOptionAssignment(nil), p.DeliveryOptions...),
		ExistingImages:  len(p.Images),
	}
}

// SetDefaultDelivery marks the assignment for optionID as the only default.
func (f *ProductForm) SetDefaultDelivery(optionID int64) {
	for i := range f.DeliveryOptions {
		f.DeliveryOptions[i].Default = f.DeliveryOptions[i].DeliveryOptionID == optionID
	}
}

// CheckDeliveryDefault enforces exactly one default among the assignments.
func CheckDeliveryDefault(assignments []models.DeliveryOptionAssignment) bool {
	defaults := 0
	for _, a := range assignments {
		if a.Default {
			defaults++
		}
	}
	return defaults == 1
}

func (f *ProductForm) Validate(v *validator.Validator) error {
	errs := &validator.ValidationError{}
	if err := errs.Merge(v.Validate(f)); err != nil {
		return err
	}

	if !CheckDeliveryDefault(f.DeliveryOptions) {
		errs.Add("delivery_options", DeliveryDefaultMessage)
	}
	seen := make(map[int64]bool, len(f.DeliveryOptions))
	for _, a := range f.DeliveryOptions {
		if seen[a.DeliveryOptionID] {
			errs.Add("delivery_options", msgDuplicateOption)
		}
		seen[a.DeliveryOptionID] = true
	}

	if len(f.Images)+f.ExistingImages == 0 {
		errs.Add("images", msgImageRequired)
	}
	for i, img := range f.Images {
		if !img.Loaded() {
			errs.Add("images."+strconv.Itoa(i), "Please re-upload this file")
		}
	}
	return errs.OrNil()
}

// Payload renders the multipart body: scalars as fields, variants and
// delivery options as JSON strings, images as files.
func (f *ProductForm) Payload() (*api.Multipart, error) {
	form := api.NewMultipart().
		Field("name", f.Name).
		Field("description", f.Description).
		Field("category_id", strconv.FormatInt(f.CategoryID, 10)).
		Field("price", strconv.FormatFloat(f.Price, 'f', -1, 64)).
		Field("stock", strconv.Itoa(f.Stock)).
		Field("status", string(f.Status))

	variants := f.Variants
	if variants == nil {
		variants = []models.Variant{}
	}
	if err := form.JSONField("variants", variants); err != nil {
		return nil, err
	}
	if err := form.JSONField("delivery_options", f.DeliveryOptions); err != nil {
		return nil, err
	}

	for _, img := range f.Images {
		form.File("images", img.Name, img.ContentType, img.Data)
	}
	return form, nil
}

// Submit validates the form and creates the product (id == 0) or updates it.
func (f *ProductForm) Submit(ctx context.Context, v *validator.Validator, svc services.ProductService, id int64) (*models.Product, error) {
	if err := f.Validate(v); err != nil {
		return nil, err
	}
	payload, err := f.Payload()
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return svc.Create(ctx, payload)
	}
	return svc.Update(ctx, id, payload)
}
