package models

import "time"

type Variant struct {
	ID    int64   `json:"id,omitempty"`
	Name  string  `json:"name" validate:"required,max=100"`
	Price float64 `json:"price" validate:"gt=0"`
	Stock int     `json:"stock" validate:"gte=0"`
	SKU   string  `json:"sku,omitempty"`
}

type ProductImage struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	IsPrimary bool   `json:"is_primary"`
}

type DeliveryOption struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Fee           float64 `json:"fee"`
	EstimatedDays int     `json:"estimated_days"`
}

// DeliveryOptionAssignment links a product to a delivery option.
// Exactly one assignment per product must be the default at submit time.
type DeliveryOptionAssignment struct {
	ID               int64 `json:"id,omitempty"`
	DeliveryOptionID int64 `json:"delivery_option_id" validate:"required"`
	Default          bool  `json:"default"`
}

type Product struct {
	ID              int64                      `json:"id"`
	Name            string                     `json:"name"`
	Description     string                     `json:"description"`
	CategoryID      int64                      `json:"category_id"`
	Price           float64                    `json:"price"`
	Stock           int                        `json:"stock"`
	Status          ProductStatus              `json:"status"`
	Variants        []Variant                  `json:"variants,omitempty"`
	Images          []ProductImage             `json:"images,omitempty"`
	DeliveryOptions []DeliveryOptionAssignment `json:"delivery_options,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RelatedData is the lookup bundle the product form loads before editing.
type RelatedData struct {
	Categories      []Category       `json:"categories"`
	DeliveryOptions []DeliveryOption `json:"delivery_options"`
}
