package models

import "time"

type OrderItem struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	VariantName string  `json:"variant_name,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type Order struct {
	ID              int64       `json:"id"`
	Reference       string      `json:"reference"`
	Status          OrderStatus `json:"status"`
	CustomerName    string      `json:"customer_name"`
	ShippingAddress string      `json:"shipping_address,omitempty"`
	Total           float64     `json:"total"`
	Currency        string      `json:"currency"`
	Items           []OrderItem `json:"items,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
