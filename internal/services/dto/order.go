package dto

import "negromart_seller/internal/models"

type OrderCriteria struct {
	Status models.OrderStatus
	Search string
	Page   int
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required,is-order-status"`
	Note   string             `json:"note,omitempty" validate:"omitempty,max=500"`
}
