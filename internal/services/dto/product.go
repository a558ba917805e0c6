package dto

import "negromart_seller/internal/models"

type ProductCriteria struct {
	Status models.ProductStatus
	Search string
	Page   int
}
