package dto

import "negromart_seller/internal/models"

type ReviewCriteria struct {
	Rating int
	Status models.ReviewStatus
	Page   int
}

// PatchReviewRequest moderates a review: change its status and/or reply to it.
type PatchReviewRequest struct {
	Status *models.ReviewStatus `json:"status,omitempty" validate:"omitempty,oneof=approved rejected pending"`
	Reply  *string              `json:"reply,omitempty" validate:"omitempty,max=1000"`
}
