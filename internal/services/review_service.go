package services

import (
	"context"
	"net/url"
	"strconv"

	"negromart_seller/internal/api"
	"negromart_seller/internal/models"
	"negromart_seller/internal/services/dto"
	"negromart_seller/internal/validator"
	"negromart_seller/pkg/apperrors"
)

type ReviewService interface {
	List(ctx context.Context, criteria dto.ReviewCriteria) (*dto.Page[models.Review], error)
	Patch(ctx context.Context, id int64, req *dto.PatchReviewRequest) (*models.Review, error)
}

type reviewService struct {
	client    *api.Client
	validator *validator.Validator
}

func NewReviewService(client *api.Client, v *validator.Validator) ReviewService {
	return &reviewService{client: client, validator: v}
}

func (s *reviewService) List(ctx context.Context, criteria dto.ReviewCriteria) (*dto.Page[models.Review], error) {
	query := url.Values{}
	if criteria.Rating > 0 {
		query.Set("rating", strconv.Itoa(criteria.Rating))
	}
	if criteria.Status != "" {
		query.Set("status", string(criteria.Status))
	}
	if criteria.Page > 0 {
		query.Set("page", strconv.Itoa(criteria.Page))
	}

	var page dto.Page[models.Review]
	if err := s.client.GetJSON(ctx, pathReviews, query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *reviewService) Patch(ctx context.Context, id int64, req *dto.PatchReviewRequest) (*models.Review, error) {
	if req.Status == nil && req.Reply == nil {
		return nil, apperrors.ValidationError(map[string]string{"non_field_errors": "Nothing to update"})
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var review models.Review
	if err := s.client.PatchJSON(ctx, itemPath(pathReviews, id), req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}
