package services

import (
	"context"

	"negromart_seller/internal/api"
	"negromart_seller/internal/models"
	"negromart_seller/pkg/apperrors"
)

type OpeningHoursService interface {
	List(ctx context.Context) ([]models.OpeningHours, error)
	Create(ctx context.Context, h *models.OpeningHours) (*models.OpeningHours, error)
	Update(ctx context.Context, h *models.OpeningHours) (*models.OpeningHours, error)
	Delete(ctx context.Context, id int64) error
}

type openingHoursService struct {
	client *api.Client
}

func NewOpeningHoursService(client *api.Client) OpeningHoursService {
	return &openingHoursService{client: client}
}

func (s *openingHoursService) List(ctx context.Context) ([]models.OpeningHours, error) {
	var rows []models.OpeningHours
	if err := s.client.GetJSON(ctx, pathOpeningHours, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *openingHoursService) Create(ctx context.Context, h *models.OpeningHours) (*models.OpeningHours, error) {
	var out models.OpeningHours
	if err := s.client.PostJSON(ctx, pathOpeningHours, h, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *openingHoursService) Update(ctx context.Context, h *models.OpeningHours) (*models.OpeningHours, error) {
	if h.ID == 0 {
		return nil, apperrors.ValidationError(map[string]string{"id": "Opening hours row has not been created yet"})
	}

	var out models.OpeningHours
	if err := s.client.PutJSON(ctx, itemPath(pathOpeningHours, h.ID), h, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *openingHoursService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, itemPath(pathOpeningHours, id))
}
