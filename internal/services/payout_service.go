package services

import (
	"context"
	"net/url"
	"strconv"

	"negromart_seller/internal/api"
	"negromart_seller/internal/models"
	"negromart_seller/internal/services/dto"
)

type PayoutService interface {
	List(ctx context.Context, criteria dto.PayoutCriteria) (*dto.Page[models.Payout], error)
}

type payoutService struct {
	client *api.Client
}

func NewPayoutService(client *api.Client) PayoutService {
	return &payoutService{client: client}
}

func (s *payoutService) List(ctx context.Context, criteria dto.PayoutCriteria) (*dto.Page[models.Payout], error) {
	query := url.Values{}
	if criteria.Status != "" {
		query.Set("status", criteria.Status)
	}
	if criteria.Page > 0 {
		query.Set("page", strconv.Itoa(criteria.Page))
	}

	var page dto.Page[models.Payout]
	if err := s.client.GetJSON(ctx, pathPayouts, query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
