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

type OrderService interface {
	List(ctx context.Context, criteria dto.OrderCriteria) (*dto.Page[models.Order], error)
	Get(ctx context.Context, id int64) (*models.Order, error)
	// UpdateStatus moves an order forward. current is the status the seller
	// last saw; transitions the dashboard does not offer are rejected locally.
	UpdateStatus(ctx context.Context, id int64, current models.OrderStatus, req *dto.UpdateOrderStatusRequest) (*models.Order, error)
}

type orderService struct {
	client    *api.Client
	validator *validator.Validator
}

func NewOrderService(client *api.Client, v *validator.Validator) OrderService {
	return &orderService{client: client, validator: v}
}

func (s *orderService) List(ctx context.Context, criteria dto.OrderCriteria) (*dto.Page[models.Order], error) {
	query := url.Values{}
	if criteria.Status != "" {
		query.Set("status", string(criteria.Status))
	}
	if criteria.Search != "" {
		query.Set("search", criteria.Search)
	}
	if criteria.Page > 0 {
		query.Set("page", strconv.Itoa(criteria.Page))
	}

	var page dto.Page[models.Order]
	if err := s.client.GetJSON(ctx, pathOrders, query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *orderService) Get(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := s.client.GetJSON(ctx, itemPath(pathOrders, id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id int64, current models.OrderStatus, req *dto.UpdateOrderStatusRequest) (*models.Order, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if current != "" && !current.CanTransition(req.Status) {
		return nil, apperrors.ErrInvalidStatus("orders", "Cannot move order from "+string(current)+" to "+string(req.Status))
	}

	var order models.Order
	if err := s.client.PatchJSON(ctx, itemPath(pathOrders, id)+"status/", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
