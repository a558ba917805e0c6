package services

import (
	"context"
	"net/url"
	"strconv"

	"negromart_seller/internal/api"
	"negromart_seller/internal/models"
	"negromart_seller/internal/services/dto"
	"negromart_seller/pkg/apperrors"
)

type NotificationService interface {
	List(ctx context.Context, criteria dto.NotificationCriteria) (*dto.NotificationListResponse, error)
	Get(ctx context.Context, id int64) (*models.Notification, error)
	// Ticket fetches a one-time WebSocket ticket; it satisfies ws.TicketSource.
	Ticket(ctx context.Context) (string, error)
}

type notificationService struct {
	client *api.Client
}

func NewNotificationService(client *api.Client) NotificationService {
	return &notificationService{client: client}
}

func (s *notificationService) List(ctx context.Context, criteria dto.NotificationCriteria) (*dto.NotificationListResponse, error) {
	query := url.Values{}
	if criteria.Page > 0 {
		query.Set("page", strconv.Itoa(criteria.Page))
	}
	if criteria.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(criteria.PageSize))
	}
	if criteria.Unread {
		query.Set("is_read", "false")
	}

	var res dto.NotificationListResponse
	if err := s.client.GetJSON(ctx, pathNotifications, query, &res); err != nil {
		return nil, err
	}
	if res.Results == nil {
		res.Results = []models.Notification{}
	}
	return &res, nil
}

func (s *notificationService) Get(ctx context.Context, id int64) (*models.Notification, error) {
	var n models.Notification
	if err := s.client.GetJSON(ctx, itemPath(pathNotifications, id), nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *notificationService) Ticket(ctx context.Context) (string, error) {
	var res dto.WSTokenResponse
	if err := s.client.GetJSON(ctx, pathWSToken, nil, &res); err != nil {
		return "", err
	}
	if res.Token == "" {
		return "", apperrors.New(apperrors.CodeInvalidToken, "notification", "Empty WebSocket ticket", 0)
	}
	return res.Token, nil
}
