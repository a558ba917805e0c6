package services

import (
	"context"
	"net/url"

	"negromart_seller/internal/api"
	"negromart_seller/internal/models"
	"negromart_seller/internal/services/dto"
	"negromart_seller/pkg/apperrors"
)

// DashboardService reads the vendor analytics endpoints.
type DashboardService interface {
	SalesSummary(ctx context.Context) (*models.SalesSummary, error)
	SalesTrend(ctx context.Context, period dto.TrendPeriod) (*dto.SalesTrendResponse, error)
	TopProducts(ctx context.Context) ([]models.TopProduct, error)
	OrderStatus(ctx context.Context) ([]models.StatusCount, error)
	Engagement(ctx context.Context) (*models.Engagement, error)
	DeliveryPerformance(ctx context.Context) (*models.DeliveryPerformance, error)

	// Load fetches all six widgets; the first failure aborts.
	Load(ctx context.Context, period dto.TrendPeriod) (*dto.Dashboard, error)
}

type dashboardService struct {
	client *api.Client
}

func NewDashboardService(client *api.Client) DashboardService {
	return &dashboardService{client: client}
}

func (s *dashboardService) SalesSummary(ctx context.Context) (*models.SalesSummary, error) {
	var out models.SalesSummary
	if err := s.client.GetJSON(ctx, pathAnalytics+"sales-summary/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *dashboardService) SalesTrend(ctx context.Context, period dto.TrendPeriod) (*dto.SalesTrendResponse, error) {
	switch period {
	case "":
		period = dto.Period30Days
	case dto.Period7Days, dto.Period30Days, dto.Period90Days, dto.Period12Month:
	default:
		return nil, apperrors.ValidationError(map[string]string{"period": "Unsupported trend period " + string(period)})
	}

	var out dto.SalesTrendResponse
	query := url.Values{"period": {string(period)}}
	if err := s.client.GetJSON(ctx, pathAnalytics+"sales-trend/", query, &out); err != nil {
		return nil, err
	}
	if out.Period == "" {
		out.Period = period
	}
	return &out, nil
}

func (s *dashboardService) TopProducts(ctx context.Context) ([]models.TopProduct, error) {
	var out dto.TopProductsResponse
	if err := s.client.GetJSON(ctx, pathAnalytics+"top-products/", nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (s *dashboardService) OrderStatus(ctx context.Context) ([]models.StatusCount, error) {
	var out dto.OrderStatusResponse
	if err := s.client.GetJSON(ctx, pathAnalytics+"order-status/", nil, &out); err != nil {
		return nil, err
	}
	return out.Statuses, nil
}

func (s *dashboardService) Engagement(ctx context.Context) (*models.Engagement, error) {
	var out models.Engagement
	if err := s.client.GetJSON(ctx, pathAnalytics+"engagement/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *dashboardService) DeliveryPerformance(ctx context.Context) (*models.DeliveryPerformance, error) {
	var out models.DeliveryPerformance
	if err := s.client.GetJSON(ctx, pathAnalytics+"delivery-performance/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *dashboardService) Load(ctx context.Context, period dto.TrendPeriod) (*dto.Dashboard, error) {
	var d dto.Dashboard

	summary, err := s.SalesSummary(ctx)
	if err != nil {
		return nil, err
	}
	d.Summary = *summary

	trend, err := s.SalesTrend(ctx, period)
	if err != nil {
		return nil, err
	}
	d.Trend = *trend

	if d.TopProducts, err = s.TopProducts(ctx); err != nil {
		return nil, err
	}
	if d.OrderStatus, err = s.OrderStatus(ctx); err != nil {
		return nil, err
	}

	engagement, err := s.Engagement(ctx)
	if err != nil {
		return nil, err
	}
	d.Engagement = *engagement

	delivery, err := s.DeliveryPerformance(ctx)
	if err != nil {
		return nil, err
	}
	d.Delivery = *delivery

	return &d, nil
}
