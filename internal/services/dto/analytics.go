package dto

import "negromart_seller/internal/models"

// TrendPeriod is the window of the sales-trend chart.
type TrendPeriod string

const (
	Period7Days   TrendPeriod = "7d"
	Period30Days  TrendPeriod = "30d"
	Period90Days  TrendPeriod = "90d"
	Period12Month TrendPeriod = "12m"
)

type SalesTrendResponse struct {
	Period TrendPeriod         `json:"period"`
	Points []models.TrendPoint `json:"points"`
}

type TopProductsResponse struct {
	Products []models.TopProduct `json:"products"`
}

type OrderStatusResponse struct {
	Statuses []models.StatusCount `json:"statuses"`
}

// Dashboard is everything the analytics page loads, fetched in one go.
type Dashboard struct {
	Summary     models.SalesSummary
	Trend       SalesTrendResponse
	TopProducts []models.TopProduct
	OrderStatus []models.StatusCount
	Engagement  models.Engagement
	Delivery    models.DeliveryPerformance
}
