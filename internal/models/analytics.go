package models

type SalesSummary struct {
	TotalRevenue   float64 `json:"total_revenue"`
	TotalOrders    int     `json:"total_orders"`
	AverageOrder   float64 `json:"average_order_value"`
	RevenueChange  float64 `json:"revenue_change_percent"`
	OrdersChange   float64 `json:"orders_change_percent"`
	Currency       string  `json:"currency"`
	PendingPayouts float64 `json:"pending_payouts"`
}

type TrendPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type TopProduct struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	UnitsSold int     `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
}

type StatusCount struct {
	Status OrderStatus `json:"status"`
	Count  int         `json:"count"`
}

type Engagement struct {
	ProductViews   int     `json:"product_views"`
	StoreVisits    int     `json:"store_visits"`
	ConversionRate float64 `json:"conversion_rate"`
	Wishlisted     int     `json:"wishlisted"`
}

type DeliveryPerformance struct {
	OnTimeRate      float64 `json:"on_time_rate"`
	AverageDays     float64 `json:"average_delivery_days"`
	LateDeliveries  int     `json:"late_deliveries"`
	TotalDeliveries int     `json:"total_deliveries"`
}
