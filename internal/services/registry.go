package services

import (
	"negromart_seller/internal/api"
	"negromart_seller/internal/validator"
)

// ServiceContainer holds every REST-backed service of the seller center.
type ServiceContainer struct {
	AuthService         AuthService
	NotificationService NotificationService
	DashboardService    DashboardService
	OrderService        OrderService
	ProductService      ProductService
	PaymentService      PaymentService
	PayoutService       PayoutService
	ReviewService       ReviewService
	OpeningHoursService OpeningHoursService
	RegistrationService RegistrationService
}

func NewServiceContainer(client *api.Client, v *validator.Validator) *ServiceContainer {
	return &ServiceContainer{
		AuthService:         NewAuthService(client, v),
		NotificationService: NewNotificationService(client),
		DashboardService:    NewDashboardService(client),
		OrderService:        NewOrderService(client, v),
		ProductService:      NewProductService(client),
		PaymentService:      NewPaymentService(client, v),
		PayoutService:       NewPayoutService(client),
		ReviewService:       NewReviewService(client, v),
		OpeningHoursService: NewOpeningHoursService(client),
		RegistrationService: NewRegistrationService(client),
	}
}
