// Package testserver is an in-process fake of the Negromart seller API used by
// package tests: a gin router for the REST endpoints and a gorilla hub for the
// notification sockets, served by httptest.
package testserver

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"negromart_seller/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	APIPrefix = "/api/v1"

	// ValidOTP is the only code VerifyOTP accepts.
	ValidOTP = "123456"
	// PasswordOTP makes login answer with an OTP challenge.
	PasswordOTP = "otp"
	// PasswordBad makes login fail with 401.
	PasswordBad = "bad"
	// RejectedBusinessName makes registration fail with a field error.
	RejectedBusinessName = "reject"
)

type Server struct {
	*httptest.Server
	Engine *gin.Engine
	hub    *hub
	tokens *tokenStore

	mu            sync.Mutex
	notifications []models.Notification
	nextNotifID   int64
	detailFails   int
	orders        map[int64]models.Order
	products      map[int64]models.Product
	nextProductID int64
	reviews       map[int64]models.Review
	payment       *models.PaymentMethod
	payouts       []models.Payout
	hours         map[int64]models.OpeningHours
	nextHoursID   int64
	registrations []Registration
	requests      []string
}

// New starts a server seeded with a few notifications, orders, products and
// reviews. It is closed automatically at the end of the test.
func New(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		tokens:   newTokenStore(),
		orders:   make(map[int64]models.Order),
		products: make(map[int64]models.Product),
		reviews:  make(map[int64]models.Review),
		hours:    make(map[int64]models.OpeningHours),
	}
	s.hub = newHub(s.handleAction)
	s.seed()

	s.Engine = gin.New()
	s.Engine.Use(gin.Recovery(), s.recordRequest)
	s.setupRoutes()

	s.Server = httptest.NewServer(s.Engine)
	go s.hub.run()

	t.Cleanup(s.Close)
	return s
}

func (s *Server) Close() {
	s.hub.shutdown()
	s.Server.Close()
}

// APIBase is the REST base URL the client is configured with.
func (s *Server) APIBase() string {
	return s.URL + APIPrefix
}

// WSBase is the NEXT_PUBLIC_WS_URL equivalent.
func (s *Server) WSBase() string {
	return "ws" + strings.TrimPrefix(s.URL, "http")
}

// Requests lists "METHOD path" of every REST call so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) recordRequest(c *gin.Context) {
	s.mu.Lock()
	s.requests = append(s.requests, c.Request.Method+" "+strings.TrimPrefix(c.Request.URL.Path, APIPrefix))
	s.mu.Unlock()
	c.Next()
}

func (s *Server) setupRoutes() {
	api := s.Engine.Group(APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/jwt/create/", s.login)
		auth.POST("/jwt/refresh/", s.refresh)
		auth.POST("/jwt/verify/", s.verify)
		auth.POST("/otp/verify/", s.verifyOTP)
		auth.POST("/otp/resend/", s.resendOTP)
		auth.POST("/logout/", s.requireAuth, s.logout)
	}

	notification := api.Group("/notification", s.requireAuth)
	{
		notification.GET("/", s.listNotifications)
		notification.GET("/ws-token/", s.wsToken)
		notification.GET("/:id/", s.getNotification)
	}

	api.POST("/vendor/register/", s.register)

	vendor := api.Group("/vendor", s.requireAuth)
	{
		vendor.GET("/analytics/:widget/", s.analytics)

		vendor.GET("/orders/", s.listOrders)
		vendor.GET("/orders/:id/", s.getOrder)
		vendor.PATCH("/orders/:id/status/", s.updateOrderStatus)

		vendor.GET("/products/", s.listProducts)
		vendor.GET("/products/related-data/", s.relatedData)
		vendor.POST("/products/", s.createProduct)
		vendor.GET("/products/:id/", s.getProduct)
		vendor.PUT("/products/:id/", s.updateProduct)
		vendor.DELETE("/products/:id/", s.deleteProduct)

		vendor.GET("/payment-method/", s.getPaymentMethod)
		vendor.PUT("/payment-method/", s.putPaymentMethod)
		vendor.POST("/payment-method/validate-bank/", s.validateBank)

		vendor.GET("/payouts/", s.listPayouts)

		vendor.GET("/reviews/", s.listReviews)
		vendor.PATCH("/reviews/:id/", s.patchReview)

		vendor.GET("/opening-hours/", s.listHours)
		vendor.POST("/opening-hours/", s.createHours)
		vendor.PUT("/opening-hours/:id/", s.updateHours)
		vendor.DELETE("/opening-hours/:id/", s.deleteHours)
	}

	sockets := s.Engine.Group("/ws/notifications")
	{
		sockets.GET("/", s.serveSocket)
		sockets.GET("/count/", s.serveSocket)
		sockets.GET("/:id/", s.serveSocket)
	}
}

func (s *Server) seed() {
	now := time.Now().UTC().Truncate(time.Second)

	s.notifications = []models.Notification{
		{ID: 1, Verb: models.VerbNewOrder, VerbDisplay: "New order", CreatedAt: now.Add(-time.Hour),
			Actor: &models.Ref{ID: 7, Name: "Kofi Mensah"}, Target: &models.Ref{ID: 101, Title: "Order #101"},
			Data: map[string]interface{}{"message": "Kofi Mensah placed order #101", "url": "/orders/101"}},
		{ID: 2, Verb: models.VerbNewReview, VerbDisplay: "New review", CreatedAt: now.Add(-30 * time.Minute),
			Actor: &models.Ref{ID: 8, Username: "ama_b"}, Data: map[string]interface{}{"message": "ama_b left a 5-star review"}},
		{ID: 3, Verb: models.VerbPayoutProcessed, VerbDisplay: "Payout processed", CreatedAt: now.Add(-10 * time.Minute), IsRead: true},
	}
	s.nextNotifID = 4

	s.orders[101] = models.Order{ID: 101, Reference: "NM-101", Status: models.OrderStatusPending, CustomerName: "Kofi Mensah",
		Total: 240, Currency: "GHS", CreatedAt: now, UpdatedAt: now,
		Items: []models.OrderItem{{ID: 1, ProductID: 11, ProductName: "Kente scarf", Quantity: 2, UnitPrice: 120}}}
	s.orders[102] = models.Order{ID: 102, Reference: "NM-102", Status: models.OrderStatusShipped, CustomerName: "Ama Boateng",
		Total: 80, Currency: "GHS", CreatedAt: now, UpdatedAt: now}

	s.products[11] = models.Product{ID: 11, Name: "Kente scarf", CategoryID: 1, Price: 120, Stock: 8, Status: models.ProductStatusPublished,
		DeliveryOptions: []models.DeliveryOptionAssignment{{ID: 1, DeliveryOptionID: 1, Default: true}}, CreatedAt: now}
	s.nextProductID = 12

	s.reviews[501] = models.Review{ID: 501, ProductID: 11, ProductName: "Kente scarf", CustomerName: "Ama Boateng",
		Rating: 5, Comment: "Beautiful work", Status: models.ReviewStatusPending, CreatedAt: now}

	s.payouts = []models.Payout{
		{ID: 1, Amount: 500, Currency: "GHS", Status: models.PayoutStatusProcessed, Method: models.PaymentMobileMoney, Reference: "PO-1", RequestedAt: now},
	}

	s.hours[1] = models.OpeningHours{ID: 1, Day: 0, OpenTime: "08:00", CloseTime: "17:00"}
	s.nextHoursID = 2
}
