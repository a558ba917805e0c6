package testserver

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"negromart_seller/internal/models"

	"github.com/gin-gonic/gin"
)

// Registration is one captured seller application.
type Registration struct {
	Fields map[string]string
	// Files maps form field to uploaded file name.
	Files map[string]string
}

// Registrations returns every application accepted so far.
func (s *Server) Registrations() []Registration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Registration(nil), s.registrations...)
}

// Product returns the stored product with id.
func (s *Server) Product(id int64) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	return p, ok
}

// SetPaymentMethod seeds the vendor payment method; nil means none configured.
func (s *Server) SetPaymentMethod(pm *models.PaymentMethod) {
	s.mu.Lock()
	s.payment = pm
	s.mu.Unlock()
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return 0, false
	}
	return id, true
}

func page[T any](results []T) gin.H {
	if results == nil {
		results = []T{}
	}
	return gin.H{"count": len(results), "next": nil, "previous": nil, "results": results}
}

func (s *Server) analytics(c *gin.Context) {
	switch c.Param("widget") {
	case "sales-summary":
		c.JSON(http.StatusOK, models.SalesSummary{TotalRevenue: 320, TotalOrders: 2, AverageOrder: 160, Currency: "GHS"})
	case "sales-trend":
		c.JSON(http.StatusOK, gin.H{"period": c.DefaultQuery("period", "30d"), "points": []models.TrendPoint{
			{Date: "2026-10-01", Revenue: 80, Orders: 1},
			{Date: "2026-10-02", Revenue: 240, Orders: 1},
		}})
	case "top-products":
		c.JSON(http.StatusOK, gin.H{"products": []models.TopProduct{{ProductID: 11, Name: "Kente scarf", UnitsSold: 2, Revenue: 240}}})
	case "order-status":
		c.JSON(http.StatusOK, gin.H{"statuses": []models.StatusCount{
			{Status: models.OrderStatusPending, Count: 1},
			{Status: models.OrderStatusShipped, Count: 1},
		}})
	case "engagement":
		c.JSON(http.StatusOK, models.Engagement{ProductViews: 120, StoreVisits: 45, ConversionRate: 4.4, Wishlisted: 9})
	case "delivery-performance":
		c.JSON(http.StatusOK, models.DeliveryPerformance{OnTimeRate: 96.5, AverageDays: 2.1, TotalDeliveries: 30, LateDeliveries: 1})
	default:
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	}
}

func (s *Server) listOrders(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Order
	for _, o := range s.orders {
		if status := c.Query("status"); status != "" && string(o.Status) != status {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, page(out))
}

func (s *Server) getOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	o, found := s.orders[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	c.JSON(http.StatusOK, o)
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": []string{"This field is required."}})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, found := s.orders[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if !o.Status.CanTransition(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"status": []string{"Invalid status transition."}})
		return
	}
	o.Status = req.Status
	o.UpdatedAt = time.Now().UTC()
	s.orders[id] = o
	c.JSON(http.StatusOK, o)
}

func (s *Server) listProducts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Product
	for _, p := range s.products {
		if search := c.Query("search"); search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, page(out))
}

func (s *Server) relatedData(c *gin.Context) {
	c.JSON(http.StatusOK, models.RelatedData{
		Categories: []models.Category{{ID: 1, Name: "Fashion"}, {ID: 2, Name: "Home"}},
		DeliveryOptions: []models.DeliveryOption{
			{ID: 1, Name: "Standard", Fee: 15, EstimatedDays: 3},
			{ID: 2, Name: "Express", Fee: 40, EstimatedDays: 1},
		},
	})
}

func (s *Server) getProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	p, found := s.Product(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	c.JSON(http.StatusOK, p)
}

// productFromForm reads the multipart product payload and checks the
// delivery-option rule the real backend enforces.
func productFromForm(c *gin.Context) (models.Product, bool) {
	var p models.Product
	p.Name = c.PostForm("name")
	p.Description = c.PostForm("description")
	p.CategoryID, _ = strconv.ParseInt(c.PostForm("category_id"), 10, 64)
	p.Price, _ = strconv.ParseFloat(c.PostForm("price"), 64)
	p.Stock, _ = strconv.Atoi(c.PostForm("stock"))
	p.Status = models.ProductStatus(c.DefaultPostForm("status", string(models.ProductStatusDraft)))

	if p.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"name": []string{"This field is required."}})
		return p, false
	}
	if raw := c.PostForm("variants"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &p.Variants); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"variants": []string{"Invalid JSON."}})
			return p, false
		}
	}
	if raw := c.PostForm("delivery_options"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &p.DeliveryOptions); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"delivery_options": []string{"Invalid JSON."}})
			return p, false
		}
	}
	defaults := 0
	for _, d := range p.DeliveryOptions {
		if d.Default {
			defaults++
		}
	}
	if defaults != 1 {
		c.JSON(http.StatusBadRequest, gin.H{"non_field_errors": []string{"Exactly one delivery option must be marked as default"}})
		return p, false
	}

	if form, err := c.MultipartForm(); err == nil {
		for i, fh := range form.File["images"] {
			p.Images = append(p.Images, models.ProductImage{ID: int64(i + 1), URL: "/media/products/" + fh.Filename, IsPrimary: i == 0})
		}
	}
	return p, true
}

func (s *Server) createProduct(c *gin.Context) {
	p, ok := productFromForm(c)
	if !ok {
		return
	}

	s.mu.Lock()
	p.ID = s.nextProductID
	s.nextProductID++
	p.CreatedAt = time.Now().UTC()
	s.products[p.ID] = p
	s.mu.Unlock()

	c.JSON(http.StatusCreated, p)
}

func (s *Server) updateProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	p, ok := productFromForm(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	old, found := s.products[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	p.ID, p.CreatedAt = id, old.CreatedAt
	if len(p.Images) == 0 {
		p.Images = old.Images
	}
	s.products[id] = p
	c.JSON(http.StatusOK, p)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.products[id]; !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	delete(s.products, id)
	c.Status(http.StatusNoContent)
}

func (s *Server) getPaymentMethod(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.payment == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	c.JSON(http.StatusOK, s.payment)
}

func (s *Server) putPaymentMethod(c *gin.Context) {
	var pm models.PaymentMethod
	if err := c.ShouldBindJSON(&pm); err != nil || !pm.Method.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"method": []string{"Invalid payment method."}})
		return
	}
	s.mu.Lock()
	s.payment = &pm
	s.mu.Unlock()
	c.JSON(http.StatusOK, pm)
}

var knownBanks = map[string]string{
	"gcb":            "GCB Bank",
	"gcb bank":       "GCB Bank",
	"ecobank":        "Ecobank Ghana",
	"ecobank ghana":  "Ecobank Ghana",
	"stanbic":        "Stanbic Bank",
	"absa":           "Absa Bank Ghana",
	"fidelity bank":  "Fidelity Bank Ghana",
	"access bank":    "Access Bank Ghana",
	"calbank":        "CalBank",
	"zenith bank":    "Zenith Bank Ghana",
	"republic bank":  "Republic Bank Ghana",
	"standard chart": "Standard Chartered Ghana",
}

func (s *Server) validateBank(c *gin.Context) {
	var req struct {
		BankName string `json:"bank_name"`
	}
	_ = c.ShouldBindJSON(&req)

	name, ok := knownBanks[strings.ToLower(strings.TrimSpace(req.BankName))]
	c.JSON(http.StatusOK, gin.H{"valid": ok, "normalized_name": name})
}

func (s *Server) listPayouts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, page(s.payouts))
}

func (s *Server) listReviews(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Review
	for _, r := range s.reviews {
		if rating := c.Query("rating"); rating != "" && strconv.Itoa(r.Rating) != rating {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, page(out))
}

func (s *Server) patchReview(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Status *models.ReviewStatus `json:"status"`
		Reply  *string              `json:"reply"`
	}
	_ = c.ShouldBindJSON(&req)

	s.mu.Lock()
	defer s.mu.Unlock()
	r, found := s.reviews[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if req.Status != nil {
		r.Status = *req.Status
	}
	if req.Reply != nil {
		r.Reply = *req.Reply
	}
	s.reviews[id] = r
	c.JSON(http.StatusOK, r)
}

func (s *Server) listHours(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.OpeningHours, 0, len(s.hours))
	for _, h := range s.hours {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	c.JSON(http.StatusOK, out)
}

func (s *Server) bindHours(c *gin.Context) (models.OpeningHours, bool) {
	var h models.OpeningHours
	if err := c.ShouldBindJSON(&h); err != nil || h.Day < 0 || h.Day > 6 {
		c.JSON(http.StatusBadRequest, gin.H{"day": []string{"Must be between 0 and 6."}})
		return h, false
	}
	for _, existing := range s.hours {
		if existing.Day == h.Day && existing.ID != h.ID {
			c.JSON(http.StatusBadRequest, gin.H{"day": []string{"Opening hours for this day already exist."}})
			return h, false
		}
	}
	return h, true
}

func (s *Server) createHours(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.bindHours(c)
	if !ok {
		return
	}
	h.ID = s.nextHoursID
	s.nextHoursID++
	s.hours[h.ID] = h
	c.JSON(http.StatusCreated, h)
}

func (s *Server) updateHours(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.hours[id]; !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	h, ok := s.bindHours(c)
	if !ok {
		return
	}
	h.ID = id
	s.hours[id] = h
	c.JSON(http.StatusOK, h)
}

func (s *Server) deleteHours(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.hours, id)
	c.Status(http.StatusNoContent)
}

func (s *Server) register(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Multipart form expected."})
		return
	}

	reg := Registration{Fields: make(map[string]string), Files: make(map[string]string)}
	for name, values := range form.Value {
		if len(values) > 0 {
			reg.Fields[name] = values[0]
		}
	}
	for field, files := range form.File {
		if len(files) > 0 {
			reg.Files[field] = files[0].Filename
		}
	}

	if reg.Fields["business_name"] == RejectedBusinessName {
		c.JSON(http.StatusBadRequest, gin.H{"business_name": []string{"A seller with this name already exists."}})
		return
	}

	s.mu.Lock()
	s.registrations = append(s.registrations, reg)
	id := int64(len(s.registrations))
	s.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"id": id, "detail": "Application received."})
}
